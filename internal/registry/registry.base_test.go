package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("a", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("a", 2)
	require.NoError(t, err)
	assert.False(t, isNew, "ghi đè phải trả về isNew=false")

	v, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestRegistry_MustGetMissing(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.MustGet("missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRegistry_GetOrCreateConcurrent(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.GetOrCreate("x", func() (int, error) {
				calls++
				return 7, nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls, "creator chỉ được gọi một lần")

	_, err := r.GetOrCreate("y", func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	_, ok := r.Get("y")
	assert.False(t, ok)
}

func TestRegistry_ClearAndNames(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("b", 1)
	_, _ = r.Register("a", 2)
	assert.Equal(t, []string{"a", "b"}, r.Names())

	cleaned := 0
	deleted, err := r.Clear("a", func(int) error { cleaned++; return nil })
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 1, cleaned)

	deleted, err = r.Clear("a", nil)
	require.NoError(t, err)
	assert.False(t, deleted)
}
