// Package registry cung cấp registry generic, thread-safe để quản lý các singleton
// dùng chung trong ứng dụng (collections MongoDB, ...).
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
)

// Registry quản lý các item theo tên, an toàn khi dùng đồng thời.
//
// Example:
//
//	cols := NewRegistry[*mongo.Collection]()
//	cols.Register("identities", db.Collection("identities"))
//	if col, ok := cols.Get("identities"); ok {
//	    ...
//	}
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo registry rỗng
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register đăng ký item, ghi đè nếu đã tồn tại. isNew = false khi ghi đè.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// MustGet lấy item theo tên, trả lỗi NotFound nếu chưa đăng ký
func (r *Registry[T]) MustGet(name string) (T, error) {
	item, ok := r.Get(name)
	if !ok {
		return item, fmt.Errorf("registry item %q not registered: %w", name, common.ErrNotFound)
	}
	return item, nil
}

// GetOrCreate lấy item, chưa có thì tạo qua creator (creator chạy trong lock)
func (r *Registry[T]) GetOrCreate(name string, creator func() (T, error)) (item T, err error) {
	if name == "" {
		return item, fmt.Errorf("name cannot be empty: %w", common.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[name]; ok {
		return existing, nil
	}
	created, err := creator()
	if err != nil {
		return item, fmt.Errorf("failed to create item: %w", err)
	}
	r.items[name] = created
	return created, nil
}

// Names trả về danh sách tên đã đăng ký, sắp xếp tăng dần
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear xóa item, gọi cleanup trước nếu có
func (r *Registry[T]) Clear(name string, cleanup func(T) error) (deleted bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[name]
	if !exists {
		return false, nil
	}
	if cleanup != nil {
		if err := cleanup(item); err != nil {
			return false, fmt.Errorf("failed to cleanup item %s: %w", name, err)
		}
	}
	delete(r.items, name)
	return true, nil
}
