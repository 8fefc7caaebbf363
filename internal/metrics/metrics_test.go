package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionAndAICallCounters(t *testing.T) {
	m := New()
	m.Transition("test_selected", OutcomeOK)
	m.Transition("test_selected", OutcomeOK)
	m.Transition("test_selected", OutcomeConflict)
	m.AICall("resume-scan", OutcomeTimeout, 2*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("test_selected", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("test_selected", OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiCalls.WithLabelValues("resume-scan", OutcomeTimeout)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Transition("scored", OutcomeOK)
		m.AICall("test-scan", OutcomeError, time.Second)
	})
	assert.Nil(t, m.Registry())
}

func TestMetricsEndpoint(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(c fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `http_requests_total{method="GET",path="/ping",status_code="200"} 1`))
}
