// Package metrics chứa các chỉ số prometheus của pipeline tuyển dụng, các lần gọi AI và HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Kết quả ghi nhận cho counter
const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
)

// Metrics gom các collector trên một registry riêng. Mọi method đều an toàn với receiver nil.
type Metrics struct {
	registry     *prometheus.Registry
	transitions  *prometheus.CounterVec
	aiCalls      *prometheus.CounterVec
	aiDuration   *prometheus.HistogramVec
	httpDuration *prometheus.SummaryVec
	httpRequests *prometheus.CounterVec
}

// New tạo Metrics với registry riêng
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_transitions_total",
				Help: "Pipeline stage transitions by event and outcome",
			},
			[]string{"event", "outcome"},
		),
		aiCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_calls_total",
				Help: "Outbound AI service calls by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		aiDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_call_duration_seconds",
				Help:    "Outbound AI service call duration in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
			},
			[]string{"op"},
		),
		httpDuration: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
	}
}

// Registry trả về registry (dùng trong test)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Transition ghi nhận một lần chuyển giai đoạn
func (m *Metrics) Transition(event, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(event, outcome).Inc()
}

// AICall ghi nhận một lần gọi dịch vụ AI
func (m *Metrics) AICall(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.aiCalls.WithLabelValues(op, outcome).Inc()
	m.aiDuration.WithLabelValues(op).Observe(d.Seconds())
}

// TransitionCounter counter của một cặp (event, outcome)
func (m *Metrics) TransitionCounter(event, outcome string) prometheus.Counter {
	return m.transitions.WithLabelValues(event, outcome)
}

// AICallCounter counter của một cặp (op, outcome)
func (m *Metrics) AICallCounter(op, outcome string) prometheus.Counter {
	return m.aiCalls.WithLabelValues(op, outcome)
}

// Middleware đo thời gian và đếm request theo route
func (m *Metrics) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		statusCode := strconv.Itoa(c.Response().StatusCode())
		m.httpDuration.WithLabelValues(c.Method(), path, statusCode).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(c.Method(), path, statusCode).Inc()
		return err
	}
}

// Handler expose registry ở định dạng prometheus qua fiber adaptor
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
