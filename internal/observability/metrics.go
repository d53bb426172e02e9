package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service. Each instance owns
// its registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	requests           *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	errors             *prometheus.CounterVec
	transitions        *prometheus.CounterVec
	sideEffectFailures *prometheus.CounterVec
	droppedEvents      prometheus.Counter
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"path", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"path", "method"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_http_errors_total",
			Help: "HTTP errors by route, method and error code",
		}, []string{"path", "method", "code"}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_lifecycle_transitions_total",
			Help: "Committed account lifecycle transitions",
		}, []string{"transition"}),
		sideEffectFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_side_effect_failures_total",
			Help: "Failed notification, email or publish side effects",
		}, []string{"effect"}),
		droppedEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "admin_side_effect_events_dropped_total",
			Help: "Events dropped because the side-effect queue was full",
		}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordTransition counts a committed lifecycle transition.
func (m *Metrics) RecordTransition(name string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(name).Inc()
}

// RecordSideEffectFailure counts a failed post-commit side effect.
func (m *Metrics) RecordSideEffectFailure(effect string) {
	if m == nil {
		return
	}
	m.sideEffectFailures.WithLabelValues(effect).Inc()
}

// RecordDroppedEvent counts an event rejected by a full queue.
func (m *Metrics) RecordDroppedEvent() {
	if m == nil {
		return
	}
	m.droppedEvents.Inc()
}
