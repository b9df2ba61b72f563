// Package metrics provides Prometheus metrics for the bazaar binaries.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tool call results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Manager owns the collectors and the registry they are registered on.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	apiRequests        *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	toolCalls          *prometheus.CounterVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for latency histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers collectors on r instead of a fresh registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithProcessCollectors adds the Go runtime and process collectors.
func WithProcessCollectors() Option {
	return func(m *Manager) {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// NewManager creates a Manager. Without WithRegistry each Manager gets its
// own registry, so tests never collide on the default one.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "bazaar",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)
	m.apiRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "api_requests_total",
		Help:      "Marketplace API requests by operation and HTTP status (0 on transport failure)",
	}, []string{"op", "code"})

	m.apiRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Marketplace API request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"op"})

	m.toolCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "mcp_tool_calls_total",
		Help:      "MCP tool invocations by tool and result",
	}, []string{"tool", "result"})

	return m
}

// ObserveRequest records one completed API request. It satisfies
// api.Observer.
func (m *Manager) ObserveRequest(op string, status int, elapsed time.Duration) {
	m.apiRequests.WithLabelValues(op, strconv.Itoa(status)).Inc()
	m.apiRequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ToolCall records one MCP tool invocation.
func (m *Manager) ToolCall(tool string, failed bool) {
	result := ResultOK
	if failed {
		result = ResultError
	}
	m.toolCalls.WithLabelValues(tool, result).Inc()
}

// Registry returns the registry backing the Manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
