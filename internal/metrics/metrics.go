// Package metrics provides Prometheus metrics export for the HTTP API
// and the LLM client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter exports service metrics in Prometheus format.
type Exporter struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	// LLM metrics
	llmCalls      *prometheus.CounterVec
	llmLatency    *prometheus.HistogramVec
	llmTokensUsed *prometheus.CounterVec
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}
}

// NewExporter creates a new Prometheus metrics exporter.
func NewExporter(cfg Config) *Exporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &Exporter{registry: registry}

	e.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "standnotes",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	e.httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "standnotes",
			Subsystem: "http",
			Name:      "request_latency_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"method", "path"},
	)

	e.llmCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "standnotes",
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Total number of LLM completion calls",
		},
		[]string{"model", "status"},
	)

	e.llmLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "standnotes",
			Subsystem: "llm",
			Name:      "latency_seconds",
			Help:      "LLM request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"model"},
	)

	e.llmTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "standnotes",
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"model", "token_type"},
	)

	registry.MustRegister(
		e.httpRequests,
		e.httpLatency,
		e.llmCalls,
		e.llmLatency,
		e.llmTokensUsed,
	)

	return e
}

// RecordHTTPRequest records a completed HTTP request.
func (e *Exporter) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	e.httpRequests.WithLabelValues(method, path, status).Inc()
	e.httpLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordLLMCall records a completed LLM completion call.
func (e *Exporter) RecordLLMCall(model string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.llmCalls.WithLabelValues(model, status).Inc()
	e.llmLatency.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordLLMTokens records token usage for an LLM call.
// tokenType is "prompt" or "completion".
func (e *Exporter) RecordLLMTokens(model, tokenType string, count int) {
	if count <= 0 {
		return
	}
	e.llmTokensUsed.WithLabelValues(model, tokenType).Add(float64(count))
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
