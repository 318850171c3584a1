// Package metrics exposes Prometheus instrumentation for snapshot builds and
// MCP tool calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Build outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeURLTooLong      = "url_too_long"
	OutcomeMissingViewport = "missing_viewport"
	OutcomeInvalidInput    = "invalid_input"
)

var (
	// Snapshot metrics
	SnapshotBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staticsnap",
		Subsystem: "snapshot",
		Name:      "builds_total",
		Help:      "Total snapshot URL builds by outcome",
	}, []string{"outcome"})

	URLLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "staticsnap",
		Subsystem: "snapshot",
		Name:      "url_length_chars",
		Help:      "Length of successfully built snapshot URLs",
		Buckets:   []float64{100, 250, 500, 750, 1000, 1250, 1500, 1750, 2000},
	})

	// Tool metrics
	toolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staticsnap",
		Subsystem: "tool",
		Name:      "calls_total",
		Help:      "Total MCP tool calls",
	}, []string{"tool", "status"})

	toolCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "staticsnap",
		Subsystem: "tool",
		Name:      "call_duration_seconds",
		Help:      "MCP tool call latency in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"tool"})

	RateLimitWaits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staticsnap",
		Subsystem: "tool",
		Name:      "ratelimit_waits_total",
		Help:      "Total tool calls that had to wait for the rate limiter",
	}, []string{"tool"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "staticsnap",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total URL cache hits",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "staticsnap",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total URL cache misses",
	})
)

// ObserveBuild records one snapshot build. length is ignored unless the
// build succeeded.
func ObserveBuild(outcome string, length int) {
	SnapshotBuilds.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		URLLength.Observe(float64(length))
	}
}

// ObserveToolCall records a finished tool call.
func ObserveToolCall(tool string, failed bool, start time.Time) {
	status := "ok"
	if failed {
		status = "error"
	}
	toolCallsTotal.WithLabelValues(tool, status).Inc()
	toolCallDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}

// Handler serves the Prometheus /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
