// Package metrics exposes Prometheus collectors for tool and backend calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "localeops_mcp"

// Collector records tool invocations and backend calls.
// A nil *Collector records nothing.
type Collector struct {
	toolCalls       *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "Wall time from invocation to envelope.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Backend HTTP requests by method and status class.",
		}, []string{"method", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(c.toolCalls, c.toolDuration, c.backendCalls, c.backendDuration)
	return c
}

// ObserveToolCall records one finished invocation.
func (c *Collector) ObserveToolCall(tool, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.toolCalls.WithLabelValues(tool, outcome).Inc()
	c.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveBackendCall records one finished backend request.
func (c *Collector) ObserveBackendCall(method string, status int, elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	c.backendCalls.WithLabelValues(method, statusClass(status, err)).Inc()
	c.backendDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func statusClass(status int, err error) string {
	if err != nil && status == 0 {
		return "error"
	}
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
