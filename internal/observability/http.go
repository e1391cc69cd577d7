package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tuition",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "API requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tuition",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	httpErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tuition",
		Subsystem: "http",
		Name:      "request_errors_total",
		Help:      "API requests that returned 4xx or 5xx.",
	}, []string{"method", "route", "status"})
)

// RegisterHTTPMetrics registers the HTTP collectors with the default registry.
// Safe to call more than once.
func RegisterHTTPMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpLatency, httpErrors)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec { return httpRequests }

// HTTPLatency exposes the latency histogram.
func HTTPLatency() *prometheus.HistogramVec { return httpLatency }

// HTTPErrors exposes the error counter.
func HTTPErrors() *prometheus.CounterVec { return httpErrors }
