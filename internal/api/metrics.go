package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitwall_http_requests_total",
		Help: "HTTP requests processed, by method, path and status code.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pitwall_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// trackedPaths are the registered routes. Request paths outside this set
// collapse to a single label value so scanner traffic hitting arbitrary
// paths cannot grow the label cardinality without bound.
var trackedPaths = map[string]bool{
	"/":                   true,
	"/api/races":          true,
	"/api/drivers":        true,
	"/api/laps":           true,
	"/api/stints":         true,
	"/api/pitstops":       true,
	"/api/sectors":        true,
	"/api/pace":           true,
	"/api/comparison":     true,
	"/api/telemetry":      true,
	"/api/speed-trace":    true,
	"/api/safety-car":     true,
	"/api/circuit":        true,
	"/charts/laptimes":    true,
	"/charts/pace":        true,
	"/charts/stints":      true,
	"/charts/telemetry":   true,
	"/charts/circuit.png": true,
}

// recordRequest updates the request counter and latency histogram.
func recordRequest(method, path string, status int, elapsed time.Duration) {
	if !trackedPaths[path] {
		path = "unmatched"
	}
	requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
