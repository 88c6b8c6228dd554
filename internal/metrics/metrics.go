// Package metrics exposes prometheus instrumentation for the HTTP surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests served, by method, route pattern and status.",
		},
		[]string{"method", "pattern", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency, by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "pattern"},
	)

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homepage_cache_hits_total",
		Help: "Homepage requests served from the rendered-page cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homepage_cache_misses_total",
		Help: "Homepage requests that rendered and repopulated the cache.",
	})
)

// Handler serves the /metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
