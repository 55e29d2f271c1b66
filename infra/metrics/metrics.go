// Package metrics holds the prometheus collectors for the HTTP surface,
// the rate cache and the upstream resilience policy.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	UpstreamRequestsTotal *prometheus.CounterVec
	UpstreamRetriesTotal  *prometheus.CounterVec
	BreakerState          *prometheus.GaugeVec
}

// New registers all collectors on the given registerer. Pass
// prometheus.NewRegistry() in tests to avoid default-registry collisions.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_hits_total",
				Help: "Total number of rate cache hits",
			},
			[]string{"operation"},
		),

		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_misses_total",
				Help: "Total number of rate cache misses",
			},
			[]string{"operation"},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_requests_total",
				Help: "Total number of upstream provider requests",
			},
			[]string{"provider", "outcome"},
		),

		UpstreamRetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_retries_total",
				Help: "Total number of retried upstream requests",
			},
			[]string{"provider"},
		),

		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "upstream_breaker_state",
				Help: "Circuit breaker state per upstream (0=closed, 1=half-open, 2=open)",
			},
			[]string{"provider"},
		),
	}
}
