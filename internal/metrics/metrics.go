// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stinger_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stinger_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route"},
	)

	// HTTPRequestsInFlight is the number of requests currently being served.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stinger_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// RateLimitHits counts requests rejected by the inbound rate limiter.
	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stinger_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// CatalogItems is the number of items in the loaded catalog.
	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stinger_catalog_items",
			Help: "Number of items in the loaded catalog",
		},
	)

	// QueryResults records the result size of each catalog query.
	QueryResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stinger_query_results",
			Help:    "Number of items returned per catalog query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500, 1000, 5000},
		},
		[]string{"operation"},
	)

	// TrailerLookups counts trailer lookups by outcome
	// (cache_hit, found, empty, not_found, rejected, error).
	TrailerLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stinger_trailer_lookups_total",
			Help: "Trailer lookups by outcome",
		},
		[]string{"outcome"},
	)

	// CircuitBreakerState is the breaker state: 0=closed, 1=half-open, 2=open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stinger_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitions counts breaker state changes.
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stinger_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)
