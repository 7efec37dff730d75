// Package metrics holds the Prometheus collectors for the API server.
//
// Usage:
//
//	metrics.RecordSideEffectFailure(metrics.EffectActivityLog)
//	metrics.RecordNotification("like")
//	metrics.RecordCatalogRequest("tmdb", "success")
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Best-effort side effects whose failures are counted.
const (
	EffectActivityLog    = "activity_log"
	EffectNotification   = "notification"
	EffectActivityDelete = "activity_delete"
)

var (
	// SideEffectFailuresTotal counts best-effort writes that failed without failing the request.
	SideEffectFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelibri_side_effect_failures_total",
			Help: "Total number of best-effort side effects that failed",
		},
		[]string{"effect"},
	)

	// NotificationsEmittedTotal counts notifications written to the outbox by type.
	NotificationsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelibri_notifications_emitted_total",
			Help: "Total number of notifications emitted",
		},
		[]string{"type"},
	)

	// CatalogRequestsTotal counts upstream catalog calls by provider and outcome.
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelibri_catalog_requests_total",
			Help: "Total number of catalog provider requests",
		},
		[]string{"provider", "outcome"},
	)

	// CatalogBreakerState reports the breaker state per provider (0 closed, 1 half-open, 2 open).
	CatalogBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinelibri_catalog_breaker_state",
			Help: "Circuit breaker state per catalog provider",
		},
		[]string{"provider"},
	)

	// RateLimitedTotal counts requests rejected by the API rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinelibri_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// HTTPRequestDuration tracks request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinelibri_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func RecordSideEffectFailure(effect string) {
	SideEffectFailuresTotal.WithLabelValues(effect).Inc()
}

func RecordNotification(kind string) {
	NotificationsEmittedTotal.WithLabelValues(kind).Inc()
}

func RecordCatalogRequest(provider, outcome string) {
	CatalogRequestsTotal.WithLabelValues(provider, outcome).Inc()
}

func SetBreakerState(provider string, state int) {
	CatalogBreakerState.WithLabelValues(provider).Set(float64(state))
}

func RecordRateLimited() {
	RateLimitedTotal.Inc()
}

func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
