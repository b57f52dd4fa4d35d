package client

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opComputeChart   = "compute_chart"
	opDailyHoroscope = "daily_horoscope"
	opTransits       = "transits"
	opHealth         = "health"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astro_client",
			Name:      "requests_total",
			Help:      "Gateway calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "astro_client",
			Name:      "request_duration_seconds",
			Help:      "Gateway round-trip latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astro_client",
			Name:      "horoscope_cache_lookups_total",
			Help:      "Horoscope cache lookups by result (hit, miss, stale).",
		},
		[]string{"result"},
	)

	cachePurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "astro_client",
			Name:      "horoscope_cache_purged_total",
			Help:      "Entries removed by ClearOldCache.",
		},
	)
)

// outcome buckets an error for the requests_total label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsClientError(err):
		return "client_error"
	case IsServiceError(err):
		return "service_error"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "transport_error"
	}
}

func observeRequest(op string, start time.Time, err error) {
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(op, outcome(err)).Inc()
}
