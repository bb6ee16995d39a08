package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "superadmin_provider_requests_total",
			Help: "Identity provider admin calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	providerLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "superadmin_provider_request_duration_seconds",
			Help:    "Latency of identity provider admin calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func observeProviderCall(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	providerRequests.WithLabelValues(operation, outcome).Inc()
	providerLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
