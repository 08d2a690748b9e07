package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pawshearts", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pawshearts", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	DonationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "pawshearts", Name: "donations_created_total", Help: "Number of donations persisted."},
	)
	DonationsListed = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "pawshearts", Name: "donations_listed_total", Help: "Number of donation documents returned by list calls."},
	)
	ValidationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "pawshearts", Name: "donation_validation_failures_total", Help: "Number of donation payloads rejected before reaching the store."},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pawshearts", Name: "store_errors_total", Help: "Number of failed document-store operations by operation."},
		[]string{"operation"},
	)
)

var registerOnce sync.Once

// RegisterCollectors registers every collector once; later calls are no-ops.
func RegisterCollectors(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(RateLimitAllowed)
		reg.MustRegister(RateLimitRejected)
		reg.MustRegister(DonationsCreated)
		reg.MustRegister(DonationsListed)
		reg.MustRegister(ValidationFailures)
		reg.MustRegister(StoreErrors)
	})
}
