// file: internal/metrics/metrics.go
// version: 2.0.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes recorded per upstream call.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeFallback = "fallback"
	OutcomeTimeout  = "timeout"
)

var (
	registerOnce sync.Once

	autofillRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookstreamer",
		Name:      "autofill_requests_total",
		Help:      "Total number of autofill requests by HTTP status",
	}, []string{"status"})
	autofillDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bookstreamer",
		Name:      "autofill_duration_seconds",
		Help:      "Histogram of end-to-end autofill aggregation time in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.05, 1.6, 12),
	})
	upstreamLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookstreamer",
		Name:      "upstream_lookups_total",
		Help:      "Total number of upstream lookups by lookup, provider and outcome",
	}, []string{"lookup", "provider", "outcome"})
	upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bookstreamer",
		Name:      "upstream_lookup_duration_seconds",
		Help:      "Histogram of upstream lookup durations in seconds by lookup",
		Buckets:   prometheus.ExponentialBuckets(0.05, 1.6, 12),
	}, []string{"lookup"})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(autofillRequests, autofillDuration, upstreamLookups, upstreamDuration)
	})
}

func IncAutofillRequest(status string) { autofillRequests.WithLabelValues(status).Inc() }
func ObserveAutofillDuration(d time.Duration) { autofillDuration.Observe(d.Seconds()) }
func IncUpstreamLookup(lookup, provider, outcome string) {
	upstreamLookups.WithLabelValues(lookup, provider, outcome).Inc()
}
func ObserveUpstreamDuration(lookup string, d time.Duration) {
	upstreamDuration.WithLabelValues(lookup).Observe(d.Seconds())
}
