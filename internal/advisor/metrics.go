package advisor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments for the advisor API.
type metrics struct {
	recommendTotal   *prometheus.CounterVec
	filterTotal      prometheus.Counter
	recommendSeconds prometheus.Histogram
}

// newMetrics registers the advisor metrics on the default registry.
func newMetrics() *metrics {
	return newMetricsWith(prometheus.DefaultRegisterer)
}

// newMetricsWith registers on an explicit registry. Tests pass a fresh
// registry so repeated plugin construction does not collide.
func newMetricsWith(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		recommendTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phoneadvisor",
			Subsystem: "advisor",
			Name:      "recommend_requests_total",
			Help:      "Recommendation queries served, by outcome.",
		}, []string{"outcome"}),
		filterTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "phoneadvisor",
			Subsystem: "advisor",
			Name:      "filter_requests_total",
			Help:      "Filter queries served.",
		}),
		recommendSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "phoneadvisor",
			Subsystem: "advisor",
			Name:      "recommend_duration_seconds",
			Help:      "Latency of recommendation queries.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Outcome labels for recommend_requests_total.
const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
)
