package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	ImpactRequests  *prometheus.CounterVec // labels: outcome={ok,no_data,feed_error,bad_request}
	ListingRequests *prometheus.CounterVec // labels: outcome={ok,no_data,feed_error}
	ImpactLevels    *prometheus.CounterVec // labels: level={Low,Medium,High}

	FeedFetches       *prometheus.CounterVec // labels: outcome={success,timeout,network,status,malformed}
	FeedFetchDuration prometheus.Histogram
	FeedEvents        prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ImpactRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_impact",
			Name:      "impact_requests_total",
			Help:      "Impact query requests by outcome.",
		}, []string{"outcome"}),
		ListingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_impact",
			Name:      "listing_requests_total",
			Help:      "Earthquake listing requests by outcome.",
		}, []string{"outcome"}),
		ImpactLevels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_impact",
			Name:      "impact_levels_total",
			Help:      "Assessments returned by impact level.",
		}, []string{"level"}),
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_impact",
			Name:      "feed_fetches_total",
			Help:      "Upstream feed fetches by outcome.",
		}, []string{"outcome"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_impact",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of one upstream feed GET including body decode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FeedEvents: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_impact",
			Name:      "feed_events",
			Help:      "Number of features per successful feed fetch.",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 250, 500},
		}),
	}

	prometheus.MustRegister(
		m.ImpactRequests,
		m.ListingRequests,
		m.ImpactLevels,
		m.FeedFetches,
		m.FeedFetchDuration,
		m.FeedEvents,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ImpactRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_impact", Name: "impact_requests_total"}, []string{"outcome"}),
		ListingRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_impact", Name: "listing_requests_total"}, []string{"outcome"}),
		ImpactLevels:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_impact", Name: "impact_levels_total"}, []string{"level"}),
		FeedFetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_impact", Name: "feed_fetches_total"}, []string{"outcome"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_impact", Name: "feed_fetch_duration_seconds"}),
		FeedEvents:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_impact", Name: "feed_events"}),
	}
}
