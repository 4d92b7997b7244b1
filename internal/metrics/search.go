package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every exported metric.
const Namespace = "scanexplorer"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Total number of search requests by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)

	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine round-trip duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"op"},
	)

	EngineErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "engine_errors_total",
			Help:      "Total failed search engine round-trips",
		},
		[]string{"op"},
	)

	EnrichmentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "enrichment_duration_seconds",
			Help:      "Relational enrichment lookup duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RateLimitRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rate_limit_rejected_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(EngineRequestDuration)
	prometheus.MustRegister(EngineErrorsTotal)
	prometheus.MustRegister(EnrichmentDuration)
	prometheus.MustRegister(RateLimitRejectedTotal)
	searchMetricsRegistered = true
}
