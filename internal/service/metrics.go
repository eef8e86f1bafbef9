package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors for the scoring engine. Counters
// and gauges are only touched after a successful commit, so a failed pass
// never skews the tier distribution. Collectors exist from package init;
// InitMetrics exposes them on the default registry.
var Metrics = struct {
	PassDuration prometheus.Histogram
	UsersScored  prometheus.Counter
	PassFailures prometheus.Counter
	TierGauge    *prometheus.GaugeVec
}{
	PassDuration: prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "traderank_recompute_pass_duration_seconds",
			Help:    "Duration of committed batch recomputation passes.",
			Buckets: prometheus.DefBuckets,
		},
	),
	UsersScored: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "traderank_users_scored_total",
			Help: "Total users scored across committed batch passes.",
		},
	),
	PassFailures: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "traderank_recompute_failures_total",
			Help: "Total aborted recomputation passes (nothing committed).",
		},
	),
	TierGauge: prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "traderank_tier_users",
			Help: "Users per tier as of the last committed batch pass.",
		},
		[]string{"tier"},
	),
}

// InitMetrics registers the engine's collectors on the default Prometheus
// registry. Call once at startup.
func InitMetrics() {
	prometheus.MustRegister(
		Metrics.PassDuration,
		Metrics.UsersScored,
		Metrics.PassFailures,
		Metrics.TierGauge,
	)
}
