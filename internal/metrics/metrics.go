package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics for the analysis pipeline.
type Metrics struct {
	AnalysesTotal  *prometheus.CounterVec // labels: outcome
	AnalysisDur    prometheus.Histogram
	QuotaDenials   prometheus.Counter
	MarketDataDur  prometheus.Histogram
	AIDur          prometheus.Histogram
	ActiveRequests prometheus.Gauge
}

// New registers and returns the pipeline metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptopulse_analyses_total",
			Help: "Analysis requests by outcome (ok, quota_denied, symbol_not_found, data_error, ai_error, store_error)",
		}, []string{"outcome"}),
		AnalysisDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cryptopulse_analysis_duration_seconds",
			Help:    "End-to-end analysis latency (quota check through persisted result)",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		QuotaDenials: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cryptopulse_quota_denials_total",
			Help: "Requests denied by the daily quota ledger",
		}),
		MarketDataDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cryptopulse_market_data_duration_seconds",
			Help:    "Market data fetch latency",
			Buckets: prometheus.DefBuckets,
		}),
		AIDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cryptopulse_ai_duration_seconds",
			Help:    "AI completion latency",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 60, 90},
		}),
		ActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cryptopulse_active_requests",
			Help: "Analysis requests currently in flight",
		}),
	}

	reg.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDur,
		m.QuotaDenials,
		m.MarketDataDur,
		m.AIDur,
		m.ActiveRequests,
	)

	return m
}

// ObserveOutcome records one finished request.
func (m *Metrics) ObserveOutcome(outcome string, start time.Time) {
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalysisDur.Observe(time.Since(start).Seconds())
}
