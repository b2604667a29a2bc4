package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the ledger engine.
type Metrics struct {
	// Recorded transactions by type
	TransactionsRecorded *prometheus.CounterVec

	// Rejected transactions by rejection code
	TransactionsRejected *prometheus.CounterVec

	// Full recorder latency including validation and post effects
	RecordLatency prometheus.Histogram

	// Balance replay latency
	BalanceLatency prometheus.Histogram

	// Batch sizes as submitted by callers
	BatchSize prometheus.Histogram

	// Stats aggregations served from the cache vs computed
	StatsCacheHits   prometheus.Counter
	StatsCacheMisses prometheus.Counter
}

// New creates a Metrics instance with all ledger metrics registered.
func New() *Metrics {
	return &Metrics{
		TransactionsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_recorded_total",
			Help: "Total transactions recorded, by transaction type",
		}, []string{"type"}),

		TransactionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_rejected_total",
			Help: "Total transaction requests rejected, by rejection code",
		}, []string{"code"}),

		RecordLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_record_duration_seconds",
			Help:    "Duration of a full transaction recording including validation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		BalanceLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_balance_duration_seconds",
			Help:    "Duration of a contract balance replay",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_batch_size",
			Help:    "Number of items per submitted transaction batch",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),

		StatsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_stats_cache_hits_total",
			Help: "Stats aggregations served from the read-side cache",
		}),

		StatsCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_stats_cache_misses_total",
			Help: "Stats aggregations computed against the store",
		}),
	}
}

// IncRecorded records a successful transaction by type.
func (m *Metrics) IncRecorded(txType string) {
	if m != nil {
		m.TransactionsRecorded.WithLabelValues(txType).Inc()
	}
}

// IncRejected records a rejected transaction request by code.
func (m *Metrics) IncRejected(code string) {
	if m != nil {
		m.TransactionsRejected.WithLabelValues(code).Inc()
	}
}

// ObserveRecordLatency records the duration of one recorder invocation.
func (m *Metrics) ObserveRecordLatency(d time.Duration) {
	if m != nil {
		m.RecordLatency.Observe(d.Seconds())
	}
}

// ObserveBalanceLatency records the duration of one balance replay.
func (m *Metrics) ObserveBalanceLatency(d time.Duration) {
	if m != nil {
		m.BalanceLatency.Observe(d.Seconds())
	}
}

// ObserveBatchSize records the item count of a submitted batch.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}

// IncStatsCacheHit records a stats aggregation served from cache.
func (m *Metrics) IncStatsCacheHit() {
	if m != nil {
		m.StatsCacheHits.Inc()
	}
}

// IncStatsCacheMiss records a stats aggregation computed from the store.
func (m *Metrics) IncStatsCacheMiss() {
	if m != nil {
		m.StatsCacheMisses.Inc()
	}
}
