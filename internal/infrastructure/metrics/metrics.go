package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Statement metrics
	StatementsLoaded *prometheus.CounterVec
	LoadErrors       *prometheus.CounterVec
	LoadDuration     prometheus.Histogram
	RowsProcessed    *prometheus.CounterVec
	EncodingSelected *prometheus.CounterVec

	// Ledger metrics
	LedgerTransactions prometheus.Gauge
	LedgerBalance      prometheus.Gauge

	// Cache metrics
	CacheOperations *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all Prometheus metrics and registers them with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		// Statement metrics
		StatementsLoaded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extracto_statements_loaded_total",
				Help: "Total statements loaded by origin (parsed or cache)",
			},
			[]string{"origin"},
		),
		LoadErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extracto_statement_load_errors_total",
				Help: "Total failed statement loads by reason",
			},
			[]string{"reason"},
		),
		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "extracto_statement_load_duration_seconds",
			Help:    "Duration of statement loads",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		RowsProcessed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extracto_rows_processed_total",
				Help: "Statement rows by outcome",
			},
			[]string{"outcome"},
		),
		EncodingSelected: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extracto_encoding_selected_total",
				Help: "Text encoding that produced the loaded statement",
			},
			[]string{"encoding"},
		),

		// Ledger metrics
		LedgerTransactions: f.NewGauge(prometheus.GaugeOpts{
			Name: "extracto_ledger_transactions",
			Help: "Transactions in the current ledger",
		}),
		LedgerBalance: f.NewGauge(prometheus.GaugeOpts{
			Name: "extracto_ledger_final_balance",
			Help: "Final running balance of the current ledger",
		}),

		// Cache metrics
		CacheOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extracto_cache_operations_total",
				Help: "Ledger cache lookups and writes by result",
			},
			[]string{"operation", "result"},
		),

		// Rate limiting metrics
		RateLimitHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extracto_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"path"},
		),
	}
}
