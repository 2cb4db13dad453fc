package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics recorded by the batch scheduler
// and the server process. Request-level HTTP metrics are recorded by
// the HTTP middleware instead.
type Metrics struct {
	// Payout batches, labeled by kind (daily, annual)
	PayoutBatchRuns  *prometheus.CounterVec
	PayoutsApplied   *prometheus.CounterVec
	PayoutsSkipped   *prometheus.CounterVec
	PayoutFailures   *prometheus.CounterVec
	PayoutAmount     *prometheus.CounterVec
	BatchRunDuration *prometheus.HistogramVec

	// Reconciliation sweeps
	ReconciliationRuns          prometheus.Counter
	ReconciliationDiscrepancies prometheus.Gauge

	// Database pool
	DBConnections prometheus.Gauge
}

// New registers and returns all metrics.
func New() *Metrics {
	return &Metrics{
		PayoutBatchRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_payout_batch_runs_total",
				Help: "Total number of payout batch runs",
			},
			[]string{"kind"},
		),
		PayoutsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_payouts_applied_total",
				Help: "Total number of payouts applied",
			},
			[]string{"kind"},
		),
		PayoutsSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_payouts_skipped_total",
				Help: "Total number of payouts skipped as already processed",
			},
			[]string{"kind"},
		),
		PayoutFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_payout_failures_total",
				Help: "Total number of per-deposit payout failures",
			},
			[]string{"kind"},
		),
		PayoutAmount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_payout_amount_total",
				Help: "Total amount paid out",
			},
			[]string{"kind"},
		),
		BatchRunDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loanledger_batch_run_duration_seconds",
				Help:    "Payout batch run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanledger_reconciliation_runs_total",
			Help: "Total number of reconciliation sweeps",
		}),
		ReconciliationDiscrepancies: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loanledger_reconciliation_discrepancies",
			Help: "Accounts with a balance discrepancy in the last sweep",
		}),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loanledger_db_connections",
			Help: "Current number of database connections",
		}),
	}
}
