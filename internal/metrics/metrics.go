package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gtonledger"

var (
	// Operations counts engine calls by operation and outcome.
	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger operations by name and result",
		},
		[]string{"operation", "result"},
	)

	// TxRetries counts store transactions restarted after Busy or Conflict.
	TxRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_retries_total",
			Help:      "Store transactions retried after contention",
		},
	)

	ReconciliationAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliation_alerts_total",
			Help:      "Wallet balance and ledger history divergences",
		},
		[]string{"kind"},
	)

	CommissionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commission_failures_total",
			Help:      "Commission cascades that failed after the debit committed",
		},
	)

	CommissionPaid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commission_paid_gton_total",
			Help:      "GTON credited as referral commission",
		},
		[]string{"level"},
	)

	RatesAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rates_age_seconds",
			Help:      "Age of the cached exchange rates",
		},
	)

	RatesFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rates_fetch_errors_total",
			Help:      "Failed rate source requests",
		},
		[]string{"source"},
	)

	BonusForfeited = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bonus_forfeited_wallets_total",
			Help:      "Bonus wallets zeroed after expiry",
		},
	)

	WalletTotals = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wallet_balance_gton",
			Help:      "Sum of wallet balances by kind",
		},
		[]string{"kind"},
	)

	EventPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_errors_total",
			Help:      "Audit events that could not be published",
		},
	)
)

// Observe records the outcome of one operation.
func Observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	Operations.WithLabelValues(operation, result).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
