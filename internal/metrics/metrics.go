// Package metrics declares the Prometheus collectors of the wallet service.
// Collectors register with the default registry and are served by promhttp.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// CreditTransitions counts credit request state machine calls.
var CreditTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hrwallet",
	Name:      "credit_request_transitions_total",
	Help:      "Credit request transitions by operation and outcome.",
}, []string{"transition", "outcome"})

// RedemptionTransitions counts redemption state machine calls.
var RedemptionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hrwallet",
	Name:      "redemption_transitions_total",
	Help:      "Redemption transitions by operation and outcome.",
}, []string{"transition", "outcome"})

// WalletPostings counts committed ledger rows.
var WalletPostings = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hrwallet",
	Name:      "wallet_postings_total",
	Help:      "Wallet transactions posted by type.",
}, []string{"type"})

// SideEffectFailures counts best-effort side effects that failed.
var SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hrwallet",
	Name:      "side_effect_failures_total",
	Help:      "Failed audit, notification, email and proof side effects.",
}, []string{"kind"})

// BalanceDrift counts wallets whose cached balance disagreed with the ledger.
var BalanceDrift = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "hrwallet",
	Name:      "wallet_balance_drift_total",
	Help:      "Wallets found with a cached balance different from the ledger sum.",
})

// HTTPRequestDuration observes request latency.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "hrwallet",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request latency by method, route pattern and status.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// Outcome classifies an operation result into a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return "invalid_state"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	default:
		return "error"
	}
}
