package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EscrowMetrics groups the counters for the order/escrow engine. A nil
// receiver is a no-op so usecases can run without a registry in tests.
type EscrowMetrics struct {
	WebhookEventsTotal        prometheus.CounterVec
	WebhookProcessingDuration prometheus.HistogramVec

	OrderTransitionsTotal prometheus.CounterVec

	LedgerAdjustmentsTotal prometheus.CounterVec
	LedgerAmountTotal      prometheus.CounterVec

	RefundsTotal      prometheus.CounterVec
	RefundAmountTotal prometheus.CounterVec

	PayoutsTotal prometheus.CounterVec

	// ReconciliationGapsTotal is the operator alert: money moved at the
	// provider but the ledger correction failed.
	ReconciliationGapsTotal prometheus.Counter

	AmountMismatchTotal prometheus.Counter
}

func NewEscrowMetrics() *EscrowMetrics {
	return &EscrowMetrics{
		WebhookEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_events_total",
				Help: "Provider webhook events by type and handling result",
			},
			[]string{"event_type", "result"},
		),

		WebhookProcessingDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webhook_processing_duration_seconds",
				Help:    "Webhook handling latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"event_type"},
		),

		OrderTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_transitions_total",
				Help: "Committed order state transitions by event",
			},
			[]string{"event"},
		),

		LedgerAdjustmentsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_adjustments_total",
				Help: "Wallet balance adjustments by account and direction",
			},
			[]string{"account", "direction"},
		),

		LedgerAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_amount_minor_units_total",
				Help: "Absolute adjusted amount in minor units",
			},
			[]string{"account", "direction"},
		),

		RefundsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_total",
				Help: "Provider refunds issued by trigger",
			},
			[]string{"trigger"},
		),

		RefundAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refund_amount_minor_units_total",
				Help: "Refunded amount in minor units by trigger",
			},
			[]string{"trigger"},
		),

		PayoutsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payouts_total",
				Help: "Payout requests by method and status",
			},
			[]string{"method", "status"},
		),

		ReconciliationGapsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reconciliation_gaps_total",
				Help: "Ledger gaps requiring operator attention",
			},
		),

		AmountMismatchTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webhook_amount_mismatch_total",
				Help: "Webhook events whose charged amount did not match the order",
			},
		),
	}
}

func (m *EscrowMetrics) RecordWebhook(eventType, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.WebhookEventsTotal.WithLabelValues(eventType, result).Inc()
	m.WebhookProcessingDuration.WithLabelValues(eventType).Observe(elapsed.Seconds())
}

func (m *EscrowMetrics) RecordTransition(event string) {
	if m == nil {
		return
	}
	m.OrderTransitionsTotal.WithLabelValues(event).Inc()
}

func (m *EscrowMetrics) RecordLedger(account string, delta int64) {
	if m == nil {
		return
	}
	direction := "credit"
	amount := delta
	if delta < 0 {
		direction = "debit"
		amount = -delta
	}
	m.LedgerAdjustmentsTotal.WithLabelValues(account, direction).Inc()
	m.LedgerAmountTotal.WithLabelValues(account, direction).Add(float64(amount))
}

func (m *EscrowMetrics) RecordRefund(trigger string, amount int64) {
	if m == nil {
		return
	}
	m.RefundsTotal.WithLabelValues(trigger).Inc()
	m.RefundAmountTotal.WithLabelValues(trigger).Add(float64(amount))
}

func (m *EscrowMetrics) RecordPayout(method, status string) {
	if m == nil {
		return
	}
	m.PayoutsTotal.WithLabelValues(method, status).Inc()
}

func (m *EscrowMetrics) RecordReconciliationGap() {
	if m == nil {
		return
	}
	m.ReconciliationGapsTotal.Inc()
}

func (m *EscrowMetrics) RecordAmountMismatch() {
	if m == nil {
		return
	}
	m.AmountMismatchTotal.Inc()
}
