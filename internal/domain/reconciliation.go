package domain

import (
	"context"
	"time"
)

type ReconciliationReason string

const (
	// ReasonWalletReversal: provider refund succeeded but the pending-balance
	// reversal failed. Money left the buyer's custody without the ledger being
	// corrected: the one state the system cannot self-heal synchronously.
	ReasonWalletReversal ReconciliationReason = "WALLET_REVERSAL_FAILED"
	ReasonPendingRelease ReconciliationReason = "PENDING_RELEASE_FAILED"
	ReasonPayoutRecredit ReconciliationReason = "PAYOUT_RECREDIT_FAILED"
	ReasonStateDiverged  ReconciliationReason = "ORDER_STATE_DIVERGED"
)

// ReconciliationEntry is a durable record of a ledger gap awaiting retry or
// manual operator resolution. Never a fire-and-forget log line.
type ReconciliationEntry struct {
	ID         string
	OrderID    string
	UserID     string
	Amount     int64
	Reason     ReconciliationReason
	Detail     string
	Resolved   bool
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

type ReconciliationRepository interface {
	CreateEntry(ctx context.Context, entry *ReconciliationEntry) error
	FindOpenEntries(ctx context.Context) ([]*ReconciliationEntry, error)
	MarkResolved(ctx context.Context, entryID string) error
}
