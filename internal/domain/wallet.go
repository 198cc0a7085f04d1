package domain

import (
	"context"
	"time"
)

// Wallet holds a seller's escrow balances in minor currency units. Pending is
// credited escrow still inside a return/dispute window, available is
// withdrawable. Balances are mutated only through LedgerService increments,
// never read-modify-write.
type Wallet struct {
	UserID           string
	PendingBalance   int64
	AvailableBalance int64
	UpdatedAt        time.Time
}

// LedgerService is the single path by which wallet balances change. Every
// mutation is a relative increment executed as one conditional statement at
// the storage layer, so concurrent webhooks, cancellations and payouts cannot
// lose updates.
type LedgerService interface {
	GetWallet(ctx context.Context, userID string) (*Wallet, error)

	// AdjustPending and AdjustAvailable apply a relative delta (negative
	// allowed) and return the new balance. A debit that would drive the
	// balance negative fails with ErrInsufficientFunds.
	AdjustPending(ctx context.Context, userID string, delta int64) (int64, error)
	AdjustAvailable(ctx context.Context, userID string, delta int64) (int64, error)

	// ReleasePending atomically moves amount from pending to available.
	ReleasePending(ctx context.Context, userID string, amount int64) error

	// CreditPendingForOrder flips the order's wallet_credited marker and
	// increments the seller's pending balance in one transaction. Replays
	// return credited=false without touching the balance: the operation is
	// idempotent per order, not per call.
	CreditPendingForOrder(ctx context.Context, orderID, sellerID string, amount int64) (credited bool, err error)

	// ReversePendingForOrder is the symmetric reversal used on cancellation
	// and refunded returns, idempotent via the same marker.
	ReversePendingForOrder(ctx context.Context, orderID, sellerID string, amount int64) (reversed bool, err error)

	// FailPayoutAndRecredit commits the payout's PENDING -> FAILED flip and
	// the gross re-credit of the seller's available balance in one
	// transaction. failed=false means a replayed provider event; the balance
	// is untouched.
	FailPayoutAndRecredit(ctx context.Context, payoutID, userID string, amount int64, reason string) (failed bool, err error)
}
