package domain

import (
	"context"
	"time"
)

type PayoutMethod string

const (
	PayoutStandard PayoutMethod = "STANDARD"
	PayoutInstant  PayoutMethod = "INSTANT"
)

type PayoutStatus string

const (
	PayoutPending PayoutStatus = "PENDING"
	PayoutPaid    PayoutStatus = "PAID"
	PayoutFailed  PayoutStatus = "FAILED"
)

type Payout struct {
	ID               string
	DisplayNumber    string
	UserID           string
	Method           PayoutMethod
	GrossAmount      int64
	FeeAmount        int64
	NetAmount        int64
	Currency         string
	ProviderPayoutID string
	Status           PayoutStatus
	FailureReason    string
	CreatedAt        time.Time
	PaidAt           *time.Time
}

type PayoutRepository interface {
	CreatePayout(ctx context.Context, payout *Payout) error
	GetPayoutByID(ctx context.Context, payoutID string) (*Payout, error)
	GetPayoutByProviderID(ctx context.Context, providerPayoutID string) (*Payout, error)
	// MarkPaidIf is a conditional PENDING -> PAID transition; zero rows
	// affected means a replayed provider event. The failure transition
	// lives on LedgerService so it commits together with the re-credit.
	MarkPaidIf(ctx context.Context, payoutID string, paidAt time.Time) (bool, error)
	ListPayoutsByUser(ctx context.Context, userID string, page, limit int64) ([]*Payout, int64, error)
}
