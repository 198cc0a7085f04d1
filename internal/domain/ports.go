package domain

import "context"

// PaymentProvider is the trusted external payment API. Refund and payout are
// the only blocking provider calls the core makes; neither may be retried
// automatically because neither is idempotent on the provider side.
type PaymentProvider interface {
	Refund(ctx context.Context, chargeID string, amount int64) (refundID string, err error)
	CreatePayout(ctx context.Context, userID string, amount int64, method PayoutMethod) (providerPayoutID string, err error)
}

// NotifierPort delivers best-effort push notifications. Implementations must
// never block or fail the calling operation.
type NotifierPort interface {
	SendPush(userID, title, body, route string)
}

// InventoryPort is the external listing service. Decrement failures are logged
// by callers, not propagated: stock bookkeeping must not fail a webhook.
type InventoryPort interface {
	DecrementQuantity(ctx context.Context, listingID string, qty int32) error
}
