package domain

import (
	"context"
	"time"
)

// MarkPaidParams carries everything the paid-event commit writes in one
// conditional update.
type MarkPaidParams struct {
	SellerFee         int64
	SellerNet         int64
	ProviderSessionID string
	ProviderChargeID  string
}

// MarkRefundedParams closes an order after a successful provider refund:
// cancellation or an accepted return.
type MarkRefundedParams struct {
	Expected  OrderStatus
	NewStatus OrderStatus
	RefundID  string
}

type OrderFilters struct {
	BuyerID  string
	SellerID string
	Statuses []OrderStatus
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) (string, error)
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetOrderByDisplayNumber(ctx context.Context, number string) (*Order, error)
	ListOrders(ctx context.Context, filters OrderFilters, page, limit int64) ([]*Order, int64, error)

	// UpdateOrderStatusIf commits a transition only if the persisted status
	// still equals expected. Zero rows affected surfaces ErrOrderStateChanged.
	UpdateOrderStatusIf(ctx context.Context, orderID string, expected, next OrderStatus, escrow EscrowStatus) error

	MarkPaid(ctx context.Context, orderID string, params MarkPaidParams) error
	MarkRefunded(ctx context.Context, orderID string, params MarkRefundedParams) error
	StartReturn(ctx context.Context, orderID, reason, notes string, deadline time.Time) error
	SubmitReturnTracking(ctx context.Context, orderID, tracking string) error
	LinkDispute(ctx context.Context, orderID, disputeID string, expected, next OrderStatus) error

	// FindExpiredReturns lists RETURN_STARTED orders past their deadline with
	// no tracking submitted, for the auto-release sweep.
	FindExpiredReturns(ctx context.Context) ([]*Order, error)
}
