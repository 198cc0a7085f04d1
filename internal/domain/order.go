package domain

import "time"

type OrderStatus string

const (
	StatusCreated           OrderStatus = "CREATED"
	StatusPendingPayment    OrderStatus = "PENDING_PAYMENT"
	StatusPaid              OrderStatus = "PAID"
	StatusShipped           OrderStatus = "SHIPPED"
	StatusReturnStarted     OrderStatus = "RETURN_STARTED"
	StatusReturnProcessing  OrderStatus = "RETURN_PROCESSING"
	StatusDisputed          OrderStatus = "DISPUTED"
	StatusCancelled         OrderStatus = "CANCELLED"
	StatusCancelledBySeller OrderStatus = "CANCELLED_BY_SELLER"
	StatusCompleted         OrderStatus = "COMPLETED"
)

// EscrowStatus tracks the money independently of the order's logistics status:
// a dispute can freeze escrow while the order itself is still RETURN_PROCESSING.
type EscrowStatus string

const (
	EscrowNone     EscrowStatus = "NONE"
	EscrowPending  EscrowStatus = "PENDING"
	EscrowHeld     EscrowStatus = "HELD"
	EscrowFrozen   EscrowStatus = "FROZEN"
	EscrowReleased EscrowStatus = "RELEASED"
	EscrowRefunded EscrowStatus = "REFUNDED"
)

type TransitionEvent string

const (
	EventPaid                  TransitionEvent = "paid_event"
	EventShip                  TransitionEvent = "ship_action"
	EventConfirmDelivery       TransitionEvent = "confirm_delivery"
	EventStartReturn           TransitionEvent = "start_return"
	EventSubmitTracking        TransitionEvent = "submit_tracking"
	EventSellerConfirmsReceipt TransitionEvent = "seller_confirms_receipt"
	EventSellerDisputes        TransitionEvent = "seller_disputes"
	EventCancel                TransitionEvent = "cancel"
	EventCancelBySeller        TransitionEvent = "cancel_by_seller"
	EventBuyerDispute          TransitionEvent = "buyer_dispute"
	EventReturnDeadlineExpired TransitionEvent = "return_deadline_expired"
	EventDisputeRelease        TransitionEvent = "dispute_resolved_release"
	EventDisputeRefund         TransitionEvent = "dispute_resolved_refund"
)

var transitions = map[OrderStatus]map[TransitionEvent]OrderStatus{
	StatusCreated: {
		EventPaid:           StatusPaid,
		EventCancel:         StatusCancelled,
		EventCancelBySeller: StatusCancelledBySeller,
	},
	StatusPendingPayment: {
		EventPaid:           StatusPaid,
		EventCancel:         StatusCancelled,
		EventCancelBySeller: StatusCancelledBySeller,
	},
	StatusPaid: {
		EventShip:           StatusShipped,
		EventCancel:         StatusCancelled,
		EventCancelBySeller: StatusCancelledBySeller,
	},
	StatusShipped: {
		EventConfirmDelivery: StatusCompleted,
		EventStartReturn:     StatusReturnStarted,
		EventBuyerDispute:    StatusDisputed,
	},
	StatusReturnStarted: {
		EventSubmitTracking:        StatusReturnProcessing,
		EventSellerDisputes:        StatusReturnProcessing,
		EventReturnDeadlineExpired: StatusCompleted,
	},
	StatusReturnProcessing: {
		EventSellerConfirmsReceipt: StatusCompleted,
		EventSellerDisputes:        StatusReturnProcessing,
		EventDisputeRefund:         StatusCompleted,
		EventDisputeRelease:        StatusCompleted,
	},
	StatusDisputed: {
		EventDisputeRelease: StatusCompleted,
		EventDisputeRefund:  StatusCancelled,
	},
}

// NextStatus resolves the legal transition for (current, event). Callers must
// still commit the transition with a conditional update on the expected prior
// status: the table answers legality, the storage layer answers races.
func NextStatus(current OrderStatus, event TransitionEvent) (OrderStatus, error) {
	byEvent, ok := transitions[current]
	if !ok {
		return "", illegalTransition(current, event)
	}
	next, ok := byEvent[event]
	if !ok {
		return "", illegalTransition(current, event)
	}
	return next, nil
}

type Order struct {
	ID            string
	DisplayNumber string
	BuyerID       string
	SellerID      string
	ListingID     string
	Quantity      int32

	// Money snapshot, minor currency units, fixed at payment time.
	ItemPrice      int64
	ShippingAmount int64
	TaxAmount      int64
	BuyerFee       int64
	SellerFee      int64
	SellerNet      int64
	TotalCharged   int64
	Currency       string

	Status       OrderStatus
	EscrowStatus EscrowStatus

	// Idempotency markers: the ledger must move exactly once per order
	// regardless of webhook replay.
	WalletCredited bool
	WalletReversed bool

	ProviderSessionID string
	ProviderChargeID  string
	RefundID          string

	ReturnReason   string
	ReturnNotes    string
	ReturnTracking string
	ReturnDeadline *time.Time
	DisputeID      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EscrowAmount is what the platform holds for the seller: item price plus
// shipping. Tax and the buyer fee never enter escrow.
func (o *Order) EscrowAmount() int64 {
	return o.ItemPrice + o.ShippingAmount
}

// RefundAmount is what goes back to the buyer on cancellation: escrow plus
// tax. The buyer fee is non-refundable.
func (o *Order) RefundAmount() int64 {
	return o.ItemPrice + o.ShippingAmount + o.TaxAmount
}

func (o *Order) IsTerminal() bool {
	switch o.Status {
	case StatusCompleted, StatusCancelled, StatusCancelledBySeller:
		return true
	}
	return false
}

func (o *Order) InReturnFlow() bool {
	return o.Status == StatusReturnStarted || o.Status == StatusReturnProcessing
}
