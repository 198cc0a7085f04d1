package orderdto

// CreateOrderInput opens an order at checkout initiation. All money fields
// are minor currency units and are frozen into the order's snapshot.
type CreateOrderInput struct {
	BuyerID           string
	SellerID          string
	ListingID         string
	Quantity          int32
	ItemPrice         int64
	ShippingAmount    int64
	TaxAmount         int64
	BuyerFee          int64
	Currency          string
	ProviderSessionID string
}

// PaymentSucceededInput is a verified checkout-completed / payment-succeeded
// provider event, already signature-checked by the delivery layer.
type PaymentSucceededInput struct {
	OrderID   string
	Amount    int64
	Currency  string
	SessionID string
	ChargeID  string
}

type StartReturnInput struct {
	OrderID string
	ActorID string
	Reason  string
	Notes   string
}
