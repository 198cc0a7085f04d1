package orderdto

import "time"

type OrderOutput struct {
	ID             string     `json:"id"`
	DisplayNumber  string     `json:"display_number"`
	BuyerID        string     `json:"buyer_id"`
	SellerID       string     `json:"seller_id"`
	ListingID      string     `json:"listing_id"`
	Quantity       int32      `json:"quantity"`
	ItemPrice      int64      `json:"item_price"`
	ShippingAmount int64      `json:"shipping_amount"`
	TaxAmount      int64      `json:"tax_amount"`
	BuyerFee       int64      `json:"buyer_fee"`
	SellerFee      int64      `json:"seller_fee"`
	SellerNet      int64      `json:"seller_net"`
	TotalCharged   int64      `json:"total_charged"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	EscrowStatus   string     `json:"escrow_status"`
	ReturnReason   string     `json:"return_reason,omitempty"`
	ReturnTracking string     `json:"return_tracking,omitempty"`
	ReturnDeadline *time.Time `json:"return_deadline,omitempty"`
	DisputeID      string     `json:"dispute_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CancelOutput struct {
	RefundID    string `json:"refund_id"`
	CancelledBy string `json:"cancelled_by"`
}
