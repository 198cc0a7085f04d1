package kafka

type OrderEvent struct {
	OrderID       string `json:"order_id"`
	DisplayNumber string `json:"display_number"`
	BuyerID       string `json:"buyer_id"`
	SellerID      string `json:"seller_id"`
	Status        string `json:"status"`
	EscrowStatus  string `json:"escrow_status"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}
