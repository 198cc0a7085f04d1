package kafka

type PayoutEvent struct {
	PayoutID string `json:"payout_id"`
	UserID   string `json:"user_id"`
	Method   string `json:"method"`
	Gross    int64  `json:"gross_amount"`
	Fee      int64  `json:"fee_amount"`
	Net      int64  `json:"net_amount"`
	Status   string `json:"status"`
}
