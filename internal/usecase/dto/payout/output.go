package payoutdto

import "time"

// PreviewOutput is a pure quote. Nothing is reserved or mutated by a preview.
type PreviewOutput struct {
	GrossAmount      int64 `json:"gross_amount"`
	FeeAmount        int64 `json:"fee_amount"`
	NetAmount        int64 `json:"net_amount"`
	AvailableBalance int64 `json:"available_balance"`
}

type PayoutOutput struct {
	ID            string     `json:"id"`
	DisplayNumber string     `json:"display_number"`
	UserID        string     `json:"user_id"`
	Method        string     `json:"method"`
	GrossAmount   int64      `json:"gross_amount"`
	FeeAmount     int64      `json:"fee_amount"`
	NetAmount     int64      `json:"net_amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	FailureReason string     `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type WalletOutput struct {
	UserID           string `json:"user_id"`
	PendingBalance   int64  `json:"pending_balance"`
	AvailableBalance int64  `json:"available_balance"`
}
