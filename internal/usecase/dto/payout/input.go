package payoutdto

type PreviewPayoutInput struct {
	UserID string
	Amount int64
	Method string
}

type RequestPayoutInput struct {
	UserID string
	Amount int64
	Method string
}
