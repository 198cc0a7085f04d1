package kafka

type DisputeEvent struct {
	DisputeID string `json:"dispute_id"`
	OrderID   string `json:"order_id"`
	OpenedBy  string `json:"opened_by"`
	Party     string `json:"party"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	Outcome   string `json:"outcome,omitempty"`
}
