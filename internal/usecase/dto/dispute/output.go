package disputedto

import "time"

type DisputeOutput struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	OpenedBy      string     `json:"opened_by"`
	OpenedByParty string     `json:"opened_by_party"`
	Reason        string     `json:"reason"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	Outcome       string     `json:"outcome,omitempty"`
	RespondBy     time.Time  `json:"respond_by"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
