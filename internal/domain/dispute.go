package domain

import (
	"context"
	"time"
)

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "OPEN"
	DisputeResolved DisputeStatus = "RESOLVED"
	DisputeVoided   DisputeStatus = "VOIDED"
)

type DisputeOutcome string

const (
	OutcomeRefundBuyer   DisputeOutcome = "REFUND_BUYER"
	OutcomeReleaseSeller DisputeOutcome = "RELEASE_SELLER"
)

type DisputeParty string

const (
	PartyBuyer  DisputeParty = "BUYER"
	PartySeller DisputeParty = "SELLER"
)

type Dispute struct {
	ID                 string
	OrderID            string
	OpenedBy           string
	OpenedByParty      DisputeParty
	Reason             string
	Description        string
	OpenerEvidence     string
	RespondentEvidence string
	RespondedAt        *time.Time
	RespondBy          time.Time
	Status             DisputeStatus
	Outcome            DisputeOutcome
	ResolvedAt         *time.Time
	CreatedAt          time.Time
}

type DisputeRepository interface {
	// CreateDispute enforces the singleton rule: at most one unresolved
	// dispute per order. A second open attempt fails with
	// ErrDisputeAlreadyOpen.
	CreateDispute(ctx context.Context, dispute *Dispute) error
	GetDisputeByID(ctx context.Context, disputeID string) (*Dispute, error)
	GetActiveDisputeByOrderID(ctx context.Context, orderID string) (*Dispute, error)
	AddResponse(ctx context.Context, disputeID, evidence string) error
	// ResolveDispute commits OPEN -> RESOLVED conditionally; a replay fails
	// with ErrDisputeAlreadyResolved.
	ResolveDispute(ctx context.Context, disputeID string, outcome DisputeOutcome) error
	VoidDispute(ctx context.Context, disputeID string) error
	FindExpiredDisputes(ctx context.Context) ([]*Dispute, error)
	ListDisputes(ctx context.Context, status DisputeStatus, page, limit int64) ([]*Dispute, int64, error)
}
