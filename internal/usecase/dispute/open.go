package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
	disputedto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/dispute"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// OpenDispute freezes the order and starts the evidence window. A buyer
// disputes a shipped order; a seller disputes a return in flight. Either way
// escrow is frozen until resolution and at most one dispute can be open per
// order.
func (uc *DefaultDisputeUsecase) OpenDispute(ctx context.Context, input *disputedto.OpenDisputeInput) (*disputedto.DisputeOutput, error) {
	if input.Reason == "" {
		return nil, status.Error(codes.InvalidArgument, "dispute reason is required")
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	var party domain.DisputeParty
	var event domain.TransitionEvent
	switch input.ActorID {
	case order.BuyerID:
		party = domain.PartyBuyer
		event = domain.EventBuyerDispute
	case order.SellerID:
		party = domain.PartySeller
		event = domain.EventSellerDisputes
	default:
		return nil, domain.ErrNotOrderParty
	}

	next, err := domain.NextStatus(order.Status, event)
	if err != nil {
		return nil, err
	}

	dispute := &domain.Dispute{
		ID:             uuid.New().String(),
		OrderID:        order.ID,
		OpenedBy:       input.ActorID,
		OpenedByParty:  party,
		Reason:         input.Reason,
		Description:    input.Description,
		OpenerEvidence: input.Evidence,
		RespondBy:      time.Now().Add(uc.ResponseTTL),
		Status:         domain.DisputeOpen,
	}
	if err := uc.DisputeRepo.CreateDispute(ctx, dispute); err != nil {
		return nil, err
	}

	// The dispute row exists but the order has not committed to it yet. If
	// the conditional link loses a race, void the orphan so the singleton
	// slot reopens.
	if err := uc.OrderRepo.LinkDispute(ctx, order.ID, dispute.ID, order.Status, next); err != nil {
		if verr := uc.DisputeRepo.VoidDispute(ctx, dispute.ID); verr != nil {
			slog.Error("failed to void orphaned dispute", "dispute_id", dispute.ID, "error", verr.Error())
		}
		return nil, err
	}
	uc.Metrics.RecordTransition(string(event))

	respondent := order.SellerID
	if party == domain.PartySeller {
		respondent = order.BuyerID
	}
	uc.Notifier.SendPush(respondent, "Dispute opened", "A dispute was opened on your order. Respond with evidence.", "/disputes/"+dispute.ID)
	uc.publishDisputeEvent(dispute)

	return toDisputeOutput(dispute), nil
}

func (uc *DefaultDisputeUsecase) publishDisputeEvent(dispute *domain.Dispute) {
	go func(event kafka.DisputeEvent) {
		if err := uc.Publisher.PublishDispute(event); err != nil {
			slog.Error("failed to publish kafka DisputeEvent", "dispute_id", event.DisputeID, "error", err.Error())
		}
	}(kafka.DisputeEvent{
		DisputeID: dispute.ID,
		OrderID:   dispute.OrderID,
		OpenedBy:  dispute.OpenedBy,
		Party:     string(dispute.OpenedByParty),
		Reason:    dispute.Reason,
		Status:    string(dispute.Status),
		Outcome:   string(dispute.Outcome),
	})
}
