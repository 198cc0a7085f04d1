package usecase

import (
	"context"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	disputedto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/dispute"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RespondDispute records the counterparty's evidence. Only the party that did
// not open the dispute may respond, and only while it is still open.
func (uc *DefaultDisputeUsecase) RespondDispute(ctx context.Context, input *disputedto.RespondDisputeInput) error {
	if input.Evidence == "" {
		return status.Error(codes.InvalidArgument, "response evidence is required")
	}

	dispute, err := uc.DisputeRepo.GetDisputeByID(ctx, input.DisputeID)
	if err != nil {
		return err
	}
	if dispute.Status != domain.DisputeOpen {
		return domain.ErrDisputeAlreadyResolved
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, dispute.OrderID)
	if err != nil {
		return err
	}
	respondent := order.SellerID
	if dispute.OpenedByParty == domain.PartySeller {
		respondent = order.BuyerID
	}
	if input.ActorID != respondent {
		return domain.ErrNotOrderParty
	}

	if err := uc.DisputeRepo.AddResponse(ctx, dispute.ID, input.Evidence); err != nil {
		return err
	}

	uc.Notifier.SendPush(dispute.OpenedBy, "Dispute response", "The other party responded to the dispute.", "/disputes/"+dispute.ID)
	return nil
}
