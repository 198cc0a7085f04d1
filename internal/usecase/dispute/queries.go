package usecase

import (
	"context"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	disputedto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/dispute"
)

func (uc *DefaultDisputeUsecase) GetDisputeByID(ctx context.Context, disputeID string) (*disputedto.DisputeOutput, error) {
	dispute, err := uc.DisputeRepo.GetDisputeByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	return toDisputeOutput(dispute), nil
}

func (uc *DefaultDisputeUsecase) ListDisputes(ctx context.Context, status string, page, limit int64) ([]*disputedto.DisputeOutput, int64, error) {
	disputes, total, err := uc.DisputeRepo.ListDisputes(ctx, domain.DisputeStatus(status), page, limit)
	if err != nil {
		return nil, 0, err
	}

	outputs := make([]*disputedto.DisputeOutput, 0, len(disputes))
	for _, dispute := range disputes {
		outputs = append(outputs, toDisputeOutput(dispute))
	}
	return outputs, total, nil
}

func toDisputeOutput(dispute *domain.Dispute) *disputedto.DisputeOutput {
	return &disputedto.DisputeOutput{
		ID:            dispute.ID,
		OrderID:       dispute.OrderID,
		OpenedBy:      dispute.OpenedBy,
		OpenedByParty: string(dispute.OpenedByParty),
		Reason:        dispute.Reason,
		Description:   dispute.Description,
		Status:        string(dispute.Status),
		Outcome:       string(dispute.Outcome),
		RespondBy:     dispute.RespondBy,
		RespondedAt:   dispute.RespondedAt,
		ResolvedAt:    dispute.ResolvedAt,
		CreatedAt:     dispute.CreatedAt,
	}
}
