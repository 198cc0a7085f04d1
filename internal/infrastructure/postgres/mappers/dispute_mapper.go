package mappers

import (
	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	return &models.DisputeModel{
		ID:                 dispute.ID,
		OrderID:            dispute.OrderID,
		OpenedBy:           dispute.OpenedBy,
		OpenedByParty:      dispute.OpenedByParty,
		Reason:             dispute.Reason,
		Description:        dispute.Description,
		OpenerEvidence:     dispute.OpenerEvidence,
		RespondentEvidence: dispute.RespondentEvidence,
		RespondedAt:        dispute.RespondedAt,
		RespondBy:          dispute.RespondBy,
		Status:             dispute.Status,
		Outcome:            dispute.Outcome,
		ResolvedAt:         dispute.ResolvedAt,
		CreatedAt:          dispute.CreatedAt,
	}
}

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	return &domain.Dispute{
		ID:                 model.ID,
		OrderID:            model.OrderID,
		OpenedBy:           model.OpenedBy,
		OpenedByParty:      model.OpenedByParty,
		Reason:             model.Reason,
		Description:        model.Description,
		OpenerEvidence:     model.OpenerEvidence,
		RespondentEvidence: model.RespondentEvidence,
		RespondedAt:        model.RespondedAt,
		RespondBy:          model.RespondBy,
		Status:             model.Status,
		Outcome:            model.Outcome,
		ResolvedAt:         model.ResolvedAt,
		CreatedAt:          model.CreatedAt,
	}
}
