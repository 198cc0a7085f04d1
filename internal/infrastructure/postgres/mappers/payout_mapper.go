package mappers

import (
	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMPayout(payout *domain.Payout) *models.PayoutModel {
	return &models.PayoutModel{
		ID:               payout.ID,
		DisplayNumber:    payout.DisplayNumber,
		UserID:           payout.UserID,
		Method:           payout.Method,
		GrossAmount:      payout.GrossAmount,
		FeeAmount:        payout.FeeAmount,
		NetAmount:        payout.NetAmount,
		Currency:         payout.Currency,
		ProviderPayoutID: payout.ProviderPayoutID,
		Status:           payout.Status,
		FailureReason:    payout.FailureReason,
		CreatedAt:        payout.CreatedAt,
		PaidAt:           payout.PaidAt,
	}
}

func ToDomainPayout(model *models.PayoutModel) *domain.Payout {
	return &domain.Payout{
		ID:               model.ID,
		DisplayNumber:    model.DisplayNumber,
		UserID:           model.UserID,
		Method:           model.Method,
		GrossAmount:      model.GrossAmount,
		FeeAmount:        model.FeeAmount,
		NetAmount:        model.NetAmount,
		Currency:         model.Currency,
		ProviderPayoutID: model.ProviderPayoutID,
		Status:           model.Status,
		FailureReason:    model.FailureReason,
		CreatedAt:        model.CreatedAt,
		PaidAt:           model.PaidAt,
	}
}

func ToDomainReconciliationEntry(model *models.ReconciliationEntryModel) *domain.ReconciliationEntry {
	return &domain.ReconciliationEntry{
		ID:         model.ID,
		OrderID:    model.OrderID,
		UserID:     model.UserID,
		Amount:     model.Amount,
		Reason:     model.Reason,
		Detail:     model.Detail,
		Resolved:   model.Resolved,
		CreatedAt:  model.CreatedAt,
		ResolvedAt: model.ResolvedAt,
	}
}
