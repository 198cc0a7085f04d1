package usecase

import (
	"context"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	payoutdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/payout"
)

func (uc *DefaultPayoutUsecase) GetWallet(ctx context.Context, userID string) (*payoutdto.WalletOutput, error) {
	wallet, err := uc.Ledger.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &payoutdto.WalletOutput{
		UserID:           wallet.UserID,
		PendingBalance:   wallet.PendingBalance,
		AvailableBalance: wallet.AvailableBalance,
	}, nil
}

func (uc *DefaultPayoutUsecase) ListPayouts(ctx context.Context, userID string, page, limit int64) ([]*payoutdto.PayoutOutput, int64, error) {
	payouts, total, err := uc.PayoutRepo.ListPayoutsByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	outputs := make([]*payoutdto.PayoutOutput, 0, len(payouts))
	for _, payout := range payouts {
		outputs = append(outputs, toPayoutOutput(payout))
	}
	return outputs, total, nil
}

func toPayoutOutput(payout *domain.Payout) *payoutdto.PayoutOutput {
	return &payoutdto.PayoutOutput{
		ID:            payout.ID,
		DisplayNumber: payout.DisplayNumber,
		UserID:        payout.UserID,
		Method:        string(payout.Method),
		GrossAmount:   payout.GrossAmount,
		FeeAmount:     payout.FeeAmount,
		NetAmount:     payout.NetAmount,
		Currency:      payout.Currency,
		Status:        string(payout.Status),
		FailureReason: payout.FailureReason,
		CreatedAt:     payout.CreatedAt,
		PaidAt:        payout.PaidAt,
	}
}
