package usecase

import (
	"context"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	payoutdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/payout"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// PreviewPayout quotes the fee for a withdrawal without reserving anything.
// Standard payouts are free; instant payouts carry a capped basis-point fee.
func (uc *DefaultPayoutUsecase) PreviewPayout(ctx context.Context, input *payoutdto.PreviewPayoutInput) (*payoutdto.PreviewOutput, error) {
	method, err := parseMethod(input.Method)
	if err != nil {
		return nil, err
	}

	wallet, err := uc.Ledger.GetWallet(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// An omitted amount quotes a full withdrawal of the available balance.
	gross := input.Amount
	if gross <= 0 {
		gross = wallet.AvailableBalance
	}

	fee := uc.instantFee(gross, method)
	return &payoutdto.PreviewOutput{
		GrossAmount:      gross,
		FeeAmount:        fee,
		NetAmount:        gross - fee,
		AvailableBalance: wallet.AvailableBalance,
	}, nil
}

func (uc *DefaultPayoutUsecase) instantFee(amount int64, method domain.PayoutMethod) int64 {
	if method != domain.PayoutInstant {
		return 0
	}
	fee := amount * uc.InstantFeeBps / 10000
	if fee > uc.InstantFeeCap {
		fee = uc.InstantFeeCap
	}
	return fee
}

func parseMethod(raw string) (domain.PayoutMethod, error) {
	switch domain.PayoutMethod(raw) {
	case domain.PayoutStandard:
		return domain.PayoutStandard, nil
	case domain.PayoutInstant:
		return domain.PayoutInstant, nil
	default:
		return "", status.Errorf(codes.InvalidArgument, "unknown payout method %q", raw)
	}
}
