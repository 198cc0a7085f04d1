package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
	payoutdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/payout"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RequestPayout debits the available balance, then asks the provider to pay.
// The debit comes first so a seller cannot race two withdrawals past the same
// balance; a provider rejection credits the money straight back.
func (uc *DefaultPayoutUsecase) RequestPayout(ctx context.Context, input *payoutdto.RequestPayoutInput) (*payoutdto.PayoutOutput, error) {
	method, err := parseMethod(input.Method)
	if err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, status.Error(codes.InvalidArgument, "payout amount must be positive")
	}

	if _, err := uc.Ledger.AdjustAvailable(ctx, input.UserID, -input.Amount); err != nil {
		return nil, err
	}
	uc.Metrics.RecordLedger("available", -input.Amount)

	fee := uc.instantFee(input.Amount, method)
	providerPayoutID, err := uc.Provider.CreatePayout(ctx, input.UserID, input.Amount-fee, method)
	if err != nil {
		// The debit already happened; put the money back before failing.
		if _, rerr := uc.Ledger.AdjustAvailable(ctx, input.UserID, input.Amount); rerr != nil {
			uc.recordRecreditGap(ctx, input.UserID, input.Amount, rerr)
		} else {
			uc.Metrics.RecordLedger("available", input.Amount)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderCallFailed, err)
	}

	payout := &domain.Payout{
		UserID:           input.UserID,
		Method:           method,
		GrossAmount:      input.Amount,
		FeeAmount:        fee,
		NetAmount:        input.Amount - fee,
		Currency:         uc.Currency,
		ProviderPayoutID: providerPayoutID,
		Status:           domain.PayoutPending,
	}
	if err := uc.PayoutRepo.CreatePayout(ctx, payout); err != nil {
		// The provider accepted the payout; the local row is the only thing
		// missing. Operators reconcile from here, not from memory.
		slog.Error("provider payout created but local row insert failed",
			"user_id", input.UserID,
			"provider_payout_id", providerPayoutID,
			"error", err.Error(),
		)
		return nil, err
	}
	uc.Metrics.RecordPayout(string(method), string(domain.PayoutPending))

	uc.Notifier.SendPush(input.UserID, "Payout requested", "Your payout was submitted to the payment provider.", "/wallet")
	uc.publishPayoutEvent(payout)

	return toPayoutOutput(payout), nil
}

func (uc *DefaultPayoutUsecase) recordRecreditGap(ctx context.Context, userID string, amount int64, cause error) {
	slog.Error("payout re-credit failed after provider rejection",
		"user_id", userID,
		"amount", amount,
		"error", cause.Error(),
	)
	uc.Metrics.RecordReconciliationGap()

	entry := &domain.ReconciliationEntry{
		UserID: userID,
		Amount: amount,
		Reason: domain.ReasonPayoutRecredit,
		Detail: cause.Error(),
	}
	if err := uc.ReconRepo.CreateEntry(ctx, entry); err != nil {
		slog.Error("failed to persist reconciliation entry", "user_id", userID, "error", err.Error())
	}
}

func (uc *DefaultPayoutUsecase) publishPayoutEvent(payout *domain.Payout) {
	go func(event kafka.PayoutEvent) {
		if err := uc.Publisher.PublishPayout(event); err != nil {
			slog.Error("failed to publish kafka PayoutEvent", "payout_id", event.PayoutID, "error", err.Error())
		}
	}(kafka.PayoutEvent{
		PayoutID: payout.ID,
		UserID:   payout.UserID,
		Method:   string(payout.Method),
		Gross:    payout.GrossAmount,
		Fee:      payout.FeeAmount,
		Net:      payout.NetAmount,
		Status:   string(payout.Status),
	})
}
