package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
)

// CompletePayout handles the provider's payout.paid event. The conditional
// PENDING -> PAID transition makes replays no-ops.
func (uc *DefaultPayoutUsecase) CompletePayout(ctx context.Context, providerPayoutID string) error {
	payout, err := uc.PayoutRepo.GetPayoutByProviderID(ctx, providerPayoutID)
	if err != nil {
		return err
	}

	marked, err := uc.PayoutRepo.MarkPaidIf(ctx, payout.ID, time.Now())
	if err != nil {
		return err
	}
	if !marked {
		slog.Warn("payout paid event replayed", "payout_id", payout.ID, "status", string(payout.Status))
		return nil
	}
	uc.Metrics.RecordPayout(string(payout.Method), string(domain.PayoutPaid))

	uc.Notifier.SendPush(payout.UserID, "Payout sent", "Your payout was sent to your bank.", "/wallet")
	payout.Status = domain.PayoutPaid
	uc.publishPayoutEvent(payout)
	return nil
}

// FailPayout handles payout.failed: the gross amount goes back to the
// seller's available balance, once, in the same transaction as the status
// flip. An error here leaves the payout PENDING, so the provider's redelivery
// retries the whole unit.
func (uc *DefaultPayoutUsecase) FailPayout(ctx context.Context, providerPayoutID, reason string) error {
	payout, err := uc.PayoutRepo.GetPayoutByProviderID(ctx, providerPayoutID)
	if err != nil {
		return err
	}

	marked, err := uc.Ledger.FailPayoutAndRecredit(ctx, payout.ID, payout.UserID, payout.GrossAmount, reason)
	if err != nil {
		return err
	}
	if !marked {
		slog.Warn("payout failed event replayed", "payout_id", payout.ID, "status", string(payout.Status))
		return nil
	}
	uc.Metrics.RecordPayout(string(payout.Method), string(domain.PayoutFailed))
	uc.Metrics.RecordLedger("available", payout.GrossAmount)

	uc.Notifier.SendPush(payout.UserID, "Payout failed", "Your payout failed and the funds were returned to your wallet.", "/wallet")
	payout.Status = domain.PayoutFailed
	payout.FailureReason = reason
	uc.publishPayoutEvent(payout)
	return nil
}
