package usecase

import (
	"context"
	"log/slog"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
)

// RetryReconciliation sweeps open ledger gaps and replays the mutation that
// originally failed. Ledger mutations are relative increments, so a retry
// that raced an earlier success is caught by the idempotency flags, not by
// this loop.
func (uc *DefaultOrderUsecase) RetryReconciliation(ctx context.Context) error {
	entries, err := uc.ReconRepo.FindOpenEntries(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		var retryErr error
		switch entry.Reason {
		case domain.ReasonWalletReversal:
			_, retryErr = uc.Ledger.ReversePendingForOrder(ctx, entry.OrderID, entry.UserID, entry.Amount)
		case domain.ReasonPendingRelease:
			retryErr = uc.Ledger.ReleasePending(ctx, entry.UserID, entry.Amount)
		case domain.ReasonPayoutRecredit:
			_, retryErr = uc.Ledger.AdjustAvailable(ctx, entry.UserID, entry.Amount)
		default:
			// ORDER_STATE_DIVERGED needs an operator decision; leave it open.
			continue
		}

		if retryErr != nil {
			slog.Error("reconciliation retry failed",
				"entry_id", entry.ID,
				"order_id", entry.OrderID,
				"reason", string(entry.Reason),
				"error", retryErr.Error(),
			)
			continue
		}
		if err := uc.ReconRepo.MarkResolved(ctx, entry.ID); err != nil {
			slog.Error("failed to mark reconciliation entry resolved", "entry_id", entry.ID, "error", err.Error())
			continue
		}
		slog.Info("reconciliation gap resolved", "entry_id", entry.ID, "order_id", entry.OrderID, "reason", string(entry.Reason))
	}
	return nil
}

func (uc *DefaultOrderUsecase) ListReconciliationGaps(ctx context.Context) ([]*domain.ReconciliationEntry, error) {
	return uc.ReconRepo.FindOpenEntries(ctx)
}
