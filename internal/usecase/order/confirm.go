package usecase

import (
	"context"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
)

// ConfirmDelivery completes a shipped order and releases the seller's net
// from pending to available. The CAS lands first so only one caller performs
// the release; a release failure after the CAS is a reconciliation gap.
func (uc *DefaultOrderUsecase) ConfirmDelivery(ctx context.Context, orderID, actorID string) error {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	party, err := actorParty(order, actorID)
	if err != nil {
		return err
	}
	if party != domain.PartyBuyer {
		return domain.ErrNotOrderParty
	}

	if _, err := uc.commitTransition(ctx, order, domain.EventConfirmDelivery, domain.EscrowReleased); err != nil {
		return err
	}

	if order.WalletCredited {
		if err := uc.Ledger.ReleasePending(ctx, order.SellerID, order.SellerNet); err != nil {
			uc.recordReconciliationGap(ctx, order, domain.ReasonPendingRelease, order.SellerNet, err)
		} else {
			uc.Metrics.RecordLedger("pending", -order.SellerNet)
			uc.Metrics.RecordLedger("available", order.SellerNet)
		}
	}

	uc.Notifier.SendPush(order.SellerID, "Order completed", "The buyer confirmed delivery. Funds are now available.", "/wallet")
	uc.publishOrderEvent(order, domain.StatusCompleted, domain.EscrowReleased)
	return nil
}
