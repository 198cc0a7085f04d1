package usecase

import (
	"context"
	"log"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	orderdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/order"
)

// StartReturn freezes escrow on a shipped order. No ledger movement happens
// until the return resolves one way or the other.
func (uc *DefaultOrderUsecase) StartReturn(ctx context.Context, input *orderdto.StartReturnInput) error {
	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return err
	}
	party, err := actorParty(order, input.ActorID)
	if err != nil {
		return err
	}
	if party != domain.PartyBuyer {
		return domain.ErrNotOrderParty
	}
	if _, err := domain.NextStatus(order.Status, domain.EventStartReturn); err != nil {
		return err
	}

	deadline := time.Now().Add(uc.ReturnWindow)
	if err := uc.OrderRepo.StartReturn(ctx, order.ID, input.Reason, input.Notes, deadline); err != nil {
		return err
	}
	uc.Metrics.RecordTransition(string(domain.EventStartReturn))

	uc.Notifier.SendPush(order.SellerID, "Return requested", "The buyer started a return on your order.", "/orders/"+order.ID)
	uc.publishOrderEvent(order, domain.StatusReturnStarted, domain.EscrowFrozen)
	return nil
}

// SubmitReturnTracking records the buyer's return shipment exactly once.
// Tracking is immutable after submission.
func (uc *DefaultOrderUsecase) SubmitReturnTracking(ctx context.Context, orderID, actorID, tracking string) error {
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
	if _, err := domain.NextStatus(order.Status, domain.EventSubmitTracking); err != nil {
		return err
	}

	if err := uc.OrderRepo.SubmitReturnTracking(ctx, order.ID, tracking); err != nil {
		return err
	}
	uc.Metrics.RecordTransition(string(domain.EventSubmitTracking))

	uc.Notifier.SendPush(order.SellerID, "Return shipped", "The buyer shipped the return. Confirm receipt when it arrives.", "/orders/"+order.ID)
	uc.publishOrderEvent(order, domain.StatusReturnProcessing, domain.EscrowFrozen)
	return nil
}

// ConfirmReturnReceipt refunds the full escrow amount to the buyer and
// reverses the seller's pending credit. Refund-then-mutate ordering, same as
// cancellation.
func (uc *DefaultOrderUsecase) ConfirmReturnReceipt(ctx context.Context, orderID, actorID string) error {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	party, err := actorParty(order, actorID)
	if err != nil {
		return err
	}
	if party != domain.PartySeller {
		return domain.ErrNotOrderParty
	}
	if _, err := domain.NextStatus(order.Status, domain.EventSellerConfirmsReceipt); err != nil {
		return err
	}
	if order.ProviderChargeID == "" {
		return domain.ErrNoChargeReference
	}

	refundID, err := uc.Provider.Refund(ctx, order.ProviderChargeID, order.EscrowAmount())
	if err != nil {
		return err
	}
	uc.Metrics.RecordRefund("return", order.EscrowAmount())

	if order.WalletCredited {
		reversed, rerr := uc.Ledger.ReversePendingForOrder(ctx, order.ID, order.SellerID, order.SellerNet)
		if rerr != nil {
			uc.recordReconciliationGap(ctx, order, domain.ReasonWalletReversal, order.SellerNet, rerr)
		} else if reversed {
			uc.Metrics.RecordLedger("pending", -order.SellerNet)
		}
	}

	err = uc.OrderRepo.MarkRefunded(ctx, order.ID, domain.MarkRefundedParams{
		Expected:  order.Status,
		NewStatus: domain.StatusCompleted,
		RefundID:  refundID,
	})
	if err != nil {
		uc.recordReconciliationGap(ctx, order, domain.ReasonStateDiverged, order.EscrowAmount(), err)
		return err
	}
	uc.Metrics.RecordTransition(string(domain.EventSellerConfirmsReceipt))

	uc.Notifier.SendPush(order.BuyerID, "Return accepted", "The seller received your return. Your refund is on the way.", "/orders/"+order.ID)
	uc.publishOrderEvent(order, domain.StatusCompleted, domain.EscrowRefunded)
	return nil
}

// ReleaseExpiredReturns is the scheduled sweep behind the 72-hour deadline:
// a buyer who started a return but never shipped tracking forfeits it, and
// escrow releases to the seller.
func (uc *DefaultOrderUsecase) ReleaseExpiredReturns(ctx context.Context) error {
	orders, err := uc.OrderRepo.FindExpiredReturns(ctx)
	if err != nil {
		return err
	}

	for _, order := range orders {
		if _, err := uc.commitTransition(ctx, order, domain.EventReturnDeadlineExpired, domain.EscrowReleased); err != nil {
			log.Printf("Failed to release expired return %s: %v\n", order.ID, err)
			continue
		}
		if order.WalletCredited {
			if err := uc.Ledger.ReleasePending(ctx, order.SellerID, order.SellerNet); err != nil {
				uc.recordReconciliationGap(ctx, order, domain.ReasonPendingRelease, order.SellerNet, err)
				continue
			}
			uc.Metrics.RecordLedger("pending", -order.SellerNet)
			uc.Metrics.RecordLedger("available", order.SellerNet)
		}
		uc.Notifier.SendPush(order.SellerID, "Return expired", "The return window closed without tracking. Funds are released.", "/wallet")
		uc.publishOrderEvent(order, domain.StatusCompleted, domain.EscrowReleased)
	}
	return nil
}
