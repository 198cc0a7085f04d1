package usecase

import (
	"context"
	"fmt"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	orderdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/order"
)

// CancelOrder reverses a pre-shipment order. Ordering is strict: provider
// refund first, ledger reversal second, local status last. A refund the
// provider rejected must never leave local state mutated, and a reversal that
// fails after a successful refund becomes a reconciliation gap, not a lost
// log line.
func (uc *DefaultOrderUsecase) CancelOrder(ctx context.Context, orderID, actorID string) (*orderdto.CancelOutput, error) {
	// Preconditions are checked against the freshly loaded order, never a
	// cached copy.
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	party, err := actorParty(order, actorID)
	if err != nil {
		return nil, err
	}

	event := domain.EventCancel
	newStatus := domain.StatusCancelled
	cancelledBy := "buyer"
	if party == domain.PartySeller {
		event = domain.EventCancelBySeller
		newStatus = domain.StatusCancelledBySeller
		cancelledBy = "seller"
	}

	// The transition table rejects cancellation of shipped, completed and
	// return-flow orders with state context for the caller.
	if _, err := domain.NextStatus(order.Status, event); err != nil {
		return nil, err
	}
	if order.EscrowStatus == domain.EscrowReleased {
		return nil, fmt.Errorf("%w: escrow already released", domain.ErrIllegalTransition)
	}
	if order.ProviderChargeID == "" && order.Status != domain.StatusPendingPayment {
		return nil, domain.ErrNoChargeReference
	}

	var refundID string
	if order.ProviderChargeID != "" {
		// Tax is refunded, the buyer fee is not.
		refundID, err = uc.Provider.Refund(ctx, order.ProviderChargeID, order.RefundAmount())
		if err != nil {
			return nil, err
		}
		uc.Metrics.RecordRefund("cancellation", order.RefundAmount())
	}

	if order.WalletCredited {
		reversed, err := uc.Ledger.ReversePendingForOrder(ctx, order.ID, order.SellerID, order.SellerNet)
		if err != nil {
			// Money already left the buyer's custody; the ledger gap is the
			// single most important failure in the system.
			uc.recordReconciliationGap(ctx, order, domain.ReasonWalletReversal, order.SellerNet, err)
		} else if reversed {
			uc.Metrics.RecordLedger("pending", -order.SellerNet)
		}
	}

	err = uc.OrderRepo.MarkRefunded(ctx, order.ID, domain.MarkRefundedParams{
		Expected:  order.Status,
		NewStatus: newStatus,
		RefundID:  refundID,
	})
	if err != nil {
		// The refund already happened but some other transition beat us to
		// the row. Operators must see this divergence.
		uc.recordReconciliationGap(ctx, order, domain.ReasonStateDiverged, order.RefundAmount(),
			fmt.Errorf("refund %s issued but cancel not committed: %w", refundID, err))
		return nil, err
	}
	uc.Metrics.RecordTransition(string(event))

	counterparty := order.SellerID
	if party == domain.PartySeller {
		counterparty = order.BuyerID
	}
	uc.Notifier.SendPush(counterparty, "Order cancelled", "The order was cancelled and the payment refunded.", "/orders/"+order.ID)
	uc.publishOrderEvent(order, newStatus, domain.EscrowRefunded)

	return &orderdto.CancelOutput{RefundID: refundID, CancelledBy: cancelledBy}, nil
}
