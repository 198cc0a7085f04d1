package usecase

import (
	"context"
	"log/slog"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
)

// commitTransition validates the transition against the state table, then
// commits it with a conditional write on the expected prior status. The loser
// of any race observes ErrOrderStateChanged and must re-read, never proceed.
func (uc *DefaultOrderUsecase) commitTransition(ctx context.Context, order *domain.Order, event domain.TransitionEvent, escrow domain.EscrowStatus) (domain.OrderStatus, error) {
	next, err := domain.NextStatus(order.Status, event)
	if err != nil {
		return "", err
	}
	if err := uc.OrderRepo.UpdateOrderStatusIf(ctx, order.ID, order.Status, next, escrow); err != nil {
		return "", err
	}
	uc.Metrics.RecordTransition(string(event))
	return next, nil
}

// recordReconciliationGap persists a durable gap entry. This path fires when
// money already moved at the provider but the ledger correction failed; it is
// monitored, retried by the sweep, and never swallowed.
func (uc *DefaultOrderUsecase) recordReconciliationGap(ctx context.Context, order *domain.Order, reason domain.ReconciliationReason, amount int64, cause error) {
	slog.Error("ledger reconciliation gap",
		"order_id", order.ID,
		"seller_id", order.SellerID,
		"amount", amount,
		"reason", string(reason),
		"error", cause.Error(),
	)
	uc.Metrics.RecordReconciliationGap()

	entry := &domain.ReconciliationEntry{
		OrderID: order.ID,
		UserID:  order.SellerID,
		Amount:  amount,
		Reason:  reason,
		Detail:  cause.Error(),
	}
	if err := uc.ReconRepo.CreateEntry(ctx, entry); err != nil {
		// Worst case: the gap exists only in logs and metrics. Still loud.
		slog.Error("failed to persist reconciliation entry", "order_id", order.ID, "error", err.Error())
	}
}

func (uc *DefaultOrderUsecase) publishOrderEvent(order *domain.Order, status domain.OrderStatus, escrow domain.EscrowStatus) {
	go func(event kafka.OrderEvent) {
		if err := uc.Publisher.PublishOrder(event); err != nil {
			slog.Error("failed to publish kafka OrderEvent", "order_id", event.OrderID, "error", err.Error())
		}
	}(kafka.OrderEvent{
		OrderID:       order.ID,
		DisplayNumber: order.DisplayNumber,
		BuyerID:       order.BuyerID,
		SellerID:      order.SellerID,
		Status:        string(status),
		EscrowStatus:  string(escrow),
		Amount:        order.TotalCharged,
		Currency:      order.Currency,
	})
}

// actorParty resolves which side of the order the caller is, rejecting
// everyone else. Authorization is explicit here: the core never leans on
// storage-layer policy.
func actorParty(order *domain.Order, actorID string) (domain.DisputeParty, error) {
	switch actorID {
	case order.BuyerID:
		return domain.PartyBuyer, nil
	case order.SellerID:
		return domain.PartySeller, nil
	default:
		return "", domain.ErrNotOrderParty
	}
}
