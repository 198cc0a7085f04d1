package usecase

import (
	"context"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
)

func (uc *DefaultOrderUsecase) MarkShipped(ctx context.Context, orderID, actorID string) error {
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

	// Two sellers racing from the same stale read: exactly one CAS lands.
	if _, err := uc.commitTransition(ctx, order, domain.EventShip, domain.EscrowHeld); err != nil {
		return err
	}

	uc.Notifier.SendPush(order.BuyerID, "Order shipped", "Your order is on the way.", "/orders/"+order.ID)
	uc.publishOrderEvent(order, domain.StatusShipped, domain.EscrowHeld)
	return nil
}
