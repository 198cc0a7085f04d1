package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	orderdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/order"
)

// HandlePaymentSucceeded reconciles a verified payment-succeeded /
// checkout-completed event into the order and ledger. The provider delivers
// at-least-once and out of order; this handler is idempotent per order, so
// replaying the same event N times credits the seller exactly once.
//
// A nil return tells the delivery layer to acknowledge (200) so the provider
// stops retrying. ErrAmountMismatch is the one business failure that must NOT
// be acknowledged.
func (uc *DefaultOrderUsecase) HandlePaymentSucceeded(ctx context.Context, input *orderdto.PaymentSucceededInput) error {
	started := time.Now()

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			// Provider events may reference unknown or test orders. Ack and
			// log; a 4xx/5xx here would only cause a retry storm.
			slog.Warn("payment event for unknown order", "order_id", input.OrderID)
			uc.Metrics.RecordWebhook("payment.succeeded", "unknown_order", time.Since(started))
			return nil
		}
		return err
	}

	if order.WalletCredited {
		// Idempotent replay: everything below already happened.
		uc.Metrics.RecordWebhook("payment.succeeded", "replayed", time.Since(started))
		return nil
	}

	// Fatal discrepancy: never silently accept mismatched money. The
	// delivery layer rejects with 400 and the alert metric pages an operator.
	if input.Amount != order.TotalCharged {
		slog.Error("webhook amount mismatch",
			"order_id", order.ID,
			"charged", input.Amount,
			"expected", order.TotalCharged,
		)
		uc.Metrics.RecordAmountMismatch()
		uc.Metrics.RecordWebhook("payment.succeeded", "amount_mismatch", time.Since(started))
		return domain.ErrAmountMismatch
	}

	// Escrow excludes tax and buyer fee; seller fee is a cut of escrow.
	escrowAmount := order.EscrowAmount()
	sellerFee := escrowAmount * uc.SellerFeeBps / 10000
	sellerNet := escrowAmount - sellerFee

	err = uc.OrderRepo.MarkPaid(ctx, order.ID, domain.MarkPaidParams{
		SellerFee:         sellerFee,
		SellerNet:         sellerNet,
		ProviderSessionID: input.SessionID,
		ProviderChargeID:  input.ChargeID,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrOrderStateChanged) {
			return err
		}
		// The conditional write found the order elsewhere. Re-read to decide:
		// already PAID means a crash landed between commit and credit, so we
		// resume; any other state means the event is stale and gets acked.
		current, rerr := uc.OrderRepo.GetOrderByID(ctx, order.ID)
		if rerr != nil {
			return rerr
		}
		if current.Status != domain.StatusPaid {
			slog.Warn("payment event ignored for order in non-payable state",
				"order_id", order.ID, "status", string(current.Status))
			uc.Metrics.RecordWebhook("payment.succeeded", "stale", time.Since(started))
			return nil
		}
	}

	// Idempotent per order id, not per call: the wallet_credited flip and the
	// pending increment commit as one unit inside the ledger.
	credited, err := uc.Ledger.CreditPendingForOrder(ctx, order.ID, order.SellerID, sellerNet)
	if err != nil {
		// Not acked; redelivery resumes here safely.
		return err
	}
	if credited {
		uc.Metrics.RecordLedger("pending", sellerNet)
		uc.Metrics.RecordTransition(string(domain.EventPaid))
	}

	// Best-effort side effects from here down; none may fail the webhook.
	if err := uc.Inventory.DecrementQuantity(ctx, order.ListingID, order.Quantity); err != nil {
		slog.Error("inventory decrement failed", "order_id", order.ID, "listing_id", order.ListingID, "error", err.Error())
	}

	uc.Notifier.SendPush(order.BuyerID, "Payment confirmed", "Your payment was received. The seller is preparing your order.", "/orders/"+order.ID)
	uc.Notifier.SendPush(order.SellerID, "New sale", "You have a new paid order to ship.", "/orders/"+order.ID)

	uc.publishOrderEvent(order, domain.StatusPaid, domain.EscrowPending)
	uc.Metrics.RecordWebhook("payment.succeeded", "processed", time.Since(started))

	return nil
}
