package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	disputedto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/dispute"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ResolveDispute commits an operator verdict. REFUND_BUYER refunds the buyer
// at the provider and reverses the seller's pending credit; RELEASE_SELLER
// moves the escrow to the seller's available balance. The dispute row resolves
// before the order commits so a replayed verdict fails fast on the dispute,
// not halfway through the money.
func (uc *DefaultDisputeUsecase) ResolveDispute(ctx context.Context, input *disputedto.ResolveDisputeInput) error {
	var outcome domain.DisputeOutcome
	switch domain.DisputeOutcome(input.Outcome) {
	case domain.OutcomeRefundBuyer:
		outcome = domain.OutcomeRefundBuyer
	case domain.OutcomeReleaseSeller:
		outcome = domain.OutcomeReleaseSeller
	default:
		return status.Errorf(codes.InvalidArgument, "unknown dispute outcome %q", input.Outcome)
	}

	dispute, err := uc.DisputeRepo.GetDisputeByID(ctx, input.DisputeID)
	if err != nil {
		return err
	}
	if dispute.Status != domain.DisputeOpen {
		return domain.ErrDisputeAlreadyResolved
	}
	return uc.resolve(ctx, dispute, outcome)
}

func (uc *DefaultDisputeUsecase) resolve(ctx context.Context, dispute *domain.Dispute, outcome domain.DisputeOutcome) error {
	order, err := uc.OrderRepo.GetOrderByID(ctx, dispute.OrderID)
	if err != nil {
		return err
	}

	event := domain.EventDisputeRelease
	if outcome == domain.OutcomeRefundBuyer {
		event = domain.EventDisputeRefund
	}
	next, err := domain.NextStatus(order.Status, event)
	if err != nil {
		return err
	}

	if outcome == domain.OutcomeRefundBuyer {
		if order.ProviderChargeID == "" {
			return domain.ErrNoChargeReference
		}
		refundID, err := uc.Provider.Refund(ctx, order.ProviderChargeID, order.RefundAmount())
		if err != nil {
			return err
		}
		uc.Metrics.RecordRefund("dispute", order.RefundAmount())

		if order.WalletCredited {
			reversed, rerr := uc.Ledger.ReversePendingForOrder(ctx, order.ID, order.SellerID, order.SellerNet)
			if rerr != nil {
				uc.recordReconciliationGap(ctx, order, domain.ReasonWalletReversal, order.SellerNet, rerr)
			} else if reversed {
				uc.Metrics.RecordLedger("pending", -order.SellerNet)
			}
		}

		if err := uc.DisputeRepo.ResolveDispute(ctx, dispute.ID, outcome); err != nil {
			return err
		}
		err = uc.OrderRepo.MarkRefunded(ctx, order.ID, domain.MarkRefundedParams{
			Expected:  order.Status,
			NewStatus: next,
			RefundID:  refundID,
		})
		if err != nil {
			uc.recordReconciliationGap(ctx, order, domain.ReasonStateDiverged, order.RefundAmount(),
				fmt.Errorf("dispute %s resolved with refund %s but order not committed: %w", dispute.ID, refundID, err))
			return err
		}
	} else {
		if order.WalletCredited {
			if err := uc.Ledger.ReleasePending(ctx, order.SellerID, order.SellerNet); err != nil {
				uc.recordReconciliationGap(ctx, order, domain.ReasonPendingRelease, order.SellerNet, err)
			} else {
				uc.Metrics.RecordLedger("pending", -order.SellerNet)
				uc.Metrics.RecordLedger("available", order.SellerNet)
			}
		}

		if err := uc.DisputeRepo.ResolveDispute(ctx, dispute.ID, outcome); err != nil {
			return err
		}
		if err := uc.OrderRepo.UpdateOrderStatusIf(ctx, order.ID, order.Status, next, domain.EscrowReleased); err != nil {
			uc.recordReconciliationGap(ctx, order, domain.ReasonStateDiverged, order.SellerNet,
				fmt.Errorf("dispute %s resolved with release but order not committed: %w", dispute.ID, err))
			return err
		}
	}
	uc.Metrics.RecordTransition(string(event))

	dispute.Status = domain.DisputeResolved
	dispute.Outcome = outcome
	uc.Notifier.SendPush(order.BuyerID, "Dispute resolved", "The dispute on your order was resolved.", "/disputes/"+dispute.ID)
	uc.Notifier.SendPush(order.SellerID, "Dispute resolved", "The dispute on your order was resolved.", "/disputes/"+dispute.ID)
	uc.publishDisputeEvent(dispute)
	return nil
}

// ResolveExpiredDisputes is the scheduled sweep behind the response deadline:
// a respondent who never answered loses by default, and the dispute resolves
// in the opener's favor.
func (uc *DefaultDisputeUsecase) ResolveExpiredDisputes(ctx context.Context) error {
	disputes, err := uc.DisputeRepo.FindExpiredDisputes(ctx)
	if err != nil {
		return err
	}

	for _, dispute := range disputes {
		outcome := domain.OutcomeRefundBuyer
		if dispute.OpenedByParty == domain.PartySeller {
			outcome = domain.OutcomeReleaseSeller
		}
		if err := uc.resolve(ctx, dispute, outcome); err != nil {
			slog.Error("failed to auto-resolve expired dispute",
				"dispute_id", dispute.ID,
				"order_id", dispute.OrderID,
				"error", err.Error(),
			)
		}
	}
	return nil
}

func (uc *DefaultDisputeUsecase) recordReconciliationGap(ctx context.Context, order *domain.Order, reason domain.ReconciliationReason, amount int64, cause error) {
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
		slog.Error("failed to persist reconciliation entry", "order_id", order.ID, "error", err.Error())
	}
}
