package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	disputedto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/dispute"
	"github.com/stretchr/testify/require"
)

func TestOpenDisputeByBuyer(t *testing.T) {
	uc, orderRepo, _, ledger, _, _ := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)

	output, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID,
		ActorID: order.BuyerID,
		Reason:  "item not received",
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.PartyBuyer), output.OpenedByParty)
	require.Equal(t, string(domain.DisputeOpen), output.Status)

	stored := orderRepo.get(order.ID)
	require.Equal(t, domain.StatusDisputed, stored.Status)
	require.Equal(t, domain.EscrowFrozen, stored.EscrowStatus)
	require.Equal(t, output.ID, stored.DisputeID)
	// freezing moves no money
	require.Equal(t, order.SellerNet, ledger.pending[order.SellerID])
}

func TestOpenDisputeSingleton(t *testing.T) {
	uc, orderRepo, _, ledger, _, _ := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)

	_, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.BuyerID, Reason: "item not received",
	})
	require.NoError(t, err)

	_, err = uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.BuyerID, Reason: "second try",
	})
	require.Error(t, err)
}

func TestOpenDisputeByStranger(t *testing.T) {
	uc, orderRepo, _, ledger, _, _ := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)

	_, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: "intruder", Reason: "not mine",
	})
	require.ErrorIs(t, err, domain.ErrNotOrderParty)
}

func TestOpenDisputeVoidsOrphanOnRace(t *testing.T) {
	uc, orderRepo, disputeRepo, ledger, _, _ := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)

	// someone completes the order between our read and the link
	require.NoError(t, orderRepo.UpdateOrderStatusIf(context.Background(), order.ID,
		domain.StatusShipped, domain.StatusCompleted, domain.EscrowReleased))

	_, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.BuyerID, Reason: "too late",
	})
	require.Error(t, err)

	// the orphaned row must not occupy the singleton slot
	_, err = disputeRepo.GetActiveDisputeByOrderID(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrDisputeNotFound)
}

func TestRespondDisputeOnlyCounterparty(t *testing.T) {
	uc, orderRepo, _, ledger, _, _ := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)
	output, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.BuyerID, Reason: "item not received",
	})
	require.NoError(t, err)

	err = uc.RespondDispute(context.Background(), &disputedto.RespondDisputeInput{
		DisputeID: output.ID, ActorID: order.BuyerID, Evidence: "i am the opener",
	})
	require.ErrorIs(t, err, domain.ErrNotOrderParty)

	err = uc.RespondDispute(context.Background(), &disputedto.RespondDisputeInput{
		DisputeID: output.ID, ActorID: order.SellerID, Evidence: "proof of delivery",
	})
	require.NoError(t, err)
}

func TestResolveDisputeRefundBuyer(t *testing.T) {
	uc, orderRepo, disputeRepo, ledger, _, provider := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)
	output, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.BuyerID, Reason: "item not received",
	})
	require.NoError(t, err)

	err = uc.ResolveDispute(context.Background(), &disputedto.ResolveDisputeInput{
		DisputeID: output.ID,
		Outcome:   string(domain.OutcomeRefundBuyer),
	})
	require.NoError(t, err)

	// full buyer refund includes tax, not the buyer fee
	require.Equal(t, []int64{12300}, provider.refunds)

	stored := orderRepo.get(order.ID)
	require.Equal(t, domain.StatusCancelled, stored.Status)
	require.Equal(t, domain.EscrowRefunded, stored.EscrowStatus)
	require.Equal(t, int64(0), ledger.pending[order.SellerID])

	resolved, err := disputeRepo.GetDisputeByID(context.Background(), output.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DisputeResolved, resolved.Status)
	require.Equal(t, domain.OutcomeRefundBuyer, resolved.Outcome)
}

func TestResolveDisputeReleaseSeller(t *testing.T) {
	uc, orderRepo, _, ledger, _, provider := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)
	output, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.BuyerID, Reason: "item not received",
	})
	require.NoError(t, err)

	err = uc.ResolveDispute(context.Background(), &disputedto.ResolveDisputeInput{
		DisputeID: output.ID,
		Outcome:   string(domain.OutcomeReleaseSeller),
	})
	require.NoError(t, err)

	require.Empty(t, provider.refunds)
	stored := orderRepo.get(order.ID)
	require.Equal(t, domain.StatusCompleted, stored.Status)
	require.Equal(t, domain.EscrowReleased, stored.EscrowStatus)
	require.Equal(t, int64(0), ledger.pending[order.SellerID])
	require.Equal(t, order.SellerNet, ledger.avail[order.SellerID])
}

func TestResolveDisputeReplayRejected(t *testing.T) {
	uc, orderRepo, _, ledger, _, _ := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)
	output, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.BuyerID, Reason: "item not received",
	})
	require.NoError(t, err)

	input := &disputedto.ResolveDisputeInput{
		DisputeID: output.ID,
		Outcome:   string(domain.OutcomeReleaseSeller),
	}
	require.NoError(t, uc.ResolveDispute(context.Background(), input))
	require.ErrorIs(t, uc.ResolveDispute(context.Background(), input), domain.ErrDisputeAlreadyResolved)

	// the balance moved exactly once
	require.Equal(t, order.SellerNet, ledger.avail[order.SellerID])
}

func TestResolveExpiredDisputesFavorOpener(t *testing.T) {
	uc, orderRepo, disputeRepo, ledger, _, provider := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)
	output, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.BuyerID, Reason: "item not received",
	})
	require.NoError(t, err)

	// push the respond-by deadline into the past
	disputeRepo.mu.Lock()
	disputeRepo.disputes[output.ID].RespondBy = time.Now().Add(-time.Hour)
	disputeRepo.mu.Unlock()

	require.NoError(t, uc.ResolveExpiredDisputes(context.Background()))

	// buyer opened, so the default verdict refunds the buyer
	require.Equal(t, []int64{12300}, provider.refunds)
	resolved, err := disputeRepo.GetDisputeByID(context.Background(), output.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DisputeResolved, resolved.Status)
	require.Equal(t, domain.OutcomeRefundBuyer, resolved.Outcome)
}

func TestOpenDisputeBySellerDuringReturn(t *testing.T) {
	uc, orderRepo, _, ledger, _, _ := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)
	order.Status = domain.StatusReturnStarted
	order.EscrowStatus = domain.EscrowFrozen
	orderRepo.put(order)

	output, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.SellerID, Reason: "return abuse",
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.PartySeller), output.OpenedByParty)
	require.Equal(t, domain.StatusReturnProcessing, orderRepo.get(order.ID).Status)
}

func TestResolveDisputeUnknownOutcome(t *testing.T) {
	uc, orderRepo, _, ledger, _, _ := newTestUsecase()
	order := shippedOrder(orderRepo, ledger)
	output, err := uc.OpenDispute(context.Background(), &disputedto.OpenDisputeInput{
		OrderID: order.ID, ActorID: order.BuyerID, Reason: "item not received",
	})
	require.NoError(t, err)

	err = uc.ResolveDispute(context.Background(), &disputedto.ResolveDisputeInput{
		DisputeID: output.ID,
		Outcome:   "SPLIT_THE_DIFFERENCE",
	})
	require.Error(t, err)
}
