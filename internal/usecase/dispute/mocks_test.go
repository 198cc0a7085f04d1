package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) put(order *domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *order
	r.orders[order.ID] = &copied
}

func (r *fakeOrderRepo) get(id string) *domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *r.orders[id]
	return &copied
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *domain.Order) (string, error) {
	r.put(order)
	return order.ID, nil
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetOrderByDisplayNumber(_ context.Context, _ string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListOrders(_ context.Context, _ domain.OrderFilters, _, _ int64) ([]*domain.Order, int64, error) {
	return nil, 0, nil
}

func (r *fakeOrderRepo) UpdateOrderStatusIf(_ context.Context, orderID string, expected, next domain.OrderStatus, escrow domain.EscrowStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.Status != expected {
		return domain.ErrOrderStateChanged
	}
	order.Status = next
	order.EscrowStatus = escrow
	return nil
}

func (r *fakeOrderRepo) MarkPaid(_ context.Context, _ string, _ domain.MarkPaidParams) error {
	return domain.ErrOrderStateChanged
}

func (r *fakeOrderRepo) MarkRefunded(_ context.Context, orderID string, params domain.MarkRefundedParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.Status != params.Expected {
		return domain.ErrOrderStateChanged
	}
	order.Status = params.NewStatus
	order.EscrowStatus = domain.EscrowRefunded
	order.RefundID = params.RefundID
	return nil
}

func (r *fakeOrderRepo) StartReturn(_ context.Context, _, _, _ string, _ time.Time) error {
	return domain.ErrOrderStateChanged
}

func (r *fakeOrderRepo) SubmitReturnTracking(_ context.Context, _, _ string) error {
	return domain.ErrOrderStateChanged
}

func (r *fakeOrderRepo) LinkDispute(_ context.Context, orderID, disputeID string, expected, next domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.Status != expected {
		return domain.ErrOrderStateChanged
	}
	order.Status = next
	order.EscrowStatus = domain.EscrowFrozen
	order.DisputeID = disputeID
	return nil
}

func (r *fakeOrderRepo) FindExpiredReturns(_ context.Context) ([]*domain.Order, error) {
	return nil, nil
}

type fakeDisputeRepo struct {
	mu       sync.Mutex
	disputes map[string]*domain.Dispute
}

func newFakeDisputeRepo() *fakeDisputeRepo {
	return &fakeDisputeRepo{disputes: make(map[string]*domain.Dispute)}
}

func (r *fakeDisputeRepo) CreateDispute(_ context.Context, dispute *domain.Dispute) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.disputes {
		if existing.OrderID == dispute.OrderID && existing.Status == domain.DisputeOpen {
			return domain.ErrDisputeAlreadyOpen
		}
	}
	copied := *dispute
	r.disputes[dispute.ID] = &copied
	return nil
}

func (r *fakeDisputeRepo) GetDisputeByID(_ context.Context, disputeID string) (*domain.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dispute, ok := r.disputes[disputeID]
	if !ok {
		return nil, domain.ErrDisputeNotFound
	}
	copied := *dispute
	return &copied, nil
}

func (r *fakeDisputeRepo) GetActiveDisputeByOrderID(_ context.Context, orderID string) (*domain.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dispute := range r.disputes {
		if dispute.OrderID == orderID && dispute.Status == domain.DisputeOpen {
			copied := *dispute
			return &copied, nil
		}
	}
	return nil, domain.ErrDisputeNotFound
}

func (r *fakeDisputeRepo) AddResponse(_ context.Context, disputeID, evidence string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dispute, ok := r.disputes[disputeID]
	if !ok || dispute.Status != domain.DisputeOpen {
		return domain.ErrDisputeAlreadyResolved
	}
	now := time.Now()
	dispute.RespondentEvidence = evidence
	dispute.RespondedAt = &now
	return nil
}

func (r *fakeDisputeRepo) ResolveDispute(_ context.Context, disputeID string, outcome domain.DisputeOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dispute, ok := r.disputes[disputeID]
	if !ok || dispute.Status != domain.DisputeOpen {
		return domain.ErrDisputeAlreadyResolved
	}
	now := time.Now()
	dispute.Status = domain.DisputeResolved
	dispute.Outcome = outcome
	dispute.ResolvedAt = &now
	return nil
}

func (r *fakeDisputeRepo) VoidDispute(_ context.Context, disputeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dispute, ok := r.disputes[disputeID]; ok && dispute.Status == domain.DisputeOpen {
		dispute.Status = domain.DisputeVoided
	}
	return nil
}

func (r *fakeDisputeRepo) FindExpiredDisputes(_ context.Context) ([]*domain.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Dispute
	for _, dispute := range r.disputes {
		if dispute.Status == domain.DisputeOpen && dispute.RespondedAt == nil && dispute.RespondBy.Before(time.Now()) {
			copied := *dispute
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDisputeRepo) ListDisputes(_ context.Context, status domain.DisputeStatus, _, _ int64) ([]*domain.Dispute, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Dispute
	for _, dispute := range r.disputes {
		if status != "" && dispute.Status != status {
			continue
		}
		copied := *dispute
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

type fakeLedger struct {
	mu       sync.Mutex
	pending  map[string]int64
	avail    map[string]int64
	reversed map[string]bool

	failReverse error
	failRelease error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		pending:  make(map[string]int64),
		avail:    make(map[string]int64),
		reversed: make(map[string]bool),
	}
}

func (l *fakeLedger) GetWallet(_ context.Context, userID string) (*domain.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &domain.Wallet{UserID: userID, PendingBalance: l.pending[userID], AvailableBalance: l.avail[userID]}, nil
}

func (l *fakeLedger) AdjustPending(_ context.Context, userID string, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending[userID] += delta
	return l.pending[userID], nil
}

func (l *fakeLedger) AdjustAvailable(_ context.Context, userID string, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.avail[userID]+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	l.avail[userID] += delta
	return l.avail[userID], nil
}

func (l *fakeLedger) ReleasePending(_ context.Context, userID string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failRelease != nil {
		return l.failRelease
	}
	if l.pending[userID] < amount {
		return domain.ErrInsufficientFunds
	}
	l.pending[userID] -= amount
	l.avail[userID] += amount
	return nil
}

func (l *fakeLedger) CreditPendingForOrder(_ context.Context, _, sellerID string, amount int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending[sellerID] += amount
	return true, nil
}

func (l *fakeLedger) ReversePendingForOrder(_ context.Context, orderID, sellerID string, amount int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failReverse != nil {
		return false, l.failReverse
	}
	if l.reversed[orderID] {
		return false, nil
	}
	l.reversed[orderID] = true
	l.pending[sellerID] -= amount
	return true, nil
}

func (l *fakeLedger) FailPayoutAndRecredit(_ context.Context, _, _ string, _ int64, _ string) (bool, error) {
	return false, nil
}

type fakeReconRepo struct {
	mu      sync.Mutex
	entries []*domain.ReconciliationEntry
}

func (r *fakeReconRepo) CreateEntry(_ context.Context, entry *domain.ReconciliationEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("recon-%d", len(r.entries)+1)
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeReconRepo) FindOpenEntries(_ context.Context) ([]*domain.ReconciliationEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var open []*domain.ReconciliationEntry
	for _, entry := range r.entries {
		if !entry.Resolved {
			open = append(open, entry)
		}
	}
	return open, nil
}

func (r *fakeReconRepo) MarkResolved(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.ID == entryID {
			entry.Resolved = true
		}
	}
	return nil
}

type fakeProvider struct {
	mu        sync.Mutex
	refunds   []int64
	refundErr error
}

func (p *fakeProvider) Refund(_ context.Context, chargeID string, amount int64) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refundErr != nil {
		return "", p.refundErr
	}
	p.refunds = append(p.refunds, amount)
	return fmt.Sprintf("re_%s_%d", chargeID, len(p.refunds)), nil
}

func (p *fakeProvider) CreatePayout(_ context.Context, _ string, _ int64, _ domain.PayoutMethod) (string, error) {
	return "", nil
}

type fakeNotifier struct{}

func (fakeNotifier) SendPush(_, _, _, _ string) {}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.DisputeEvent
}

func (p *fakePublisher) PublishOrder(_ kafka.OrderEvent) error { return nil }

func (p *fakePublisher) PublishDispute(event kafka.DisputeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) PublishPayout(_ kafka.PayoutEvent) error { return nil }

func newTestUsecase() (*DefaultDisputeUsecase, *fakeOrderRepo, *fakeDisputeRepo, *fakeLedger, *fakeReconRepo, *fakeProvider) {
	orderRepo := newFakeOrderRepo()
	disputeRepo := newFakeDisputeRepo()
	ledger := newFakeLedger()
	reconRepo := &fakeReconRepo{}
	provider := &fakeProvider{}
	uc := NewDefaultDisputeUsecase(
		disputeRepo,
		orderRepo,
		ledger,
		reconRepo,
		provider,
		fakeNotifier{},
		&fakePublisher{},
		nil,
		72*time.Hour,
	)
	return uc, orderRepo, disputeRepo, ledger, reconRepo, provider
}

func shippedOrder(repo *fakeOrderRepo, ledger *fakeLedger) *domain.Order {
	order := &domain.Order{
		ID:               "order-1",
		BuyerID:          "buyer-1",
		SellerID:         "seller-1",
		ItemPrice:        10000,
		ShippingAmount:   1500,
		TaxAmount:        800,
		BuyerFee:         500,
		SellerFee:        1150,
		SellerNet:        10350,
		TotalCharged:     12800,
		Currency:         "usd",
		Status:           domain.StatusShipped,
		EscrowStatus:     domain.EscrowHeld,
		WalletCredited:   true,
		ProviderChargeID: "ch_1",
	}
	repo.put(order)
	ledger.pending[order.SellerID] = order.SellerNet
	return order
}
