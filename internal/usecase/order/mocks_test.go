package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	nextID int
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
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		r.nextID++
		order.ID = fmt.Sprintf("order-%d", r.nextID)
	}
	if order.DisplayNumber == "" {
		order.DisplayNumber = fmt.Sprintf("%010d", r.nextID)
	}
	copied := *order
	r.orders[order.ID] = &copied
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

func (r *fakeOrderRepo) GetOrderByDisplayNumber(_ context.Context, number string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.DisplayNumber == number {
			copied := *order
			return &copied, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListOrders(_ context.Context, filters domain.OrderFilters, _, _ int64) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, order := range r.orders {
		if filters.BuyerID != "" && order.BuyerID != filters.BuyerID {
			continue
		}
		if filters.SellerID != "" && order.SellerID != filters.SellerID {
			continue
		}
		copied := *order
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
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

func (r *fakeOrderRepo) MarkPaid(_ context.Context, orderID string, params domain.MarkPaidParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || (order.Status != domain.StatusCreated && order.Status != domain.StatusPendingPayment) {
		return domain.ErrOrderStateChanged
	}
	order.Status = domain.StatusPaid
	order.EscrowStatus = domain.EscrowPending
	order.SellerFee = params.SellerFee
	order.SellerNet = params.SellerNet
	order.ProviderSessionID = params.ProviderSessionID
	order.ProviderChargeID = params.ProviderChargeID
	return nil
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

func (r *fakeOrderRepo) StartReturn(_ context.Context, orderID, reason, notes string, deadline time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.Status != domain.StatusShipped {
		return domain.ErrOrderStateChanged
	}
	order.Status = domain.StatusReturnStarted
	order.EscrowStatus = domain.EscrowFrozen
	order.ReturnReason = reason
	order.ReturnNotes = notes
	order.ReturnDeadline = &deadline
	return nil
}

func (r *fakeOrderRepo) SubmitReturnTracking(_ context.Context, orderID, tracking string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderStateChanged
	}
	if order.ReturnTracking != "" {
		return domain.ErrTrackingAlreadySubmitted
	}
	if order.Status != domain.StatusReturnStarted {
		return domain.ErrOrderStateChanged
	}
	order.Status = domain.StatusReturnProcessing
	order.ReturnTracking = tracking
	return nil
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
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, order := range r.orders {
		if order.Status == domain.StatusReturnStarted &&
			order.ReturnTracking == "" &&
			order.ReturnDeadline != nil &&
			order.ReturnDeadline.Before(time.Now()) {
			copied := *order
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeLedger struct {
	mu       sync.Mutex
	pending  map[string]int64
	avail    map[string]int64
	credited map[string]bool
	reversed map[string]bool

	// mirrors the production transaction that flips the order's idempotency
	// markers together with the balance change
	repo *fakeOrderRepo

	failCredit  error
	failReverse error
	failRelease error
	failAdjust  error
}

func newFakeLedger(repo *fakeOrderRepo) *fakeLedger {
	return &fakeLedger{
		pending:  make(map[string]int64),
		avail:    make(map[string]int64),
		credited: make(map[string]bool),
		reversed: make(map[string]bool),
		repo:     repo,
	}
}

func (l *fakeLedger) GetWallet(_ context.Context, userID string) (*domain.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &domain.Wallet{
		UserID:           userID,
		PendingBalance:   l.pending[userID],
		AvailableBalance: l.avail[userID],
	}, nil
}

func (l *fakeLedger) AdjustPending(_ context.Context, userID string, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending[userID]+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	l.pending[userID] += delta
	return l.pending[userID], nil
}

func (l *fakeLedger) AdjustAvailable(_ context.Context, userID string, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failAdjust != nil {
		return 0, l.failAdjust
	}
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

func (l *fakeLedger) CreditPendingForOrder(_ context.Context, orderID, sellerID string, amount int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failCredit != nil {
		return false, l.failCredit
	}
	if l.credited[orderID] {
		return false, nil
	}
	l.credited[orderID] = true
	l.pending[sellerID] += amount
	if l.repo != nil {
		l.repo.mu.Lock()
		if order, ok := l.repo.orders[orderID]; ok {
			order.WalletCredited = true
		}
		l.repo.mu.Unlock()
	}
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
	if l.repo != nil {
		l.repo.mu.Lock()
		if order, ok := l.repo.orders[orderID]; ok {
			order.WalletReversed = true
		}
		l.repo.mu.Unlock()
	}
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
			return nil
		}
	}
	return errors.New("entry not found")
}

type fakeProvider struct {
	mu          sync.Mutex
	refunds     []int64
	refundErr   error
	payoutErr   error
	payoutCalls int
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

func (p *fakeProvider) CreatePayout(_ context.Context, userID string, amount int64, _ domain.PayoutMethod) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.payoutErr != nil {
		return "", p.payoutErr
	}
	p.payoutCalls++
	return fmt.Sprintf("po_%s_%d", userID, p.payoutCalls), nil
}

type fakeInventory struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (i *fakeInventory) DecrementQuantity(_ context.Context, _ string, _ int32) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.calls++
	return i.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	pushes []string
}

func (n *fakeNotifier) SendPush(userID, title, _, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, userID+":"+title)
}

type fakePublisher struct {
	mu       sync.Mutex
	orders   []kafka.OrderEvent
	disputes []kafka.DisputeEvent
	payouts  []kafka.PayoutEvent
}

func (p *fakePublisher) PublishOrder(event kafka.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, event)
	return nil
}

func (p *fakePublisher) PublishDispute(event kafka.DisputeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disputes = append(p.disputes, event)
	return nil
}

func (p *fakePublisher) PublishPayout(event kafka.PayoutEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payouts = append(p.payouts, event)
	return nil
}

func newTestUsecase() (*DefaultOrderUsecase, *fakeOrderRepo, *fakeLedger, *fakeReconRepo, *fakeProvider) {
	orderRepo := newFakeOrderRepo()
	ledger := newFakeLedger(orderRepo)
	reconRepo := &fakeReconRepo{}
	provider := &fakeProvider{}
	uc := NewDefaultOrderUsecase(
		orderRepo,
		ledger,
		reconRepo,
		provider,
		&fakeInventory{},
		&fakeNotifier{},
		&fakePublisher{},
		nil,
		1000,
		72*time.Hour,
	)
	return uc, orderRepo, ledger, reconRepo, provider
}

func paidOrder(repo *fakeOrderRepo, ledger *fakeLedger) *domain.Order {
	order := &domain.Order{
		ID:               "order-1",
		DisplayNumber:    "0000000001",
		BuyerID:          "buyer-1",
		SellerID:         "seller-1",
		ListingID:        "listing-1",
		Quantity:         1,
		ItemPrice:        10000,
		ShippingAmount:   1500,
		TaxAmount:        800,
		BuyerFee:         500,
		SellerFee:        1150,
		SellerNet:        10350,
		TotalCharged:     12800,
		Currency:         "usd",
		Status:           domain.StatusPaid,
		EscrowStatus:     domain.EscrowPending,
		WalletCredited:   true,
		ProviderChargeID: "ch_1",
	}
	repo.put(order)
	if ledger != nil {
		ledger.credited[order.ID] = true
		ledger.pending[order.SellerID] = order.SellerNet
	}
	return order
}
