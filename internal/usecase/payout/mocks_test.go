package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
)

type fakePayoutRepo struct {
	mu      sync.Mutex
	payouts map[string]*domain.Payout
	nextID  int
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{payouts: make(map[string]*domain.Payout)}
}

func (r *fakePayoutRepo) CreatePayout(_ context.Context, payout *domain.Payout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if payout.ID == "" {
		payout.ID = fmt.Sprintf("payout-%d", r.nextID)
	}
	if payout.DisplayNumber == "" {
		payout.DisplayNumber = fmt.Sprintf("%010d", r.nextID)
	}
	copied := *payout
	r.payouts[payout.ID] = &copied
	return nil
}

func (r *fakePayoutRepo) GetPayoutByID(_ context.Context, payoutID string) (*domain.Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payout, ok := r.payouts[payoutID]
	if !ok {
		return nil, domain.ErrPayoutNotFound
	}
	copied := *payout
	return &copied, nil
}

func (r *fakePayoutRepo) GetPayoutByProviderID(_ context.Context, providerPayoutID string) (*domain.Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, payout := range r.payouts {
		if payout.ProviderPayoutID == providerPayoutID {
			copied := *payout
			return &copied, nil
		}
	}
	return nil, domain.ErrPayoutNotFound
}

func (r *fakePayoutRepo) MarkPaidIf(_ context.Context, payoutID string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payout, ok := r.payouts[payoutID]
	if !ok || payout.Status != domain.PayoutPending {
		return false, nil
	}
	payout.Status = domain.PayoutPaid
	payout.PaidAt = &paidAt
	return true, nil
}

func (r *fakePayoutRepo) ListPayoutsByUser(_ context.Context, userID string, _, _ int64) ([]*domain.Payout, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Payout
	for _, payout := range r.payouts {
		if payout.UserID == userID {
			copied := *payout
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

// fakeLedger keeps a backref to the payout repo so FailPayoutAndRecredit can
// mirror the production transaction: status flip and re-credit succeed or
// fail as one unit.
type fakeLedger struct {
	mu    sync.Mutex
	avail map[string]int64
	repo  *fakePayoutRepo

	failAdjust   error
	failRecredit error
}

func newFakeLedger(repo *fakePayoutRepo) *fakeLedger {
	return &fakeLedger{avail: make(map[string]int64), repo: repo}
}

func (l *fakeLedger) GetWallet(_ context.Context, userID string) (*domain.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &domain.Wallet{UserID: userID, AvailableBalance: l.avail[userID]}, nil
}

func (l *fakeLedger) AdjustPending(_ context.Context, _ string, _ int64) (int64, error) {
	return 0, nil
}

func (l *fakeLedger) AdjustAvailable(_ context.Context, userID string, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failAdjust != nil && delta > 0 {
		return 0, l.failAdjust
	}
	if l.avail[userID]+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	l.avail[userID] += delta
	return l.avail[userID], nil
}

func (l *fakeLedger) ReleasePending(_ context.Context, _ string, _ int64) error { return nil }

func (l *fakeLedger) CreditPendingForOrder(_ context.Context, _, _ string, _ int64) (bool, error) {
	return false, nil
}

func (l *fakeLedger) ReversePendingForOrder(_ context.Context, _, _ string, _ int64) (bool, error) {
	return false, nil
}

func (l *fakeLedger) FailPayoutAndRecredit(_ context.Context, payoutID, userID string, amount int64, reason string) (bool, error) {
	if l.failRecredit != nil {
		return false, l.failRecredit
	}
	l.repo.mu.Lock()
	defer l.repo.mu.Unlock()
	payout, ok := l.repo.payouts[payoutID]
	if !ok || payout.Status != domain.PayoutPending {
		return false, nil
	}
	payout.Status = domain.PayoutFailed
	payout.FailureReason = reason

	l.mu.Lock()
	defer l.mu.Unlock()
	l.avail[userID] += amount
	return true, nil
}

type fakeReconRepo struct {
	mu      sync.Mutex
	entries []*domain.ReconciliationEntry
}

func (r *fakeReconRepo) CreateEntry(_ context.Context, entry *domain.ReconciliationEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeReconRepo) FindOpenEntries(_ context.Context) ([]*domain.ReconciliationEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, nil
}

func (r *fakeReconRepo) MarkResolved(_ context.Context, _ string) error { return nil }

type fakeProvider struct {
	mu        sync.Mutex
	payouts   []int64
	payoutErr error
}

func (p *fakeProvider) Refund(_ context.Context, _ string, _ int64) (string, error) {
	return "", nil
}

func (p *fakeProvider) CreatePayout(_ context.Context, userID string, amount int64, _ domain.PayoutMethod) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.payoutErr != nil {
		return "", p.payoutErr
	}
	p.payouts = append(p.payouts, amount)
	return fmt.Sprintf("po_%s_%d", userID, len(p.payouts)), nil
}

type fakeNotifier struct{}

func (fakeNotifier) SendPush(_, _, _, _ string) {}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.PayoutEvent
}

func (p *fakePublisher) PublishOrder(_ kafka.OrderEvent) error     { return nil }
func (p *fakePublisher) PublishDispute(_ kafka.DisputeEvent) error { return nil }

func (p *fakePublisher) PublishPayout(event kafka.PayoutEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func newTestUsecase() (*DefaultPayoutUsecase, *fakePayoutRepo, *fakeLedger, *fakeReconRepo, *fakeProvider) {
	payoutRepo := newFakePayoutRepo()
	ledger := newFakeLedger(payoutRepo)
	reconRepo := &fakeReconRepo{}
	provider := &fakeProvider{}
	uc := NewDefaultPayoutUsecase(
		payoutRepo,
		ledger,
		reconRepo,
		provider,
		fakeNotifier{},
		&fakePublisher{},
		nil,
		150,  // 1.5% instant fee
		1500, // capped at $15
		"usd",
	)
	return uc, payoutRepo, ledger, reconRepo, provider
}
