package usecase

import (
	"context"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/metrics"
	payoutdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/payout"
)

type PayoutUsecase interface {
	PreviewPayout(ctx context.Context, input *payoutdto.PreviewPayoutInput) (*payoutdto.PreviewOutput, error)
	RequestPayout(ctx context.Context, input *payoutdto.RequestPayoutInput) (*payoutdto.PayoutOutput, error)

	CompletePayout(ctx context.Context, providerPayoutID string) error
	FailPayout(ctx context.Context, providerPayoutID, reason string) error

	GetWallet(ctx context.Context, userID string) (*payoutdto.WalletOutput, error)
	ListPayouts(ctx context.Context, userID string, page, limit int64) ([]*payoutdto.PayoutOutput, int64, error)
}

type DefaultPayoutUsecase struct {
	PayoutRepo domain.PayoutRepository
	Ledger     domain.LedgerService
	ReconRepo  domain.ReconciliationRepository
	Provider   domain.PaymentProvider
	Notifier   domain.NotifierPort
	Publisher  kafka.Publisher
	Metrics    *metrics.EscrowMetrics

	InstantFeeBps int64
	InstantFeeCap int64
	Currency      string
}

func NewDefaultPayoutUsecase(
	payoutRepo domain.PayoutRepository,
	ledger domain.LedgerService,
	reconRepo domain.ReconciliationRepository,
	provider domain.PaymentProvider,
	notifier domain.NotifierPort,
	publisher kafka.Publisher,
	escrowMetrics *metrics.EscrowMetrics,
	instantFeeBps, instantFeeCap int64,
	currency string) *DefaultPayoutUsecase {

	return &DefaultPayoutUsecase{
		PayoutRepo:    payoutRepo,
		Ledger:        ledger,
		ReconRepo:     reconRepo,
		Provider:      provider,
		Notifier:      notifier,
		Publisher:     publisher,
		Metrics:       escrowMetrics,
		InstantFeeBps: instantFeeBps,
		InstantFeeCap: instantFeeCap,
		Currency:      currency,
	}
}
