package usecase

import (
	"context"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/metrics"
	disputedto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/dispute"
)

type DisputeUsecase interface {
	OpenDispute(ctx context.Context, input *disputedto.OpenDisputeInput) (*disputedto.DisputeOutput, error)
	RespondDispute(ctx context.Context, input *disputedto.RespondDisputeInput) error
	ResolveDispute(ctx context.Context, input *disputedto.ResolveDisputeInput) error
	ResolveExpiredDisputes(ctx context.Context) error

	GetDisputeByID(ctx context.Context, disputeID string) (*disputedto.DisputeOutput, error)
	ListDisputes(ctx context.Context, status string, page, limit int64) ([]*disputedto.DisputeOutput, int64, error)
}

type DefaultDisputeUsecase struct {
	DisputeRepo domain.DisputeRepository
	OrderRepo   domain.OrderRepository
	Ledger      domain.LedgerService
	ReconRepo   domain.ReconciliationRepository
	Provider    domain.PaymentProvider
	Notifier    domain.NotifierPort
	Publisher   kafka.Publisher
	Metrics     *metrics.EscrowMetrics

	ResponseTTL time.Duration
}

func NewDefaultDisputeUsecase(
	disputeRepo domain.DisputeRepository,
	orderRepo domain.OrderRepository,
	ledger domain.LedgerService,
	reconRepo domain.ReconciliationRepository,
	provider domain.PaymentProvider,
	notifier domain.NotifierPort,
	publisher kafka.Publisher,
	escrowMetrics *metrics.EscrowMetrics,
	responseTTL time.Duration) *DefaultDisputeUsecase {

	return &DefaultDisputeUsecase{
		DisputeRepo: disputeRepo,
		OrderRepo:   orderRepo,
		Ledger:      ledger,
		ReconRepo:   reconRepo,
		Provider:    provider,
		Notifier:    notifier,
		Publisher:   publisher,
		Metrics:     escrowMetrics,
		ResponseTTL: responseTTL,
	}
}
