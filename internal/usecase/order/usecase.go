package usecase

import (
	"context"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/kafka"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/metrics"
	orderdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error)

	HandlePaymentSucceeded(ctx context.Context, input *orderdto.PaymentSucceededInput) error

	MarkShipped(ctx context.Context, orderID, actorID string) error
	ConfirmDelivery(ctx context.Context, orderID, actorID string) error
	CancelOrder(ctx context.Context, orderID, actorID string) (*orderdto.CancelOutput, error)

	StartReturn(ctx context.Context, input *orderdto.StartReturnInput) error
	SubmitReturnTracking(ctx context.Context, orderID, actorID, tracking string) error
	ConfirmReturnReceipt(ctx context.Context, orderID, actorID string) error
	ReleaseExpiredReturns(ctx context.Context) error

	RetryReconciliation(ctx context.Context) error
	ListReconciliationGaps(ctx context.Context) ([]*domain.ReconciliationEntry, error)

	GetOrderByID(ctx context.Context, orderID string) (*orderdto.OrderOutput, error)
	GetOrderByDisplayNumber(ctx context.Context, number string) (*orderdto.OrderOutput, error)
	ListOrders(ctx context.Context, filters domain.OrderFilters, page, limit int64) ([]*orderdto.OrderOutput, int64, error)
}

type DefaultOrderUsecase struct {
	OrderRepo domain.OrderRepository
	Ledger    domain.LedgerService
	ReconRepo domain.ReconciliationRepository
	Provider  domain.PaymentProvider
	Inventory domain.InventoryPort
	Notifier  domain.NotifierPort
	Publisher kafka.Publisher
	Metrics   *metrics.EscrowMetrics

	SellerFeeBps int64
	ReturnWindow time.Duration
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	ledger domain.LedgerService,
	reconRepo domain.ReconciliationRepository,
	provider domain.PaymentProvider,
	inventory domain.InventoryPort,
	notifier domain.NotifierPort,
	publisher kafka.Publisher,
	escrowMetrics *metrics.EscrowMetrics,
	sellerFeeBps int64,
	returnWindow time.Duration) *DefaultOrderUsecase {

	return &DefaultOrderUsecase{
		OrderRepo:    orderRepo,
		Ledger:       ledger,
		ReconRepo:    reconRepo,
		Provider:     provider,
		Inventory:    inventory,
		Notifier:     notifier,
		Publisher:    publisher,
		Metrics:      escrowMetrics,
		SellerFeeBps: sellerFeeBps,
		ReturnWindow: returnWindow,
	}
}
