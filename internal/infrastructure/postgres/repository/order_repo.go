package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (string, error) {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.DisplayNumber == "" {
		idGenerator, err := nanoid.CustomASCII("0123456789", 10)
		if err != nil {
			return "", err
		}
		order.DisplayNumber = idGenerator()
	}
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return "", err
	}
	return order.ID, nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) GetOrderByDisplayNumber(ctx context.Context, number string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "display_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) ListOrders(ctx context.Context, filters domain.OrderFilters, page, limit int64) ([]*domain.Order, int64, error) {
	var orderModels []models.OrderModel
	var total int64

	baseQuery := r.DB.WithContext(ctx).Model(&models.OrderModel{})
	if filters.BuyerID != "" {
		baseQuery = baseQuery.Where("buyer_id = ?", filters.BuyerID)
	}
	if filters.SellerID != "" {
		baseQuery = baseQuery.Where("seller_id = ?", filters.SellerID)
	}
	if len(filters.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN ?", filters.Statuses)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&orderModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}
	return orders, total, nil
}

// UpdateOrderStatusIf is the compare-and-swap every handler commits through.
// Two concurrent callers racing from the same stale read cannot both land.
func (r *DefaultOrderRepository) UpdateOrderStatusIf(ctx context.Context, orderID string, expected, next domain.OrderStatus, escrow domain.EscrowStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, expected).
		Updates(map[string]interface{}{
			"status":        next,
			"escrow_status": escrow,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderStateChanged
	}
	return nil
}

// MarkPaid is the webhook commit point: the status flip, provider references
// and fee snapshot land as one conditional write or not at all.
func (r *DefaultOrderRepository) MarkPaid(ctx context.Context, orderID string, params domain.MarkPaidParams) error {
	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status IN ?", orderID, []domain.OrderStatus{domain.StatusCreated, domain.StatusPendingPayment}).
		Updates(map[string]interface{}{
			"status":              domain.StatusPaid,
			"escrow_status":       domain.EscrowPending,
			"seller_fee":          params.SellerFee,
			"seller_net":          params.SellerNet,
			"provider_session_id": params.ProviderSessionID,
			"provider_charge_id":  params.ProviderChargeID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderStateChanged
	}
	return nil
}

func (r *DefaultOrderRepository) MarkRefunded(ctx context.Context, orderID string, params domain.MarkRefundedParams) error {
	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, params.Expected).
		Updates(map[string]interface{}{
			"status":        params.NewStatus,
			"escrow_status": domain.EscrowRefunded,
			"refund_id":     params.RefundID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderStateChanged
	}
	return nil
}

func (r *DefaultOrderRepository) StartReturn(ctx context.Context, orderID, reason, notes string, deadline time.Time) error {
	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, domain.StatusShipped).
		Updates(map[string]interface{}{
			"status":          domain.StatusReturnStarted,
			"escrow_status":   domain.EscrowFrozen,
			"return_reason":   reason,
			"return_notes":    notes,
			"return_deadline": deadline,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderStateChanged
	}
	return nil
}

// SubmitReturnTracking only lands while no tracking was ever recorded.
// Tracking is immutable once written: there is no edit path.
func (r *DefaultOrderRepository) SubmitReturnTracking(ctx context.Context, orderID, tracking string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ? AND return_tracking = ''", orderID, domain.StatusReturnStarted).
		Updates(map[string]interface{}{
			"status":          domain.StatusReturnProcessing,
			"return_tracking": tracking,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var order models.OrderModel
		if err := r.DB.WithContext(ctx).Select("return_tracking").First(&order, "id = ?", orderID).Error; err == nil && order.ReturnTracking != "" {
			return domain.ErrTrackingAlreadySubmitted
		}
		return domain.ErrOrderStateChanged
	}
	return nil
}

func (r *DefaultOrderRepository) LinkDispute(ctx context.Context, orderID, disputeID string, expected, next domain.OrderStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, expected).
		Updates(map[string]interface{}{
			"status":        next,
			"escrow_status": domain.EscrowFrozen,
			"dispute_id":    disputeID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderStateChanged
	}
	return nil
}

func (r *DefaultOrderRepository) FindExpiredReturns(ctx context.Context) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", domain.StatusReturnStarted).
		Where("return_tracking = ''").
		Where("return_deadline < ?", time.Now()).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}
	return orders, nil
}
