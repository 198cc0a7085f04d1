package repository

import (
	"context"
	"errors"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"gorm.io/gorm"
)

type DefaultPayoutRepository struct {
	DB *gorm.DB
}

func NewDefaultPayoutRepository(db *gorm.DB) *DefaultPayoutRepository {
	return &DefaultPayoutRepository{DB: db}
}

func (r *DefaultPayoutRepository) CreatePayout(ctx context.Context, payout *domain.Payout) error {
	if payout.ID == "" {
		payout.ID = uuid.New().String()
	}
	if payout.DisplayNumber == "" {
		idGenerator, err := nanoid.CustomASCII("0123456789", 10)
		if err != nil {
			return err
		}
		payout.DisplayNumber = idGenerator()
	}
	return r.DB.WithContext(ctx).Create(mappers.ToGORMPayout(payout)).Error
}

func (r *DefaultPayoutRepository) GetPayoutByID(ctx context.Context, payoutID string) (*domain.Payout, error) {
	var payout models.PayoutModel
	if err := r.DB.WithContext(ctx).First(&payout, "id = ?", payoutID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayoutNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayout(&payout), nil
}

func (r *DefaultPayoutRepository) GetPayoutByProviderID(ctx context.Context, providerPayoutID string) (*domain.Payout, error) {
	var payout models.PayoutModel
	if err := r.DB.WithContext(ctx).First(&payout, "provider_payout_id = ?", providerPayoutID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayoutNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayout(&payout), nil
}

func (r *DefaultPayoutRepository) MarkPaidIf(ctx context.Context, payoutID string, paidAt time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.PayoutModel{}).
		Where("id = ? AND status = ?", payoutID, domain.PayoutPending).
		Updates(map[string]interface{}{
			"status":  domain.PayoutPaid,
			"paid_at": paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DefaultPayoutRepository) ListPayoutsByUser(ctx context.Context, userID string, page, limit int64) ([]*domain.Payout, int64, error) {
	var payoutModels []models.PayoutModel
	var total int64

	baseQuery := r.DB.WithContext(ctx).Model(&models.PayoutModel{}).Where("user_id = ?", userID)
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&payoutModels).Error; err != nil {
		return nil, 0, err
	}

	payouts := make([]*domain.Payout, len(payoutModels))
	for i, payoutModel := range payoutModels {
		payouts[i] = mappers.ToDomainPayout(&payoutModel)
	}
	return payouts, total, nil
}
