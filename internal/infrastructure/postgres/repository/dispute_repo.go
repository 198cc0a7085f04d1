package repository

import (
	"context"
	"errors"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDisputeRepository struct {
	DB *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{DB: db}
}

// CreateDispute inserts only if no OPEN dispute exists for the order. The
// check and insert run in one transaction so two racing openers cannot both
// succeed.
func (r *DefaultDisputeRepository) CreateDispute(ctx context.Context, dispute *domain.Dispute) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DisputeModel{}).
			Where("order_id = ? AND status = ?", dispute.OrderID, domain.DisputeOpen).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDisputeAlreadyOpen
		}
		return tx.Create(mappers.ToGORMDispute(dispute)).Error
	})
}

func (r *DefaultDisputeRepository) GetDisputeByID(ctx context.Context, disputeID string) (*domain.Dispute, error) {
	var dispute models.DisputeModel
	if err := r.DB.WithContext(ctx).First(&dispute, "id = ?", disputeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&dispute), nil
}

func (r *DefaultDisputeRepository) GetActiveDisputeByOrderID(ctx context.Context, orderID string) (*domain.Dispute, error) {
	var dispute models.DisputeModel
	if err := r.DB.WithContext(ctx).
		First(&dispute, "order_id = ? AND status = ?", orderID, domain.DisputeOpen).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&dispute), nil
}

func (r *DefaultDisputeRepository) AddResponse(ctx context.Context, disputeID, evidence string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.DisputeModel{}).
		Where("id = ? AND status = ?", disputeID, domain.DisputeOpen).
		Updates(map[string]interface{}{
			"respondent_evidence": evidence,
			"responded_at":        time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDisputeAlreadyResolved
	}
	return nil
}

func (r *DefaultDisputeRepository) ResolveDispute(ctx context.Context, disputeID string, outcome domain.DisputeOutcome) error {
	res := r.DB.WithContext(ctx).
		Model(&models.DisputeModel{}).
		Where("id = ? AND status = ?", disputeID, domain.DisputeOpen).
		Updates(map[string]interface{}{
			"status":      domain.DisputeResolved,
			"outcome":     outcome,
			"resolved_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDisputeAlreadyResolved
	}
	return nil
}

func (r *DefaultDisputeRepository) VoidDispute(ctx context.Context, disputeID string) error {
	return r.DB.WithContext(ctx).
		Model(&models.DisputeModel{}).
		Where("id = ? AND status = ?", disputeID, domain.DisputeOpen).
		Update("status", domain.DisputeVoided).Error
}

func (r *DefaultDisputeRepository) FindExpiredDisputes(ctx context.Context) ([]*domain.Dispute, error) {
	var disputeModels []models.DisputeModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", domain.DisputeOpen).
		Where("responded_at IS NULL").
		Where("respond_by < ?", time.Now()).
		Find(&disputeModels).Error; err != nil {
		return nil, err
	}

	disputes := make([]*domain.Dispute, len(disputeModels))
	for i, disputeModel := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModel)
	}
	return disputes, nil
}

func (r *DefaultDisputeRepository) ListDisputes(ctx context.Context, status domain.DisputeStatus, page, limit int64) ([]*domain.Dispute, int64, error) {
	var disputeModels []models.DisputeModel
	var total int64

	baseQuery := r.DB.WithContext(ctx).Model(&models.DisputeModel{})
	if status != "" {
		baseQuery = baseQuery.Where("status = ?", status)
	}
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&disputeModels).Error; err != nil {
		return nil, 0, err
	}

	disputes := make([]*domain.Dispute, len(disputeModels))
	for i, disputeModel := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModel)
	}
	return disputes, total, nil
}
