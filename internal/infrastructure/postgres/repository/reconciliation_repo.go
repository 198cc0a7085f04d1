package repository

import (
	"context"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultReconciliationRepository struct {
	DB *gorm.DB
}

func NewDefaultReconciliationRepository(db *gorm.DB) *DefaultReconciliationRepository {
	return &DefaultReconciliationRepository{DB: db}
}

func (r *DefaultReconciliationRepository) CreateEntry(ctx context.Context, entry *domain.ReconciliationEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return r.DB.WithContext(ctx).Create(&models.ReconciliationEntryModel{
		ID:        entry.ID,
		OrderID:   entry.OrderID,
		UserID:    entry.UserID,
		Amount:    entry.Amount,
		Reason:    entry.Reason,
		Detail:    entry.Detail,
		CreatedAt: time.Now(),
	}).Error
}

func (r *DefaultReconciliationRepository) FindOpenEntries(ctx context.Context) ([]*domain.ReconciliationEntry, error) {
	var entryModels []models.ReconciliationEntryModel
	if err := r.DB.WithContext(ctx).
		Where("resolved = ?", false).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.ReconciliationEntry, len(entryModels))
	for i, entryModel := range entryModels {
		entries[i] = mappers.ToDomainReconciliationEntry(&entryModel)
	}
	return entries, nil
}

func (r *DefaultReconciliationRepository) MarkResolved(ctx context.Context, entryID string) error {
	return r.DB.WithContext(ctx).
		Model(&models.ReconciliationEntryModel{}).
		Where("id = ? AND resolved = ?", entryID, false).
		Updates(map[string]interface{}{
			"resolved":    true,
			"resolved_at": time.Now(),
		}).Error
}
