package models

import (
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
)

type ReconciliationEntryModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	OrderID    string `gorm:"type:uuid;index"`
	UserID     string `gorm:"type:uuid"`
	Amount     int64
	Reason     domain.ReconciliationReason
	Detail     string
	Resolved   bool `gorm:"index;default:false"`
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

func (ReconciliationEntryModel) TableName() string {
	return "reconciliation_entries"
}
