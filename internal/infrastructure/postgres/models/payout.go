package models

import (
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
)

type PayoutModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	DisplayNumber    string `gorm:"uniqueIndex"`
	UserID           string `gorm:"type:uuid;index"`
	Method           domain.PayoutMethod
	GrossAmount      int64
	FeeAmount        int64
	NetAmount        int64
	Currency         string
	ProviderPayoutID string              `gorm:"index"`
	Status           domain.PayoutStatus `gorm:"index"`
	FailureReason    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PaidAt           *time.Time
}

func (PayoutModel) TableName() string {
	return "payouts"
}
