package models

import (
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
)

type DisputeModel struct {
	ID                 string `gorm:"primaryKey"`
	OrderID            string `gorm:"type:uuid;index;not null"`
	OpenedBy           string `gorm:"type:uuid;not null"`
	OpenedByParty      domain.DisputeParty
	Reason             string
	Description        string
	OpenerEvidence     string
	RespondentEvidence string
	RespondedAt        *time.Time
	RespondBy          time.Time
	Status             domain.DisputeStatus `gorm:"index"`
	Outcome            domain.DisputeOutcome
	ResolvedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (DisputeModel) TableName() string {
	return "disputes"
}
