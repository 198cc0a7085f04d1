package models

import "time"

type WalletModel struct {
	UserID           string `gorm:"primaryKey;type:uuid"`
	PendingBalance   int64  `gorm:"not null;default:0"`
	AvailableBalance int64  `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (WalletModel) TableName() string {
	return "wallets"
}
