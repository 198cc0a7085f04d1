package models

import (
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
)

type OrderModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	DisplayNumber string `gorm:"uniqueIndex"`
	BuyerID       string `gorm:"type:uuid;index:idx_buyer"`
	SellerID      string `gorm:"type:uuid;index:idx_seller"`
	ListingID     string `gorm:"type:uuid"`
	Quantity      int32

	ItemPrice      int64
	ShippingAmount int64
	TaxAmount      int64
	BuyerFee       int64
	SellerFee      int64
	SellerNet      int64
	TotalCharged   int64
	Currency       string

	Status       domain.OrderStatus  `gorm:"index:idx_status_deadline"`
	EscrowStatus domain.EscrowStatus `gorm:"index"`

	WalletCredited bool `gorm:"default:false"`
	WalletReversed bool `gorm:"default:false"`

	ProviderSessionID string `gorm:"index"`
	ProviderChargeID  string
	RefundID          string

	ReturnReason   string
	ReturnNotes    string
	ReturnTracking string
	ReturnDeadline *time.Time `gorm:"index:idx_status_deadline"`
	DisputeID      string

	CreatedAt time.Time `gorm:"index:idx_created_at"`
	UpdatedAt time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
