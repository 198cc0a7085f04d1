package mappers

import (
	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:                order.ID,
		DisplayNumber:     order.DisplayNumber,
		BuyerID:           order.BuyerID,
		SellerID:          order.SellerID,
		ListingID:         order.ListingID,
		Quantity:          order.Quantity,
		ItemPrice:         order.ItemPrice,
		ShippingAmount:    order.ShippingAmount,
		TaxAmount:         order.TaxAmount,
		BuyerFee:          order.BuyerFee,
		SellerFee:         order.SellerFee,
		SellerNet:         order.SellerNet,
		TotalCharged:      order.TotalCharged,
		Currency:          order.Currency,
		Status:            order.Status,
		EscrowStatus:      order.EscrowStatus,
		WalletCredited:    order.WalletCredited,
		WalletReversed:    order.WalletReversed,
		ProviderSessionID: order.ProviderSessionID,
		ProviderChargeID:  order.ProviderChargeID,
		RefundID:          order.RefundID,
		ReturnReason:      order.ReturnReason,
		ReturnNotes:       order.ReturnNotes,
		ReturnTracking:    order.ReturnTracking,
		ReturnDeadline:    order.ReturnDeadline,
		DisputeID:         order.DisputeID,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:                model.ID,
		DisplayNumber:     model.DisplayNumber,
		BuyerID:           model.BuyerID,
		SellerID:          model.SellerID,
		ListingID:         model.ListingID,
		Quantity:          model.Quantity,
		ItemPrice:         model.ItemPrice,
		ShippingAmount:    model.ShippingAmount,
		TaxAmount:         model.TaxAmount,
		BuyerFee:          model.BuyerFee,
		SellerFee:         model.SellerFee,
		SellerNet:         model.SellerNet,
		TotalCharged:      model.TotalCharged,
		Currency:          model.Currency,
		Status:            model.Status,
		EscrowStatus:      model.EscrowStatus,
		WalletCredited:    model.WalletCredited,
		WalletReversed:    model.WalletReversed,
		ProviderSessionID: model.ProviderSessionID,
		ProviderChargeID:  model.ProviderChargeID,
		RefundID:          model.RefundID,
		ReturnReason:      model.ReturnReason,
		ReturnNotes:       model.ReturnNotes,
		ReturnTracking:    model.ReturnTracking,
		ReturnDeadline:    model.ReturnDeadline,
		DisputeID:         model.DisputeID,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
