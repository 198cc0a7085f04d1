package usecase

import (
	"context"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	orderdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, orderID string) (*orderdto.OrderOutput, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderOutput(order), nil
}

func (uc *DefaultOrderUsecase) GetOrderByDisplayNumber(ctx context.Context, number string) (*orderdto.OrderOutput, error) {
	order, err := uc.OrderRepo.GetOrderByDisplayNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return toOrderOutput(order), nil
}

func (uc *DefaultOrderUsecase) ListOrders(ctx context.Context, filters domain.OrderFilters, page, limit int64) ([]*orderdto.OrderOutput, int64, error) {
	orders, total, err := uc.OrderRepo.ListOrders(ctx, filters, page, limit)
	if err != nil {
		return nil, 0, err
	}

	outputs := make([]*orderdto.OrderOutput, 0, len(orders))
	for _, order := range orders {
		outputs = append(outputs, toOrderOutput(order))
	}
	return outputs, total, nil
}

func toOrderOutput(order *domain.Order) *orderdto.OrderOutput {
	return &orderdto.OrderOutput{
		ID:             order.ID,
		DisplayNumber:  order.DisplayNumber,
		BuyerID:        order.BuyerID,
		SellerID:       order.SellerID,
		ListingID:      order.ListingID,
		Quantity:       order.Quantity,
		ItemPrice:      order.ItemPrice,
		ShippingAmount: order.ShippingAmount,
		TaxAmount:      order.TaxAmount,
		BuyerFee:       order.BuyerFee,
		SellerFee:      order.SellerFee,
		SellerNet:      order.SellerNet,
		TotalCharged:   order.TotalCharged,
		Currency:       order.Currency,
		Status:         string(order.Status),
		EscrowStatus:   string(order.EscrowStatus),
		ReturnReason:   order.ReturnReason,
		ReturnTracking: order.ReturnTracking,
		ReturnDeadline: order.ReturnDeadline,
		DisputeID:      order.DisputeID,
		CreatedAt:      order.CreatedAt,
	}
}
