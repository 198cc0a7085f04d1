package usecase

import (
	"context"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	orderdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/order"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CreateOrder opens an order at checkout initiation. The money snapshot is
// frozen now; seller fee and net are computed at payment time from the
// verified charge.
func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error) {
	if input.BuyerID == input.SellerID {
		return nil, status.Error(codes.InvalidArgument, "buyer and seller must differ")
	}
	if input.ItemPrice <= 0 || input.Quantity <= 0 {
		return nil, status.Error(codes.InvalidArgument, "invalid item price or quantity")
	}

	order := &domain.Order{
		BuyerID:           input.BuyerID,
		SellerID:          input.SellerID,
		ListingID:         input.ListingID,
		Quantity:          input.Quantity,
		ItemPrice:         input.ItemPrice,
		ShippingAmount:    input.ShippingAmount,
		TaxAmount:         input.TaxAmount,
		BuyerFee:          input.BuyerFee,
		TotalCharged:      input.ItemPrice + input.ShippingAmount + input.TaxAmount + input.BuyerFee,
		Currency:          input.Currency,
		Status:            domain.StatusPendingPayment,
		EscrowStatus:      domain.EscrowNone,
		ProviderSessionID: input.ProviderSessionID,
	}

	if _, err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	return toOrderOutput(order), nil
}
