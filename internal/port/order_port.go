package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderRepository interface {
	// PlaceOrder creates an order for one product and takes the product out of the buyer's cart.
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ConfirmOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListOrdersBySeller(ctx context.Context, sellerID string) ([]domain.Order, error)
}

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
}
