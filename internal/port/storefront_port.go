package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

// CartAPI is the client side of the cart endpoints.
type CartAPI interface {
	FetchCart(ctx context.Context, userID string) ([]domain.CartEntry, error)
	RemoveFromCart(ctx context.Context, userID string, productID uuid.UUID) error
}

// PlacedOrder is the outcome of a single order-creation request that got an HTTP response.
type PlacedOrder struct {
	StatusCode int
	Order      domain.Order
}

// OrderAPI is the client side of the order endpoints.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (PlacedOrder, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) error
}

// IdentityProvider resolves who is placing orders.
type IdentityProvider interface {
	Identity(ctx context.Context) (domain.Identity, error)
}

// CredentialStore persists the credential token between runs.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
