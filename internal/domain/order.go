package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderRequest is sent once per product when a cart is checked out.
type OrderRequest struct {
	ProductID uuid.UUID
	Identity
}

type Order struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	SellerID  string
	Buyer     Identity
	Price     Money
	Status    OrderStatus

	CreatedAt time.Time
}

type Payment struct {
	ID     uuid.UUID
	UserID string
	Amount Money

	CreatedAt time.Time
}
