package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID       uuid.UUID
	SellerID string
	Name     string
	Brand    string
	Category string
	ImageURL string
	Price    Money

	CreatedAt time.Time
}
