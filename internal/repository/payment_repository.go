package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type paymentRepository struct {
	q *db.Queries
}

func NewPayment(pool *pgxpool.Pool) port.PaymentRepository {
	return &paymentRepository{
		q: db.New(pool),
	}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if payment.UserID == "" {
		return domain.Payment{}, fmt.Errorf("userID is empty")
	}
	if payment.Amount.Amount.IsNegative() {
		return domain.Payment{}, fmt.Errorf("amount is negative")
	}

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	createdAt, err := r.q.CreatePayment(ctx, db.CreatePaymentParams{
		ID:       payment.ID,
		UserID:   payment.UserID,
		Amount:   payment.Amount.Amount,
		Currency: payment.Amount.Currency.String(),
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("q.CreatePayment: %w", err)
	}

	payment.CreatedAt = createdAt
	return payment, nil
}
