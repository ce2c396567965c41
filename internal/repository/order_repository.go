package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil,
	}
}

func (r *orderRepository) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	if req.UserID == "" {
		return domain.Order{}, fmt.Errorf("userID is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		productRow, err := q.GetProduct(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Order{}, fmt.Errorf("product[%s]: %w", req.ProductID, domain.ErrNotFound)
			}
			return domain.Order{}, fmt.Errorf("q.GetProduct: %w", err)
		}

		params := db.CreateOrderParams{
			ID:            uuid.New(),
			ProductID:     productRow.ID,
			SellerID:      productRow.SellerID,
			UserID:        req.UserID,
			Username:      req.Username,
			Email:         req.Email,
			PriceAmount:   productRow.PriceAmount,
			PriceCurrency: productRow.PriceCurrency,
		}

		created, err := q.CreateOrder(ctx, params)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.CreateOrder: %w", err)
		}

		// the cart line may already be gone, an order is placed regardless
		if _, err := q.DeleteItem(ctx, db.DeleteItemParams{OwnerID: req.UserID, ProductID: req.ProductID}); err != nil {
			return domain.Order{}, fmt.Errorf("q.DeleteItem: %w", err)
		}

		return mapOrderToDomain(db.Order{
			ID:            params.ID,
			ProductID:     params.ProductID,
			SellerID:      params.SellerID,
			UserID:        params.UserID,
			Username:      params.Username,
			Email:         params.Email,
			PriceAmount:   params.PriceAmount,
			PriceCurrency: params.PriceCurrency,
			Status:        created.Status,
			CreatedAt:     created.CreatedAt,
		})
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return getOrder(ctx, r.q, orderID)
}

func (r *orderRepository) CancelOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return r.transition(ctx, orderID, domain.OrderStatusPlaced, domain.OrderStatusCancelled)
}

func (r *orderRepository) ConfirmOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return r.transition(ctx, orderID, domain.OrderStatusPlaced, domain.OrderStatusConfirmed)
}

func (r *orderRepository) ListOrdersBySeller(ctx context.Context, sellerID string) ([]domain.Order, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("sellerID is empty")
	}

	rows, err := r.q.ListOrdersBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrdersBySeller: %w", err)
	}

	orders, err := mapOrdersToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("mapOrdersToDomain: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) transition(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus) (domain.Order, error) {
	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		rowsAffected, err := q.TransitionOrder(ctx, db.TransitionOrderParams{
			ToStatus:   string(to),
			ID:         orderID,
			FromStatus: string(from),
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.TransitionOrder: %w", err)
		}

		order, err := getOrder(ctx, q, orderID)
		if err != nil {
			return domain.Order{}, err
		}

		if rowsAffected == 0 {
			return domain.Order{}, fmt.Errorf("order[%s] is %s, not %s: %w", orderID, order.Status, from, domain.ErrConflict)
		}

		return order, nil
	})
}

func getOrder(ctx context.Context, q *db.Queries, orderID uuid.UUID) (domain.Order, error) {
	row, err := q.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	order, err := mapOrderToDomain(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	return order, nil
}
