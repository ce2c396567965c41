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

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.SellerID == "" {
		return domain.Product{}, fmt.Errorf("sellerID is empty")
	}
	if product.Name == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}
	if product.Price.Amount.IsNegative() {
		return domain.Product{}, fmt.Errorf("price is negative")
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	createdAt, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		ID:            product.ID,
		SellerID:      product.SellerID,
		Name:          product.Name,
		Brand:         product.Brand,
		Category:      product.Category,
		ImageUrl:      product.ImageURL,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", product.ID, domain.ErrConflict)
		}
		return domain.Product{}, fmt.Errorf("q.CreateProduct: %w", err)
	}

	product.CreatedAt = createdAt
	return product, nil
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	product, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeleteProduct(ctx, productID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("product[%s] has orders: %w", productID, domain.ErrConflict)
		}
		return false, fmt.Errorf("q.DeleteProduct: %w", err)
	}

	return rowsAffected > 0, nil
}
