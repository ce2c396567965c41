package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

func mapMoney(amount decimal.Decimal, code string) (domain.Money, error) {
	parsedCurrency, err := currency.ParseISO(code)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return domain.Money{Amount: amount, Currency: parsedCurrency}, nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	price, err := mapMoney(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:        row.ID,
		SellerID:  row.SellerID,
		Name:      row.Name,
		Brand:     row.Brand,
		Category:  row.Category,
		ImageURL:  row.ImageUrl,
		Price:     price,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapOrderToDomain(row db.Order) (domain.Order, error) {
	price, err := mapMoney(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		ID:        row.ID,
		ProductID: row.ProductID,
		SellerID:  row.SellerID,
		Buyer: domain.Identity{
			UserID:   row.UserID,
			Username: row.Username,
			Email:    row.Email,
		},
		Price:     price,
		Status:    domain.OrderStatus(row.Status),
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapOrdersToDomain(rows []db.Order) ([]domain.Order, error) {
	var orders []domain.Order

	for _, row := range rows {
		order, err := mapOrderToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}

		orders = append(orders, order)
	}

	return orders, nil
}
