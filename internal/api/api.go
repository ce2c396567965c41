// Package api holds the JSON shapes exchanged between the storefront server and its clients.
package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Message struct {
	Message string `json:"message"`
}

type Product struct {
	ID        uuid.UUID       `json:"id"`
	SellerID  string          `json:"sellerId"`
	Name      string          `json:"productName"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	ImageURL  string          `json:"imageUrl"`
	CreatedAt time.Time       `json:"createdAt"`
}

type CartEntry struct {
	ID       string    `json:"id"`
	Products []Product `json:"products"`
}

type Order struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	SellerID  string          `json:"sellerId"`
	UserID    string          `json:"userId"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Payment struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"userId"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CartRequest is the body of add-to-cart and remove-from-cart calls.
type CartRequest struct {
	UserID string `json:"userId"`
}

type PlaceOrderRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type PaymentRequest struct {
	UserID string `json:"userId"`
}

type CreateProductRequest struct {
	Name     string          `json:"productName"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	ImageURL string          `json:"imageUrl"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func FromProduct(p domain.Product) Product {
	return Product{
		ID:        p.ID,
		SellerID:  p.SellerID,
		Name:      p.Name,
		Price:     p.Price.Amount,
		Currency:  p.Price.Currency.String(),
		Brand:     p.Brand,
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

func FromProducts(products []domain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

// ToDomain converts a wire product; a missing currency falls back to fallback.
func (p Product) ToDomain(fallback currency.Unit) (domain.Product, error) {
	unit, err := parseCurrency(p.Currency, fallback)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:        p.ID,
		SellerID:  p.SellerID,
		Name:      p.Name,
		Brand:     p.Brand,
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		Price:     domain.Money{Amount: p.Price, Currency: unit},
		CreatedAt: p.CreatedAt,
	}, nil
}

func FromCartEntries(entries []domain.CartEntry) []CartEntry {
	out := make([]CartEntry, 0, len(entries))
	for _, entry := range entries {
		products := make([]Product, 0, len(entry.Products))
		for _, p := range entry.Products {
			products = append(products, FromProduct(p.Product))
		}
		out = append(out, CartEntry{ID: entry.ID, Products: products})
	}
	return out
}

// ToDomain converts a wire entry; counts are left at zero for the client to initialise.
func (e CartEntry) ToDomain(fallback currency.Unit) (domain.CartEntry, error) {
	entry := domain.CartEntry{ID: e.ID, Products: make([]domain.CartProduct, 0, len(e.Products))}

	for _, p := range e.Products {
		product, err := p.ToDomain(fallback)
		if err != nil {
			return domain.CartEntry{}, fmt.Errorf("product[%s]: %w", p.ID, err)
		}
		entry.Products = append(entry.Products, domain.CartProduct{Product: product})
	}

	return entry, nil
}

func FromOrder(o domain.Order) Order {
	return Order{
		ID:        o.ID,
		ProductID: o.ProductID,
		SellerID:  o.SellerID,
		UserID:    o.Buyer.UserID,
		Username:  o.Buyer.Username,
		Email:     o.Buyer.Email,
		Price:     o.Price.Amount,
		Currency:  o.Price.Currency.String(),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

func FromOrders(orders []domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

func (o Order) ToDomain(fallback currency.Unit) (domain.Order, error) {
	unit, err := parseCurrency(o.Currency, fallback)
	if err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		ID:        o.ID,
		ProductID: o.ProductID,
		SellerID:  o.SellerID,
		Buyer: domain.Identity{
			UserID:   o.UserID,
			Username: o.Username,
			Email:    o.Email,
		},
		Price:     domain.Money{Amount: o.Price, Currency: unit},
		Status:    domain.OrderStatus(o.Status),
		CreatedAt: o.CreatedAt,
	}, nil
}

func FromPayment(p domain.Payment) Payment {
	return Payment{
		ID:        p.ID,
		UserID:    p.UserID,
		Amount:    p.Amount.Amount,
		Currency:  p.Amount.Currency.String(),
		CreatedAt: p.CreatedAt,
	}
}

func parseCurrency(code string, fallback currency.Unit) (currency.Unit, error) {
	if code == "" {
		return fallback, nil
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return unit, nil
}
