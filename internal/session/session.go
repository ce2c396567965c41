// Package session owns one user's cart view: the cart state, the message shown to the user
// and navigation after checkout. A Session is not safe for concurrent use.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/client"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MsgFetchFailed  = "Can't get the cart items"
	MsgRemoved      = "Product removed from cart"
	MsgRemoveFailed = "Failed to remove from cart"
	MsgOrderPlaced  = "Order placed successfully"
	MsgOrderFailed  = "Failed to place order for some items"
)

// ErrNothingToRetry is returned by RetryFailed before any checkout or after one that fully succeeded.
var ErrNothingToRetry = errors.New("nothing to retry")

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}

// Publisher receives the product IDs of a freshly fetched cart, for views that track them.
type Publisher interface {
	PublishProducts(productIDs []uuid.UUID)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type PublisherFunc func(productIDs []uuid.UUID)

func (f PublisherFunc) PublishProducts(productIDs []uuid.UUID) { f(productIDs) }

type Session struct {
	userID    string
	carts     port.CartAPI
	orders    *checkout.Orchestrator
	navigator Navigator
	publisher Publisher
	logger    *zap.Logger

	state      cart.State
	message    string
	lastReport *checkout.Report
}

type Option func(*Session)

func WithNavigator(n Navigator) Option {
	return func(s *Session) {
		s.navigator = n
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Session) {
		s.publisher = p
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func New(userID string, carts port.CartAPI, orders *checkout.Orchestrator, opts ...Option) *Session {
	s := &Session{
		userID:    userID,
		carts:     carts,
		orders:    orders,
		navigator: NavigatorFunc(func(string) {}),
		publisher: PublisherFunc(func([]uuid.UUID) {}),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load fetches the cart. On failure the previous state is kept and the message explains why.
func (s *Session) Load(ctx context.Context) error {
	entries, err := s.carts.FetchCart(ctx, s.userID)
	if err != nil {
		s.message = failureMessage(err, MsgFetchFailed)
		return fmt.Errorf("carts.FetchCart: %w", err)
	}

	s.apply(cart.Loaded{Entries: entries})
	s.publisher.PublishProducts(cart.ProductIDs(s.state))

	return nil
}

// Remove deletes the product on the server first, then from the local cart.
func (s *Session) Remove(ctx context.Context, productID uuid.UUID) error {
	if err := s.carts.RemoveFromCart(ctx, s.userID, productID); err != nil {
		s.message = failureMessage(err, MsgRemoveFailed)
		return fmt.Errorf("carts.RemoveFromCart: %w", err)
	}

	s.apply(cart.Removed{ProductID: productID})
	s.message = MsgRemoved

	return nil
}

func (s *Session) Increment(productID uuid.UUID) {
	s.apply(cart.Incremented{ProductID: productID})
}

func (s *Session) Decrement(productID uuid.UUID) {
	s.apply(cart.Decremented{ProductID: productID})
}

// PlaceOrder checks out the whole cart and navigates to the address view when every item was ordered.
func (s *Session) PlaceOrder(ctx context.Context) (checkout.Report, error) {
	report, err := s.orders.Place(ctx, s.state.Entries)
	return s.afterCheckout("orders.Place", report, err)
}

// RetryFailed re-sends the items that failed in the last checkout.
func (s *Session) RetryFailed(ctx context.Context) (checkout.Report, error) {
	if s.lastReport == nil || s.lastReport.Succeeded() {
		return checkout.Report{}, ErrNothingToRetry
	}

	report, err := s.orders.Retry(ctx, *s.lastReport)
	return s.afterCheckout("orders.Retry", report, err)
}

func (s *Session) afterCheckout(op string, report checkout.Report, err error) (checkout.Report, error) {
	if err != nil {
		s.logger.Warn("checkout aborted", zap.Error(err))
		if errors.Is(err, checkout.ErrEmptyCart) {
			s.message = "Error: " + err.Error()
		}
		return checkout.Report{}, fmt.Errorf("%s: %w", op, err)
	}

	s.lastReport = &report

	switch {
	case report.Succeeded():
		s.message = MsgOrderPlaced
		s.navigator.Navigate(AddressPath(s.Total()))
	case report.FirstError() != nil:
		s.logger.Error("checkout failed", zap.Error(report.FirstError()))
		s.message = "Error: " + client.Message(report.FirstError())
	default:
		s.message = MsgOrderFailed
	}

	return report, nil
}

func (s *Session) apply(action cart.Action) {
	s.state = cart.Reduce(s.state, action)
}

// Total is recomputed from the cart on every call.
func (s *Session) Total() decimal.Decimal {
	return cart.TotalPrice(s.state)
}

func (s *Session) Entries() []domain.CartEntry {
	return s.state.Entries
}

func (s *Session) State() cart.State {
	return s.state
}

func (s *Session) Message() string {
	return s.message
}

// AddressPath is the view that collects the delivery address for an order of the given total.
func AddressPath(total decimal.Decimal) string {
	return "/order/address/" + total.String()
}

// failureMessage turns a request error into what the user sees. A response that was neither
// the expected one nor an HTTP error gets the fallback.
func failureMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusBadRequest {
		return fallback
	}
	return "Error: " + client.Message(err)
}
