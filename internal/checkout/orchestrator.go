// Package checkout places one order per cart product and reports the outcome of each.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyCart = errors.New("cart is empty")

type Orchestrator struct {
	orders      port.OrderAPI
	identity    port.IdentityProvider
	logger      *zap.Logger
	compensate  bool
	rejectEmpty bool
}

type Option func(*Orchestrator)

// WithCompensation cancels the orders already created when a batch partially fails.
func WithCompensation() Option {
	return func(o *Orchestrator) {
		o.compensate = true
	}
}

// WithRejectEmptyCart makes Place fail with ErrEmptyCart instead of succeeding with no orders.
func WithRejectEmptyCart() Option {
	return func(o *Orchestrator) {
		o.rejectEmpty = true
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func New(orders port.OrderAPI, identity port.IdentityProvider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		orders:   orders,
		identity: identity,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Place orders every product of the cart concurrently and waits for all requests to settle.
// Nothing is sent when the identity cannot be resolved.
func (o *Orchestrator) Place(ctx context.Context, entries []domain.CartEntry) (Report, error) {
	identity, err := o.identity.Identity(ctx)
	if err != nil {
		o.logger.Warn("cannot place order", zap.Error(err))
		return Report{}, fmt.Errorf("identity.Identity: %w", err)
	}

	var productIDs []uuid.UUID
	for _, entry := range entries {
		for _, p := range entry.Products {
			productIDs = append(productIDs, p.ID)
		}
	}

	if len(productIDs) == 0 {
		if o.rejectEmpty {
			return Report{}, ErrEmptyCart
		}
		return Report{Identity: identity, Results: []ItemResult{}}, nil
	}

	report := Report{
		Identity: identity,
		Results:  o.dispatch(ctx, identity, productIDs),
	}

	o.settle(ctx, &report)

	return report, nil
}

// Retry re-sends the items of the report that did not succeed and merges their new results.
func (o *Orchestrator) Retry(ctx context.Context, report Report) (Report, error) {
	if report.Succeeded() {
		return report, nil
	}

	identity, err := o.identity.Identity(ctx)
	if err != nil {
		o.logger.Warn("cannot retry order", zap.Error(err))
		return report, fmt.Errorf("identity.Identity: %w", err)
	}

	var (
		indexes    []int
		productIDs []uuid.UUID
	)
	for i, res := range report.Results {
		if !res.Succeeded() {
			indexes = append(indexes, i)
			productIDs = append(productIDs, res.ProductID)
		}
	}

	retried := o.dispatch(ctx, identity, productIDs)

	merged := Report{
		Identity: identity,
		Results:  make([]ItemResult, len(report.Results)),
	}
	copy(merged.Results, report.Results)
	for j, i := range indexes {
		merged.Results[i] = retried[j]
	}

	o.settle(ctx, &merged)

	return merged, nil
}

func (o *Orchestrator) dispatch(ctx context.Context, identity domain.Identity, productIDs []uuid.UUID) []ItemResult {
	// in-flight orders are not abandoned when the caller goes away
	ctx = context.WithoutCancel(ctx)

	results := make([]ItemResult, len(productIDs))

	var g errgroup.Group
	for i, productID := range productIDs {
		g.Go(func() error {
			placed, err := o.orders.PlaceOrder(ctx, domain.OrderRequest{
				ProductID: productID,
				Identity:  identity,
			})
			results[i] = ItemResult{
				ProductID:  productID,
				StatusCode: placed.StatusCode,
				Order:      placed.Order,
				Err:        err,
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (o *Orchestrator) settle(ctx context.Context, report *Report) {
	if report.Succeeded() {
		o.logger.Info("order placed",
			zap.String("user_id", report.Identity.UserID),
			zap.Int("items", len(report.Results)),
		)
		return
	}

	for _, res := range report.Failed() {
		o.logger.Warn("order item failed",
			zap.Stringer("product_id", res.ProductID),
			zap.Int("status", res.StatusCode),
			zap.Error(res.Err),
		)
	}

	if o.compensate {
		o.cancelPlaced(ctx, report)
	}
}

func (o *Orchestrator) cancelPlaced(ctx context.Context, report *Report) {
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	for i := range report.Results {
		res := &report.Results[i]
		if !res.Succeeded() || res.Order.ID == uuid.Nil {
			continue
		}

		g.Go(func() error {
			if err := o.orders.CancelOrder(ctx, res.Order.ID); err != nil {
				o.logger.Error("compensation failed", zap.Stringer("order_id", res.Order.ID), zap.Error(err))
				res.CancelErr = err
				return nil
			}
			res.Cancelled = true
			return nil
		})
	}
	_ = g.Wait()
}
