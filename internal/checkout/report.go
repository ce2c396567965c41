package checkout

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

// ItemResult is the outcome of ordering one cart product.
type ItemResult struct {
	ProductID uuid.UUID
	// StatusCode is zero when the request got no response.
	StatusCode int
	Order      domain.Order
	Err        error
	// Cancelled is set when the order was created and then cancelled by compensation.
	Cancelled bool
	CancelErr error
}

// Succeeded reports whether the order was created and still stands.
func (r ItemResult) Succeeded() bool {
	return r.Err == nil && r.StatusCode == http.StatusCreated && !r.Cancelled
}

// Report lists one result per cart product, in cart order.
type Report struct {
	Identity domain.Identity
	Results  []ItemResult
}

// Succeeded is true when every item succeeded, and for an empty cart.
func (r Report) Succeeded() bool {
	for _, res := range r.Results {
		if !res.Succeeded() {
			return false
		}
	}
	return true
}

func (r Report) Failed() []ItemResult {
	var failed []ItemResult
	for _, res := range r.Results {
		if !res.Succeeded() {
			failed = append(failed, res)
		}
	}
	return failed
}

// FirstError returns the first request error in cart order, or nil when every request got
// a success response, even if some of those responses were not 201.
func (r Report) FirstError() error {
	for _, res := range r.Results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

func (r Report) Orders() []domain.Order {
	var orders []domain.Order
	for _, res := range r.Results {
		if res.Succeeded() {
			orders = append(orders, res.Order)
		}
	}
	return orders
}
