// Package cart holds the client-side cart state. State changes only through Reduce,
// and derived values such as the total are always recomputed by selectors.
package cart

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type State struct {
	Entries []domain.CartEntry
}

// Action is one of Loaded, Removed, Incremented, Decremented.
type Action interface {
	isAction()
}

// Loaded replaces the cart with freshly fetched entries; every product starts with count 1.
type Loaded struct {
	Entries []domain.CartEntry
}

// Removed drops the product from every entry; entries left without products are dropped.
type Removed struct {
	ProductID uuid.UUID
}

// Incremented adds one to the product's count in every entry holding it.
type Incremented struct {
	ProductID uuid.UUID
}

// Decremented subtracts one from the product's count, never going below 1.
type Decremented struct {
	ProductID uuid.UUID
}

func (Loaded) isAction()      {}
func (Removed) isAction()     {}
func (Incremented) isAction() {}
func (Decremented) isAction() {}

// Reduce returns the state after applying the action. The input state is never modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Loaded:
		return State{Entries: mapProducts(a.Entries, func(p domain.CartProduct) domain.CartProduct {
			p.Count = 1
			return p
		})}

	case Removed:
		entries := make([]domain.CartEntry, 0, len(s.Entries))
		for _, entry := range s.Entries {
			products := make([]domain.CartProduct, 0, len(entry.Products))
			for _, p := range entry.Products {
				if p.ID != a.ProductID {
					products = append(products, p)
				}
			}
			if len(products) > 0 {
				entries = append(entries, domain.CartEntry{ID: entry.ID, Products: products})
			}
		}
		return State{Entries: entries}

	case Incremented:
		return State{Entries: mapProducts(s.Entries, func(p domain.CartProduct) domain.CartProduct {
			if p.ID == a.ProductID {
				p.Count++
			}
			return p
		})}

	case Decremented:
		return State{Entries: mapProducts(s.Entries, func(p domain.CartProduct) domain.CartProduct {
			if p.ID == a.ProductID && p.Count > 1 {
				p.Count--
			}
			return p
		})}

	default:
		return s
	}
}

func mapProducts(entries []domain.CartEntry, fn func(domain.CartProduct) domain.CartProduct) []domain.CartEntry {
	out := make([]domain.CartEntry, 0, len(entries))
	for _, entry := range entries {
		products := make([]domain.CartProduct, 0, len(entry.Products))
		for _, p := range entry.Products {
			products = append(products, fn(p))
		}
		out = append(out, domain.CartEntry{ID: entry.ID, Products: products})
	}
	return out
}

// TotalPrice is the sum of price * count over every product of the cart.
func TotalPrice(s State) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range s.Entries {
		for _, p := range entry.Products {
			total = total.Add(p.Price.Mul(p.Count).Amount)
		}
	}
	return total
}

// Products flattens the cart into its products, in cart order.
func Products(s State) []domain.CartProduct {
	var out []domain.CartProduct
	for _, entry := range s.Entries {
		out = append(out, entry.Products...)
	}
	return out
}

func ProductIDs(s State) []uuid.UUID {
	products := Products(s)
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s State) IsEmpty() bool {
	for _, entry := range s.Entries {
		if len(entry.Products) > 0 {
			return false
		}
	}
	return true
}
