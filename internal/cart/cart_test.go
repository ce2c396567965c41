package cart_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

var currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

func product(sellerID, price string) domain.CartProduct {
	return domain.CartProduct{
		Product: domain.Product{
			ID:       uuid.New(),
			SellerID: sellerID,
			Price:    domain.Money{Amount: decimal.RequireFromString(price), Currency: currency.INR},
		},
	}
}

func loaded(entries ...domain.CartEntry) cart.State {
	return cart.Reduce(cart.State{}, cart.Loaded{Entries: entries})
}

func TestReduce_Loaded(t *testing.T) {
	p1 := product("s1", "100")
	p1.Count = 7
	p2 := product("s2", "5.25")

	in := []domain.CartEntry{
		{ID: "s1", Products: []domain.CartProduct{p1}},
		{ID: "s2", Products: []domain.CartProduct{p2}},
	}

	state := cart.Reduce(cart.State{}, cart.Loaded{Entries: in})

	p1.Count, p2.Count = 1, 1
	want := cart.State{Entries: []domain.CartEntry{
		{ID: "s1", Products: []domain.CartProduct{p1}},
		{ID: "s2", Products: []domain.CartProduct{p2}},
	}}
	if diff := cmp.Diff(want, state, currencyComparer); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 7, in[0].Products[0].Count, "input must not be modified")
	assert.True(t, decimal.RequireFromString("105.25").Equal(cart.TotalPrice(state)))
}

func TestReduce_DoesNotModifyInput(t *testing.T) {
	p1 := product("s1", "10")
	before := loaded(domain.CartEntry{ID: "s1", Products: []domain.CartProduct{p1}})

	after := cart.Reduce(before, cart.Incremented{ProductID: p1.ID})
	assert.Equal(t, 1, before.Entries[0].Products[0].Count)
	assert.Equal(t, 2, after.Entries[0].Products[0].Count)

	removed := cart.Reduce(after, cart.Removed{ProductID: p1.ID})
	assert.Empty(t, removed.Entries)
	require.Len(t, after.Entries, 1)
	require.Len(t, after.Entries[0].Products, 1)
}

func TestReduce_IncrementEveryOccurrence(t *testing.T) {
	p := product("s1", "50")
	state := loaded(
		domain.CartEntry{ID: "s1", Products: []domain.CartProduct{p}},
		domain.CartEntry{ID: "s2", Products: []domain.CartProduct{p}},
	)

	state = cart.Reduce(state, cart.Incremented{ProductID: p.ID})

	for _, got := range cart.Products(state) {
		assert.Equal(t, 2, got.Count)
	}
	assert.True(t, decimal.NewFromInt(200).Equal(cart.TotalPrice(state)))
}

func TestReduce_DecrementFloor(t *testing.T) {
	p := product("s1", "50")
	state := loaded(domain.CartEntry{ID: "s1", Products: []domain.CartProduct{p}})

	for range 3 {
		state = cart.Reduce(state, cart.Decremented{ProductID: p.ID})
	}

	assert.Equal(t, 1, state.Entries[0].Products[0].Count)
	assert.True(t, decimal.NewFromInt(50).Equal(cart.TotalPrice(state)))
}

func TestReduce_Removed(t *testing.T) {
	p1 := product("s1", "10")
	p2 := product("s1", "20")
	p3 := product("s2", "30")

	state := loaded(
		domain.CartEntry{ID: "s1", Products: []domain.CartProduct{p1, p2}},
		domain.CartEntry{ID: "s2", Products: []domain.CartProduct{p3}},
	)

	state = cart.Reduce(state, cart.Removed{ProductID: p1.ID})
	require.Len(t, state.Entries, 2)
	require.Len(t, state.Entries[0].Products, 1)
	assert.Equal(t, p2.ID, state.Entries[0].Products[0].ID)
	assert.True(t, decimal.NewFromInt(50).Equal(cart.TotalPrice(state)))

	state = cart.Reduce(state, cart.Removed{ProductID: p3.ID})
	require.Len(t, state.Entries, 1)
	assert.Equal(t, "s1", state.Entries[0].ID)
	assert.True(t, decimal.NewFromInt(20).Equal(cart.TotalPrice(state)))

	unchanged := cart.Reduce(state, cart.Removed{ProductID: uuid.New()})
	if diff := cmp.Diff(state, unchanged, currencyComparer); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectors(t *testing.T) {
	p1 := product("s1", "1.10")
	p2 := product("s2", "2.20")
	p3 := product("s1", "3.30")

	state := loaded(
		domain.CartEntry{ID: "s1", Products: []domain.CartProduct{p1, p3}},
		domain.CartEntry{ID: "s2", Products: []domain.CartProduct{p2}},
	)

	assert.Equal(t, []uuid.UUID{p1.ID, p3.ID, p2.ID}, cart.ProductIDs(state))
	assert.Len(t, cart.Products(state), 3)
	assert.False(t, state.IsEmpty())
	assert.True(t, decimal.RequireFromString("6.6").Equal(cart.TotalPrice(state)))
}

func TestSelectors_Empty(t *testing.T) {
	var state cart.State

	assert.True(t, state.IsEmpty())
	assert.Empty(t, cart.ProductIDs(state))
	assert.True(t, cart.TotalPrice(state).IsZero())
	assert.Equal(t, "0", cart.TotalPrice(state).String())
}
