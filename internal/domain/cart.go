package domain

import "time"

// Cart is the server-side view of a user's cart: one item per product.
type Cart struct {
	OwnerID string
	Items   []CartItem
}

type CartItem struct {
	Product Product

	CreatedAt time.Time
}

// CartEntry groups cart products under one entry. The server groups by seller,
// so ID is the seller ID.
type CartEntry struct {
	ID       string
	Products []CartProduct
}

// CartProduct is a product line of a cart entry. Count is a client-only annotation,
// the server never persists it.
type CartProduct struct {
	Product
	Count int
}

// Entries groups cart items by seller, keeping the order in which sellers first appear.
func (c Cart) Entries() []CartEntry {
	entries := []CartEntry{}
	index := make(map[string]int)

	for _, item := range c.Items {
		i, ok := index[item.Product.SellerID]
		if !ok {
			i = len(entries)
			index[item.Product.SellerID] = i
			entries = append(entries, CartEntry{ID: item.Product.SellerID})
		}
		entries[i].Products = append(entries[i].Products, CartProduct{Product: item.Product})
	}

	return entries
}
