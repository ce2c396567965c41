package httpapi_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type fakeCarts struct {
	mu       sync.Mutex
	products *fakeProducts
	items    map[string][]domain.CartItem
}

func (f *fakeCarts) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.Cart{OwnerID: ownerID, Items: slices.Clone(f.items[ownerID])}, nil
}

func (f *fakeCarts) AddItem(ctx context.Context, ownerID string, productID uuid.UUID) error {
	product, err := f.products.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items[ownerID] {
		if item.Product.ID == productID {
			return nil
		}
	}
	f.items[ownerID] = append(f.items[ownerID], domain.CartItem{Product: product, CreatedAt: time.Now()})
	return nil
}

func (f *fakeCarts) DeleteItem(_ context.Context, ownerID string, productID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.items[ownerID]
	for i, item := range items {
		if item.Product.ID == productID {
			f.items[ownerID] = slices.Delete(items, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

type fakeProducts struct {
	mu       sync.Mutex
	products map[uuid.UUID]domain.Product
	order    []uuid.UUID
}

func (f *fakeProducts) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now().UTC()
	f.products[product.ID] = product
	f.order = append(f.order, product.ID)
	return product, nil
}

func (f *fakeProducts) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return product, nil
}

func (f *fakeProducts) ListProducts(_ context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Product{}
	for _, id := range f.order {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) DeleteProduct(_ context.Context, productID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[productID]; !ok {
		return false, nil
	}
	delete(f.products, productID)
	return true, nil
}

type fakeOrders struct {
	mu       sync.Mutex
	products *fakeProducts
	carts    *fakeCarts
	orders   map[uuid.UUID]domain.Order
	failFor  map[uuid.UUID]error
}

func (f *fakeOrders) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	if err, ok := f.failFor[req.ProductID]; ok {
		return domain.Order{}, err
	}

	product, err := f.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:        uuid.New(),
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Buyer:     req.Identity,
		Price:     product.Price,
		Status:    domain.OrderStatusPlaced,
		CreatedAt: time.Now().UTC(),
	}

	f.mu.Lock()
	f.orders[order.ID] = order
	f.mu.Unlock()

	if _, err := f.carts.DeleteItem(ctx, req.UserID, req.ProductID); err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrders) transition(orderID uuid.UUID, to domain.OrderStatus) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	if order.Status != domain.OrderStatusPlaced {
		return domain.Order{}, domain.ErrConflict
	}
	order.Status = to
	f.orders[orderID] = order
	return order, nil
}

func (f *fakeOrders) CancelOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	return f.transition(orderID, domain.OrderStatusCancelled)
}

func (f *fakeOrders) ConfirmOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	return f.transition(orderID, domain.OrderStatusConfirmed)
}

func (f *fakeOrders) ListOrdersBySeller(_ context.Context, sellerID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Order{}
	for _, o := range f.orders {
		if o.SellerID == sellerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakePayments struct{}

func (fakePayments) CreatePayment(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	payment.ID = uuid.New()
	payment.CreatedAt = time.Now().UTC()
	return payment, nil
}

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
}

func (f *fakeUsers) CreateUser(_ context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.ErrConflict
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) VerifyUser(_ context.Context, email, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	if !ok || user.Verified || user.VerificationCode != code {
		return false, nil
	}
	user.Verified = true
	f.byEmail[email] = user
	return true, nil
}

type codeSink struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *codeSink) SendVerificationCode(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code
	return nil
}

func (s *codeSink) code(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[email]
}
