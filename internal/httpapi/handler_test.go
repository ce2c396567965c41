package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/api"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/revocation"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type handlerSuite struct {
	suite.Suite

	server   *httptest.Server
	carts    *fakeCarts
	products *fakeProducts
	orders   *fakeOrders
	users    *fakeUsers
	codes    *codeSink
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.products = &fakeProducts{products: map[uuid.UUID]domain.Product{}}
	s.carts = &fakeCarts{products: s.products, items: map[string][]domain.CartItem{}}
	s.orders = &fakeOrders{
		products: s.products,
		carts:    s.carts,
		orders:   map[uuid.UUID]domain.Order{},
		failFor:  map[uuid.UUID]error{},
	}
	s.users = &fakeUsers{byEmail: map[string]domain.User{}}
	s.codes = &codeSink{codes: map[string]string{}}

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	s.Require().NoError(err)

	revoker := revocation.NewMemoryStore()
	logger := zap.NewNop()

	h := httpapi.NewHandler(httpapi.Deps{
		Carts:    s.carts,
		Products: s.products,
		Orders:   s.orders,
		Payments: fakePayments{},
		Users:    service.NewUserService(s.users, revoker, revoker, issuer, s.codes, logger),
		Issuer:   issuer,
		Revoker:  revoker,
		Currency: currency.INR,
		Logger:   logger,
	})

	s.server = httptest.NewServer(httpapi.NewRouter(h))
}

func (s *handlerSuite) TearDownTest() {
	s.server.Close()
}

func (s *handlerSuite) TestHealth() {
	resp := s.do(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (s *handlerSuite) TestVerify_TooManyAttempts() {
	resp := s.do(http.MethodPost, "/api/user/signup", api.SignupRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
	}, "")
	s.expectMessage(resp, http.StatusCreated)

	for range 5 {
		resp = s.do(http.MethodPost, "/api/user/verify", api.VerifyRequest{Email: "bob@example.com", Code: "000000x"}, "")
		s.expectMessage(resp, http.StatusBadRequest)
	}

	resp = s.do(http.MethodPost, "/api/user/verify", api.VerifyRequest{
		Email: "bob@example.com",
		Code:  s.codes.code("bob@example.com"),
	}, "")
	msg := s.expectMessage(resp, http.StatusTooManyRequests)
	assert.Equal(s.T(), "too many verification attempts", msg)
}

func (s *handlerSuite) TestSignupVerifyLogin() {
	t := s.T()

	var signup api.SignupResponse
	resp := s.do(http.MethodPost, "/api/user/signup", api.SignupRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "password123",
	}, "")
	s.decode(resp, http.StatusCreated, &signup)
	assert.NotEmpty(t, signup.UserID)

	// unverified users cannot log in
	resp = s.do(http.MethodPost, "/api/user/login", api.LoginRequest{Email: "alice@example.com", Password: "password123"}, "")
	s.expectMessage(resp, http.StatusForbidden)

	resp = s.do(http.MethodPost, "/api/user/verify", api.VerifyRequest{Email: "alice@example.com", Code: "000000x"}, "")
	s.expectMessage(resp, http.StatusBadRequest)

	resp = s.do(http.MethodPost, "/api/user/verify", api.VerifyRequest{
		Email: "alice@example.com",
		Code:  s.codes.code("alice@example.com"),
	}, "")
	s.expectMessage(resp, http.StatusOK)

	resp = s.do(http.MethodPost, "/api/user/login", api.LoginRequest{Email: "alice@example.com", Password: "wrong-password"}, "")
	s.expectMessage(resp, http.StatusUnauthorized)

	var login api.LoginResponse
	resp = s.do(http.MethodPost, "/api/user/login", api.LoginRequest{Email: "alice@example.com", Password: "password123"}, "")
	cookies := resp.Cookies()
	s.decode(resp, http.StatusOK, &login)

	assert.NotEmpty(t, login.Token)
	assert.Equal(t, signup.UserID, login.UserID)
	assert.Equal(t, "alice", login.Username)
	assert.Equal(t, "alice@example.com", login.Email)

	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Equal(t, login.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func (s *handlerSuite) TestSignup_Duplicate() {
	req := api.SignupRequest{Username: "bob", Email: "bob@example.com", Password: "password123"}

	resp := s.do(http.MethodPost, "/api/user/signup", req, "")
	s.expectMessage(resp, http.StatusCreated)

	resp = s.do(http.MethodPost, "/api/user/signup", req, "")
	s.expectMessage(resp, http.StatusConflict)
}

func (s *handlerSuite) TestLogout_RevokesToken() {
	login := s.login("carol@example.com")

	resp := s.do(http.MethodGet, "/api/user/logout", nil, login.Token)
	s.expectMessage(resp, http.StatusOK)

	resp = s.do(http.MethodGet, "/api/user/logout", nil, login.Token)
	msg := s.expectMessage(resp, http.StatusUnauthorized)
	s.Equal("token revoked", msg)
}

func (s *handlerSuite) TestLogout_MissingToken() {
	resp := s.do(http.MethodGet, "/api/user/logout", nil, "")
	s.expectMessage(resp, http.StatusUnauthorized)
}

func (s *handlerSuite) TestCartFlow() {
	t := s.T()
	seller := s.login("seller@example.com")

	p1 := s.createProduct(seller.Token, "Phone", "499.99")
	p2 := s.createProduct(seller.Token, "Case", "19.50")

	const buyer = "buyer-1"
	for _, id := range []uuid.UUID{p1.ID, p2.ID, p1.ID} {
		resp := s.do(http.MethodPost, "/api/user/addcart/"+id.String(), api.CartRequest{UserID: buyer}, "")
		msg := s.expectMessage(resp, http.StatusOK)
		assert.Equal(t, "Product added to cart", msg)
	}

	entries := s.cartItems(buyer)
	require.Len(t, entries, 1)
	assert.Equal(t, seller.UserID, entries[0].ID)
	require.Len(t, entries[0].Products, 2)
	assert.Equal(t, p1.ID, entries[0].Products[0].ID)
	assert.True(t, decimal.RequireFromString("499.99").Equal(entries[0].Products[0].Price))
	assert.Equal(t, "INR", entries[0].Products[0].Currency)

	resp := s.do(http.MethodPost, "/api/user/deletecart/"+p1.ID.String(), api.CartRequest{UserID: buyer}, "")
	msg := s.expectMessage(resp, http.StatusOK)
	assert.Equal(t, "Product removed from cart", msg)

	resp = s.do(http.MethodPost, "/api/user/deletecart/"+p1.ID.String(), api.CartRequest{UserID: buyer}, "")
	s.expectMessage(resp, http.StatusNotFound)

	entries = s.cartItems(buyer)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Products, 1)
	assert.Equal(t, p2.ID, entries[0].Products[0].ID)
}

func (s *handlerSuite) TestCartItems_EmptyIsArray() {
	resp := s.do(http.MethodGet, "/api/user/cartitems/nobody", nil, "")
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var raw json.RawMessage
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&raw))
	s.JSONEq(`[]`, string(raw))
}

func (s *handlerSuite) TestAddToCart_Validation() {
	resp := s.do(http.MethodPost, "/api/user/addcart/not-a-uuid", api.CartRequest{UserID: "u"}, "")
	s.expectMessage(resp, http.StatusBadRequest)

	resp = s.do(http.MethodPost, "/api/user/addcart/"+uuid.NewString(), api.CartRequest{}, "")
	s.expectMessage(resp, http.StatusBadRequest)

	resp = s.do(http.MethodPost, "/api/user/addcart/"+uuid.NewString(), api.CartRequest{UserID: "u"}, "")
	s.expectMessage(resp, http.StatusNotFound)
}

func (s *handlerSuite) TestPlaceOrder() {
	t := s.T()
	seller := s.login("shop@example.com")
	product := s.createProduct(seller.Token, "Lamp", "250")

	const buyer = "buyer-2"
	resp := s.do(http.MethodPost, "/api/user/addcart/"+product.ID.String(), api.CartRequest{UserID: buyer}, "")
	s.expectMessage(resp, http.StatusOK)

	var order api.Order
	resp = s.do(http.MethodPost, "/api/order/placeorder/"+product.ID.String(), api.PlaceOrderRequest{
		UserID:   buyer,
		Username: "dave",
		Email:    "dave@example.com",
	}, "")
	s.decode(resp, http.StatusCreated, &order)

	assert.Equal(t, product.ID, order.ProductID)
	assert.Equal(t, seller.UserID, order.SellerID)
	assert.Equal(t, buyer, order.UserID)
	assert.Equal(t, "dave", order.Username)
	assert.Equal(t, string(domain.OrderStatusPlaced), order.Status)
	assert.True(t, decimal.NewFromInt(250).Equal(order.Price))

	assert.Empty(t, s.cartItems(buyer))

	var orders []api.Order
	resp = s.do(http.MethodPost, "/api/order/orders/"+seller.UserID, nil, "")
	s.decode(resp, http.StatusOK, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	var confirmed api.Order
	resp = s.do(http.MethodPost, "/api/order/confirmorder/"+order.ID.String(), nil, "")
	s.decode(resp, http.StatusOK, &confirmed)
	assert.Equal(t, string(domain.OrderStatusConfirmed), confirmed.Status)

	resp = s.do(http.MethodDelete, "/api/order/cancelorder/"+order.ID.String(), nil, "")
	s.expectMessage(resp, http.StatusConflict)

	resp = s.do(http.MethodDelete, "/api/order/cancelorder/"+uuid.NewString(), nil, "")
	s.expectMessage(resp, http.StatusNotFound)
}

func (s *handlerSuite) TestPlaceOrder_UnknownProduct() {
	resp := s.do(http.MethodPost, "/api/order/placeorder/"+uuid.NewString(), api.PlaceOrderRequest{UserID: "u"}, "")
	s.expectMessage(resp, http.StatusNotFound)
}

func (s *handlerSuite) TestPlaceOrder_InternalError() {
	productID := uuid.New()
	s.orders.failFor[productID] = assert.AnError

	resp := s.do(http.MethodPost, "/api/order/placeorder/"+productID.String(), api.PlaceOrderRequest{UserID: "u"}, "")
	msg := s.expectMessage(resp, http.StatusInternalServerError)
	s.Equal("internal error", msg)
}

func (s *handlerSuite) TestPayment() {
	t := s.T()

	var payment api.Payment
	resp := s.do(http.MethodPost, "/api/order/payment/1019.49", api.PaymentRequest{UserID: "u1"}, "")
	s.decode(resp, http.StatusCreated, &payment)

	assert.NotEqual(t, uuid.Nil, payment.ID)
	assert.Equal(t, "u1", payment.UserID)
	assert.Equal(t, "INR", payment.Currency)
	assert.True(t, decimal.RequireFromString("1019.49").Equal(payment.Amount))

	resp = s.do(http.MethodPost, "/api/order/payment/-5", api.PaymentRequest{UserID: "u1"}, "")
	s.expectMessage(resp, http.StatusBadRequest)

	resp = s.do(http.MethodPost, "/api/order/payment/abc", api.PaymentRequest{UserID: "u1"}, "")
	s.expectMessage(resp, http.StatusBadRequest)
}

func (s *handlerSuite) TestProducts() {
	t := s.T()
	seller := s.login("maker@example.com")
	other := s.login("other@example.com")

	resp := s.do(http.MethodPost, "/api/product", api.CreateProductRequest{Name: "Mug", Price: decimal.NewFromInt(5)}, "")
	s.expectMessage(resp, http.StatusUnauthorized)

	resp = s.do(http.MethodPost, "/api/product", api.CreateProductRequest{
		Name:     "Mug",
		Price:    decimal.NewFromInt(5),
		Currency: "USD",
	}, seller.Token)
	s.expectMessage(resp, http.StatusBadRequest)

	mug := s.createProduct(seller.Token, "Mug", "5")
	assert.Equal(t, seller.UserID, mug.SellerID)

	var list []api.Product
	resp = s.do(http.MethodGet, "/api/product", nil, "")
	s.decode(resp, http.StatusOK, &list)
	require.Len(t, list, 1)
	assert.Equal(t, mug.ID, list[0].ID)

	var got api.Product
	resp = s.do(http.MethodGet, "/api/product/"+mug.ID.String(), nil, "")
	s.decode(resp, http.StatusOK, &got)
	assert.Equal(t, "Mug", got.Name)

	resp = s.do(http.MethodDelete, "/api/product/"+mug.ID.String(), nil, other.Token)
	s.expectMessage(resp, http.StatusForbidden)

	resp = s.do(http.MethodDelete, "/api/product/"+mug.ID.String(), nil, seller.Token)
	s.expectMessage(resp, http.StatusOK)

	resp = s.do(http.MethodGet, "/api/product/"+mug.ID.String(), nil, "")
	s.expectMessage(resp, http.StatusNotFound)
}

func (s *handlerSuite) TestMethodNotAllowed() {
	resp := s.do(http.MethodGet, "/api/order/placeorder/"+uuid.NewString(), nil, "")
	defer resp.Body.Close()
	s.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
}

// ---- helpers ----

func (s *handlerSuite) do(method, path string, body any, token string) *http.Response {
	t := s.T()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)

	return resp
}

func (s *handlerSuite) decode(resp *http.Response, expectedStatus int, v any) {
	t := s.T()
	defer resp.Body.Close()

	require.Equal(t, expectedStatus, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (s *handlerSuite) expectMessage(resp *http.Response, expectedStatus int) string {
	var msg api.Message
	s.decode(resp, expectedStatus, &msg)
	return msg.Message
}

func (s *handlerSuite) login(email string) api.LoginResponse {
	resp := s.do(http.MethodPost, "/api/user/signup", api.SignupRequest{
		Username: "user",
		Email:    email,
		Password: "password123",
	}, "")
	s.expectMessage(resp, http.StatusCreated)

	resp = s.do(http.MethodPost, "/api/user/verify", api.VerifyRequest{Email: email, Code: s.codes.code(email)}, "")
	s.expectMessage(resp, http.StatusOK)

	var login api.LoginResponse
	resp = s.do(http.MethodPost, "/api/user/login", api.LoginRequest{Email: email, Password: "password123"}, "")
	s.decode(resp, http.StatusOK, &login)

	return login
}

func (s *handlerSuite) createProduct(token, name, price string) api.Product {
	var product api.Product
	resp := s.do(http.MethodPost, "/api/product", api.CreateProductRequest{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Brand: "Acme",
	}, token)
	s.decode(resp, http.StatusCreated, &product)
	return product
}

func (s *handlerSuite) cartItems(userID string) []api.CartEntry {
	var entries []api.CartEntry
	resp := s.do(http.MethodGet, "/api/user/cartitems/"+userID, nil, "")
	s.decode(resp, http.StatusOK, &entries)
	return entries
}
