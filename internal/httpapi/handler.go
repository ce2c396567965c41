package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/service"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Deps struct {
	Carts    port.CartRepository
	Products port.ProductRepository
	Orders   port.OrderRepository
	Payments port.PaymentRepository
	Users    *service.UserService
	Issuer   *auth.Issuer
	Revoker  port.TokenRevoker
	Currency currency.Unit
	Logger   *zap.Logger
}

// Handler is the HTTP layer of the storefront API.
type Handler struct {
	Deps
}

func NewHandler(deps Deps) *Handler {
	return &Handler{Deps: deps}
}

// NewRouter wires every storefront route under /api.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)
	h.RegisterRoutes(r.PathPrefix("/api").Subrouter())
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	return r
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	authenticated := auth.Authenticate(h.Issuer, h.Revoker, h.Logger)

	// Users and carts
	users := r.PathPrefix("/user").Subrouter()
	users.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	users.HandleFunc("/verify", h.Verify).Methods(http.MethodPost)
	users.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	users.Handle("/logout", authenticated(http.HandlerFunc(h.Logout))).Methods(http.MethodGet)
	users.HandleFunc("/cartitems/{userId}", h.CartItems).Methods(http.MethodGet)
	users.HandleFunc("/addcart/{productId}", h.AddToCart).Methods(http.MethodPost)
	users.HandleFunc("/deletecart/{productId}", h.RemoveFromCart).Methods(http.MethodPost)

	// Orders
	orders := r.PathPrefix("/order").Subrouter()
	orders.HandleFunc("/placeorder/{productId}", h.PlaceOrder).Methods(http.MethodPost)
	orders.HandleFunc("/cancelorder/{orderId}", h.CancelOrder).Methods(http.MethodDelete)
	orders.HandleFunc("/confirmorder/{orderId}", h.ConfirmOrder).Methods(http.MethodPost)
	orders.HandleFunc("/payment/{totalPrice}", h.Payment).Methods(http.MethodPost)
	orders.HandleFunc("/orders/{userId}", h.OrdersForSeller).Methods(http.MethodPost)

	// Products
	products := r.PathPrefix("/product").Subrouter()
	products.Handle("", authenticated(http.HandlerFunc(h.CreateProduct))).Methods(http.MethodPost)
	products.HandleFunc("", h.ListProducts).Methods(http.MethodGet)
	products.HandleFunc("/{productId}", h.GetProduct).Methods(http.MethodGet)
	products.Handle("/{productId}", authenticated(http.HandlerFunc(h.DeleteProduct))).Methods(http.MethodDelete)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		h.Logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
