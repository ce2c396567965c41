package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nikolayk812/storefront/internal/api"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PlaceOrder handles POST /api/order/placeorder/{productId}
// body: { "userId": "...", "username": "...", "email": "..." }
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req api.PlaceOrderRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := required("userId", req.UserID); err != nil {
		h.fail(w, r, err)
		return
	}

	order, err := h.Orders.PlaceOrder(r.Context(), domain.OrderRequest{
		ProductID: productID,
		Identity: domain.Identity{
			UserID:   req.UserID,
			Username: req.Username,
			Email:    req.Email,
		},
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Logger.Info("order placed",
		zap.Stringer("order_id", order.ID),
		zap.Stringer("product_id", productID),
		zap.String("user_id", req.UserID),
	)

	writeJSON(w, http.StatusCreated, api.FromOrder(order))
}

// CancelOrder handles DELETE /api/order/cancelorder/{orderId}
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	order, err := h.Orders.CancelOrder(r.Context(), orderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.FromOrder(order))
}

// ConfirmOrder handles POST /api/order/confirmorder/{orderId}
func (h *Handler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	order, err := h.Orders.ConfirmOrder(r.Context(), orderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.FromOrder(order))
}

// Payment handles POST /api/order/payment/{totalPrice}
// body: { "userId": "..." }
func (h *Handler) Payment(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(mux.Vars(r)["totalPrice"])
	if err != nil || amount.IsNegative() {
		h.fail(w, r, fmt.Errorf("%w: totalPrice must be a non-negative number", service.ErrInvalidInput))
		return
	}

	var req api.PaymentRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := required("userId", req.UserID); err != nil {
		h.fail(w, r, err)
		return
	}

	payment, err := h.Payments.CreatePayment(r.Context(), domain.Payment{
		UserID: req.UserID,
		Amount: domain.Money{Amount: amount, Currency: h.Currency},
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.FromPayment(payment))
}

// OrdersForSeller handles POST /api/order/orders/{userId}, listing orders of the seller's products.
func (h *Handler) OrdersForSeller(w http.ResponseWriter, r *http.Request) {
	sellerID := mux.Vars(r)["userId"]

	orders, err := h.Orders.ListOrdersBySeller(r.Context(), sellerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.FromOrders(orders))
}
