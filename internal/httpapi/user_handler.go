package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nikolayk812/storefront/internal/api"
	"github.com/nikolayk812/storefront/internal/auth"
	"go.uber.org/zap"
)

// Signup handles POST /api/user/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req api.SignupRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.SignupResponse{
		UserID:  user.ID,
		Message: "Verification code sent",
	})
}

// Verify handles POST /api/user/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req api.VerifyRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Users.Verify(r.Context(), req.Email, req.Code); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.Message{Message: "User verified"})
}

// Login handles POST /api/user/login. The token is returned in the body and as a cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	token, claims, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  claims.ExpiresAt.Time,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, api.LoginResponse{
		Token:    token,
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	})
}

// Logout handles GET /api/user/logout, behind Authenticate.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "missing token")
		return
	}

	if err := h.Users.Logout(r.Context(), claims); err != nil {
		h.fail(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, api.Message{Message: "Logged out"})
}

// CartItems handles GET /api/user/cartitems/{userId}
func (h *Handler) CartItems(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	cart, err := h.Carts.GetCart(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.FromCartEntries(cart.Entries()))
}

// AddToCart handles POST /api/user/addcart/{productId}
// body: { "userId": "..." }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req api.CartRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := required("userId", req.UserID); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Carts.AddItem(r.Context(), req.UserID, productID); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.Message{Message: "Product added to cart"})
}

// RemoveFromCart handles POST /api/user/deletecart/{productId}
// body: { "userId": "..." }
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req api.CartRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := required("userId", req.UserID); err != nil {
		h.fail(w, r, err)
		return
	}

	deleted, err := h.Carts.DeleteItem(r.Context(), req.UserID, productID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !deleted {
		writeErr(w, http.StatusNotFound, fmt.Sprintf("product[%s] is not in the cart", productID))
		return
	}

	h.Logger.Debug("removed from cart", zap.String("user_id", req.UserID), zap.Stringer("product_id", productID))

	writeJSON(w, http.StatusOK, api.Message{Message: "Product removed from cart"})
}
