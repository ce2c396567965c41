package httpapi

import (
	"fmt"
	"net/http"

	"github.com/nikolayk812/storefront/internal/api"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"golang.org/x/text/currency"
)

// CreateProduct handles POST /api/product. The authenticated user becomes the seller.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req api.CreateProductRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := required("productName", req.Name); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Price.IsNegative() {
		h.fail(w, r, fmt.Errorf("%w: price must be >= 0", service.ErrInvalidInput))
		return
	}

	unit := h.Currency
	if req.Currency != "" {
		parsed, err := currency.ParseISO(req.Currency)
		if err != nil || parsed != h.Currency {
			h.fail(w, r, fmt.Errorf("%w: currency must be %s", service.ErrInvalidInput, h.Currency))
			return
		}
	}

	product, err := h.Products.CreateProduct(r.Context(), domain.Product{
		SellerID: claims.UserID,
		Name:     req.Name,
		Brand:    req.Brand,
		Category: req.Category,
		ImageURL: req.ImageURL,
		Price:    domain.Money{Amount: req.Price, Currency: unit},
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.FromProduct(product))
}

// ListProducts handles GET /api/product
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.ListProducts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.FromProducts(products))
}

// GetProduct handles GET /api/product/{productId}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	product, err := h.Products.GetProduct(r.Context(), productID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.FromProduct(product))
}

// DeleteProduct handles DELETE /api/product/{productId}; only the seller may delete.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "missing token")
		return
	}

	productID, err := pathUUID(r, "productId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	product, err := h.Products.GetProduct(r.Context(), productID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if product.SellerID != claims.UserID {
		writeErr(w, http.StatusForbidden, "only the seller can delete a product")
		return
	}

	if _, err := h.Products.DeleteProduct(r.Context(), productID); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.Message{Message: "Product deleted"})
}
