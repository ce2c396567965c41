package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

// CookieName is the cookie the login handler sets; Authorization: Bearer takes precedence.
const CookieName = "token"

type claimsKey struct{}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(Claims)
	return claims, ok
}

// Authenticate rejects requests without a valid, unrevoked token.
func Authenticate(issuer *Issuer, revoker port.TokenRevoker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				unauthorized(w, "missing token")
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				logger.Debug("token rejected", zap.Error(err))
				unauthorized(w, "invalid token")
				return
			}

			revoked, err := revoker.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.Error("revoker.IsRevoked", zap.String("jti", claims.ID), zap.Error(err))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "cannot check token"})
				return
			}
			if revoked {
				unauthorized(w, "token revoked")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}

	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
