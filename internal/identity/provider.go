// Package identity resolves the current user from a stored credential token.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

var (
	ErrNoCredential = errors.New("no credential token")
	ErrUndecodable  = errors.New("credential token cannot be decoded")
	ErrNoUserID     = errors.New("credential token has no user id")
)

var _ port.IdentityProvider = (*TokenProvider)(nil)

// TokenProvider decodes the stored token without checking its signature;
// the server verifies it on the routes that need it.
type TokenProvider struct {
	store port.CredentialStore
}

func NewTokenProvider(store port.CredentialStore) *TokenProvider {
	return &TokenProvider{store: store}
}

func (p *TokenProvider) Identity(_ context.Context) (domain.Identity, error) {
	token, err := p.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return domain.Identity{}, err
		}
		return domain.Identity{}, fmt.Errorf("store.Load: %w", err)
	}

	return Decode(token)
}

// Decode reads the identity claims of a token.
func Decode(token string) (domain.Identity, error) {
	var claims auth.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", ErrUndecodable, err)
	}

	if claims.UserID == "" {
		return domain.Identity{}, ErrNoUserID
	}

	return claims.Identity(), nil
}
