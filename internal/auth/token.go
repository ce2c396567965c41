package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of a storefront credential token.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

func (c Claims) Identity() domain.Identity {
	return domain.Identity{
		UserID:   c.UserID,
		Username: c.Username,
		Email:    c.Email,
	}
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}

	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs an HS256 token carrying the identity.
func (i *Issuer) Issue(identity domain.Identity) (string, Claims, error) {
	if identity.UserID == "" {
		return "", Claims{}, fmt.Errorf("userID is empty")
	}

	now := i.now()
	claims := Claims{
		UserID:   identity.UserID,
		Username: identity.Username,
		Email:    identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, claims, nil
}

// Verify checks the signature and expiry of a token issued by Issue.
func (i *Issuer) Verify(token string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.UserID == "" || claims.ID == "" {
		return Claims{}, fmt.Errorf("%w: missing userId or jti", ErrInvalidToken)
	}

	return claims, nil
}
