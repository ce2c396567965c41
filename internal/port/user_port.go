package port

import (
	"context"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	VerifyUser(ctx context.Context, email, code string) (bool, error)
}

// TokenRevoker remembers logged out tokens until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AttemptLimiter counts failures per key; the count is dropped once window has passed since the first failure.
type AttemptLimiter interface {
	Failures(ctx context.Context, key string) (int, error)
	Fail(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}
