package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "storefront:revoked:"
	failurePrefix = "storefront:failures:"
)

type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping: %w", err)
	}

	return &RedisStore{client: client, now: time.Now}, nil
}

var (
	_ port.TokenRevoker   = (*RedisStore)(nil)
	_ port.AttemptLimiter = (*RedisStore)(nil)
)

// Revoke keeps the token ID until the token would have expired anyway.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return fmt.Errorf("tokenID is empty")
	}

	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, keyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("client.Get: %w", err)
	}

	return true, nil
}

func (s *RedisStore) Failures(ctx context.Context, key string) (int, error) {
	n, err := s.client.Get(ctx, failurePrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("client.Get: %w", err)
	}

	return n, nil
}

// Fail increments the failure count; the window starts with the first failure.
func (s *RedisStore) Fail(ctx context.Context, key string, window time.Duration) (int, error) {
	if key == "" {
		return 0, fmt.Errorf("key is empty")
	}

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, failurePrefix+key)
	pipe.ExpireNX(ctx, failurePrefix+key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("pipe.Exec: %w", err)
	}

	return int(incr.Val()), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, failurePrefix+key).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
