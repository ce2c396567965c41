package revocation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/storefront/internal/port"
)

// MemoryStore is a single-process TokenRevoker and AttemptLimiter used when no Redis is configured.
type MemoryStore struct {
	mu       sync.Mutex
	revoked  map[string]time.Time
	failures map[string]failures
	now      func() time.Time
}

type failures struct {
	count     int
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked:  make(map[string]time.Time),
		failures: make(map[string]failures),
		now:      time.Now,
	}
}

var (
	_ port.TokenRevoker   = (*MemoryStore)(nil)
	_ port.AttemptLimiter = (*MemoryStore)(nil)
)

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return fmt.Errorf("tokenID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}

	if expiresAt.After(now) {
		s.revoked[tokenID] = expiresAt
	}

	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[tokenID]
	return ok && exp.After(s.now()), nil
}

func (s *MemoryStore) Failures(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.failures[key]
	if !ok || !f.expiresAt.After(s.now()) {
		return 0, nil
	}

	return f.count, nil
}

func (s *MemoryStore) Fail(_ context.Context, key string, window time.Duration) (int, error) {
	if key == "" {
		return 0, fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, f := range s.failures {
		if !f.expiresAt.After(now) {
			delete(s.failures, k)
		}
	}

	f, ok := s.failures[key]
	if !ok {
		f = failures{expiresAt: now.Add(window)}
	}
	f.count++
	s.failures[key] = f

	return f.count, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failures, key)

	return nil
}
