// File: internal/auth/blocklist.go
package auth

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Blocklist remembers revoked session token ids until the tokens would have expired anyway.
type Blocklist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// InMemoryBlocklist keeps revoked ids in a process-local go-cache.
type InMemoryBlocklist struct {
	cache *cache.Cache
}

var _ Blocklist = (*InMemoryBlocklist)(nil)

// NewInMemoryBlocklist creates an in-memory blocklist purging expired entries every cleanupInterval.
func NewInMemoryBlocklist(cleanupInterval time.Duration) *InMemoryBlocklist {
	return &InMemoryBlocklist{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

// Revoke adds tokenID to the blocklist until expiresAt. Already expired tokens are ignored.
func (b *InMemoryBlocklist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	b.cache.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (b *InMemoryBlocklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := b.cache.Get(tokenID)
	return found, nil
}
