package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryBlacklist is a mutex-guarded token blacklist for single-process
// deployments. Entries are purged lazily whenever the map is consulted;
// there is no background sweeper.
type MemoryBlacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
	now    func() time.Time
}

// NewMemoryBlacklist creates an empty blacklist.
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Revoke records the token until its natural expiry.
func (b *MemoryBlacklist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeLocked()
	b.tokens[token] = b.now().Add(ttl)
	return nil
}

// IsRevoked reports whether the token was revoked and has not yet expired.
func (b *MemoryBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeLocked()
	_, ok := b.tokens[token]
	return ok, nil
}

func (b *MemoryBlacklist) purgeLocked() {
	now := b.now()
	for t, exp := range b.tokens {
		if now.After(exp) {
			delete(b.tokens, t)
		}
	}
}
