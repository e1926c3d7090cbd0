package valkey

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"
)

const blacklistPrefix = "auth:revoked:"

// Blacklist implements auth.Blacklist on Valkey, making token revocation
// visible to every replica. Entries carry the token's remaining lifetime as
// TTL, so the store cleans up after itself.
type Blacklist struct {
	client valkey.Client
}

// NewBlacklist reuses the cache connection for revocation state.
func NewBlacklist(c *Cache) *Blacklist {
	return &Blacklist{client: c.client}
}

// Revoke records the token until ttl elapses.
func (b *Blacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	cmd := b.client.Do(ctx,
		b.client.B().Set().Key(blacklistPrefix+token).Value("1").Ex(ttl).Build(),
	)
	return cmd.Error()
}

// IsRevoked reports whether the token is on the blacklist.
func (b *Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	cmd := b.client.Do(ctx, b.client.B().Exists().Key(blacklistPrefix+token).Build())
	if cmd.Error() != nil {
		return false, cmd.Error()
	}
	n, err := cmd.AsInt64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
