package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist records revoked access tokens in Redis until they would have
// expired anyway. A Blacklist without a client is a no-op.
type Blacklist struct {
	client *redis.Client
	prefix string
}

func NewBlacklist(c *redis.Client) *Blacklist {
	return &Blacklist{client: c, prefix: "blacklist:access:"}
}

// tokens are stored hashed so that Redis never holds a usable credential.
func (b *Blacklist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return b.prefix + hex.EncodeToString(sum[:])
}

func (b *Blacklist) Enabled() bool { return b != nil && b.client != nil }

// Add blacklists token for ttl. Non-positive ttls are ignored.
func (b *Blacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if !b.Enabled() || ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, b.key(token), "1", ttl).Err()
}

// IsBlacklisted reports whether token was revoked.
func (b *Blacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	if !b.Enabled() {
		return false, nil
	}
	n, err := b.client.Exists(ctx, b.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
