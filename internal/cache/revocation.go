package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:jti:"

// RevocationStore remembers the ids of logged-out tokens until they would
// have expired anyway. A store without a client revokes nothing.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore wraps client, which may be nil.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Enabled reports whether revocations are actually recorded.
func (s *RevocationStore) Enabled() bool {
	return s != nil && s.client != nil
}

// Revoke marks jti as revoked for ttl. Non-positive ttl means the token has
// already expired and nothing is stored.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if !s.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether jti was revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !s.Enabled() || jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
