package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRevocationUnavailable indicates the revocation backend is unreachable.
var ErrRevocationUnavailable = errors.New("revocation backend unavailable")

// RevocationStore records revoked tokens until their natural expiry. Entries
// carry the token's remaining lifetime as TTL, so the set never outgrows the
// population of still-valid tokens.
type RevocationStore struct {
	redis redis.UniversalClient
}

// NewRevocationStore creates a store backed by the given Redis client.
func NewRevocationStore(redisClient redis.UniversalClient) *RevocationStore {
	return &RevocationStore{redis: redisClient}
}

func revocationKey(token string) string {
	return "tb:" + token
}

// Revoke marks the token revoked for its remaining lifetime. Tokens that have
// already expired need no entry and are skipped. Revoking the same token
// twice is a no-op.
func (s *RevocationStore) Revoke(ctx context.Context, token string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, revocationKey(token), 1, remaining).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether the token appears in the revoked set. Degraded
// fallback: not revoked, so validation fails open on store outage.
func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.redis.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
	}
	return n > 0, nil
}
