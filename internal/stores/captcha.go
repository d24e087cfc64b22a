package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCaptchaNotFound indicates no answer exists for the key, either
	// because it expired or because it was already consumed.
	ErrCaptchaNotFound = errors.New("captcha not found")

	// ErrCaptchaUnavailable indicates the captcha backend is unreachable.
	ErrCaptchaUnavailable = errors.New("captcha backend unavailable")
)

// CaptchaStore keeps challenge answers keyed by an opaque challenge key.
// Answers are stored lowercased and consumed exactly once.
type CaptchaStore struct {
	redis redis.UniversalClient
	ttl   time.Duration
}

// NewCaptchaStore creates a store whose entries expire after ttl.
func NewCaptchaStore(redisClient redis.UniversalClient, ttl time.Duration) *CaptchaStore {
	return &CaptchaStore{redis: redisClient, ttl: ttl}
}

func captchaKey(key string) string {
	return "cp:" + key
}

// Save stores the expected answer under the challenge key. The answer is
// lowercased on write so comparison at consume time is case-insensitive.
func (s *CaptchaStore) Save(ctx context.Context, key, answer string) error {
	normalized := strings.ToLower(strings.TrimSpace(answer))
	if err := s.redis.Set(ctx, captchaKey(key), normalized, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCaptchaUnavailable, err)
	}
	return nil
}

// Consume atomically fetches and deletes the stored answer, then compares it
// against the submitted code ignoring case and surrounding whitespace. The
// challenge is gone after the first call regardless of whether the comparison
// succeeds.
func (s *CaptchaStore) Consume(ctx context.Context, key, code string) (bool, error) {
	stored, err := s.redis.GetDel(ctx, captchaKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, ErrCaptchaNotFound
		}
		return false, fmt.Errorf("%w: %v", ErrCaptchaUnavailable, err)
	}

	submitted := strings.ToLower(strings.TrimSpace(code))
	return submitted != "" && submitted == stored, nil
}
