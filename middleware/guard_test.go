package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	loginguard "github.com/loginguard/loginguard"
	"github.com/loginguard/loginguard/password"
)

type staticCredentialStore struct {
	cred loginguard.Credential
}

func (s *staticCredentialStore) FindByUsername(_ context.Context, username string) (*loginguard.Credential, error) {
	if username != s.cred.Username {
		return nil, loginguard.ErrCredentialNotFound
	}
	out := s.cred
	return &out, nil
}

type noopRenderer struct{}

func (noopRenderer) Render(text string) ([]byte, error) { return []byte(text), nil }

func newGuardedEngine(t *testing.T) (*loginguard.Engine, *loginguard.LoginResult) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	hasher, err := password.NewArgon2(password.Config{
		Memory:      8192,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	})
	if err != nil {
		t.Fatalf("NewArgon2 failed: %v", err)
	}
	hash, err := hasher.Hash("secret-password-123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	engine, err := loginguard.New().
		WithConfig(testConfig()).
		WithRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()})).
		WithCredentialStore(&staticCredentialStore{cred: loginguard.Credential{
			ID:           1,
			Username:     "alice",
			PasswordHash: hash,
			Enabled:      true,
		}}).
		WithPasswordHasher(hasher).
		WithCaptchaRenderer(noopRenderer{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	result, err := engine.Login(context.Background(), loginguard.LoginRequest{
		Username: "alice",
		Password: "secret-password-123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return engine, result
}

func testConfig() loginguard.Config {
	var cfg loginguard.Config
	cfg.Token.AccessTTL = 30 * time.Minute
	cfg.Token.RefreshTTL = 7 * 24 * time.Hour
	cfg.Token.SigningKey = bytes.Repeat([]byte("k"), 64)
	cfg.Lockout.MaxAttempts = 5
	cfg.Lockout.LockDuration = 15 * time.Minute
	cfg.Lockout.AttemptWindow = time.Hour
	cfg.Captcha.FailureThreshold = 3
	cfg.Captcha.TTL = 5 * time.Minute
	cfg.Captcha.Length = 5
	cfg.Password = loginguard.PasswordConfig{
		Memory:      8192,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
	return cfg
}

func protectedHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Fatal("expected claims in request context")
		}
		if claims.Username != "alice" {
			t.Fatalf("unexpected claims subject %q", claims.Username)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestGuardRejectsMissingAuthorization(t *testing.T) {
	engine, _ := newGuardedEngine(t)
	handler := Guard(engine)(protectedHandler(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGuardRejectsMalformedHeader(t *testing.T) {
	engine, result := newGuardedEngine(t)
	handler := Guard(engine)(protectedHandler(t))

	for _, header := range []string{"Bearer ", "Token " + result.AccessToken, result.AccessToken} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestGuardPassesValidAccessToken(t *testing.T) {
	engine, result := newGuardedEngine(t)
	handler := Guard(engine)(protectedHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+result.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestGuardRejectsRefreshToken(t *testing.T) {
	engine, result := newGuardedEngine(t)
	handler := Guard(engine)(protectedHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+result.RefreshToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for refresh token, got %d", rec.Code)
	}
}

func TestGuardRejectsRevokedToken(t *testing.T) {
	engine, result := newGuardedEngine(t)
	handler := Guard(engine)(protectedHandler(t))

	if err := engine.Logout(context.Background(), result.AccessToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+result.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", rec.Code)
	}
}
