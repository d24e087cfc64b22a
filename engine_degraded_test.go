package loginguard

import (
	"context"
	"errors"
	"testing"
)

// Degraded mode: when Redis is unreachable the engine fails open. Logins with
// correct credentials succeed, lock checks read as unlocked, and signed
// tokens validate without a revocation check.

func TestLoginSucceedsWithRedisDown(t *testing.T) {
	engine, mr, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	mr.Close()

	result, err := engine.Login(ctx, LoginRequest{Username: "alice", Password: alicePassword})
	if err != nil {
		t.Fatalf("expected fail-open login, got %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected access token in degraded mode")
	}

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricStoreDegraded] == 0 {
		t.Fatal("expected degraded-store outages to be counted")
	}
}

func TestLoginRejectsBadPasswordWithRedisDown(t *testing.T) {
	engine, mr, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	mr.Close()

	_, err := engine.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateFailsOpenWithRedisDown(t *testing.T) {
	engine, mr, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	result := loginAlice(t, engine)
	mr.Close()

	if !engine.TokenValid(ctx, result.AccessToken) {
		t.Fatal("expected signed token to stay valid with revocation store down")
	}
}

func TestLogoutSucceedsWithRedisDown(t *testing.T) {
	engine, mr, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	result := loginAlice(t, engine)
	mr.Close()

	if err := engine.Logout(ctx, result.AccessToken); err != nil {
		t.Fatalf("expected degraded logout to succeed, got %v", err)
	}
}

func TestIntrospectionFallsBackWithRedisDown(t *testing.T) {
	engine, mr, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	mr.Close()

	if count, err := engine.LoginAttempts(ctx, "alice"); err != nil || count != 0 {
		t.Fatalf("expected zero-count fallback, got count=%d err=%v", count, err)
	}
	if remaining, err := engine.LockRemaining(ctx, "alice"); err != nil || remaining != 0 {
		t.Fatalf("expected zero-remaining fallback, got remaining=%v err=%v", remaining, err)
	}
	if required, err := engine.CaptchaRequired(ctx, "alice"); err != nil || required {
		t.Fatalf("expected captcha not required fallback, got required=%v err=%v", required, err)
	}
}
