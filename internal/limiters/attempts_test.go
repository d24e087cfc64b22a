package limiters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestTracker(t *testing.T) (*AttemptTracker, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewAttemptTracker(client, AttemptConfig{AttemptWindow: time.Hour}), mr
}

func TestRecordFailureIncrementsAndSetsWindow(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	count, err := tracker.RecordFailure(ctx, "alice")
	if err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
	if mr.TTL("la:alice") != time.Hour {
		t.Fatalf("expected window TTL on first failure, got %v", mr.TTL("la:alice"))
	}

	count, err = tracker.RecordFailure(ctx, "alice")
	if err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
}

func TestFailureCountMissingKeyReadsZero(t *testing.T) {
	tracker, _ := newTestTracker(t)

	count, err := tracker.FailureCount(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("FailureCount failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero for missing key, got %d", count)
	}
}

func TestWindowExpiryResetsCounter(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	_, _ = tracker.RecordFailure(ctx, "alice")
	_, _ = tracker.RecordFailure(ctx, "alice")

	mr.FastForward(time.Hour + time.Second)

	count, err := tracker.FailureCount(ctx, "alice")
	if err != nil {
		t.Fatalf("FailureCount failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected counter expired, got %d", count)
	}
}

func TestLockSetsMarkerAndClearsCounter(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	_, _ = tracker.RecordFailure(ctx, "alice")

	if err := tracker.Lock(ctx, "alice", 15*time.Minute); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	locked, err := tracker.IsLocked(ctx, "alice")
	if err != nil || !locked {
		t.Fatalf("expected locked, got locked=%v err=%v", locked, err)
	}
	if mr.Exists("la:alice") {
		t.Fatal("expected counter cleared by Lock")
	}

	remaining, err := tracker.LockRemaining(ctx, "alice")
	if err != nil {
		t.Fatalf("LockRemaining failed: %v", err)
	}
	if remaining <= 0 || remaining > 15*time.Minute {
		t.Fatalf("unexpected remaining %v", remaining)
	}

	// Locking again while locked is idempotent.
	if err := tracker.Lock(ctx, "alice", 15*time.Minute); err != nil {
		t.Fatalf("second Lock failed: %v", err)
	}

	mr.FastForward(16 * time.Minute)
	locked, err = tracker.IsLocked(ctx, "alice")
	if err != nil || locked {
		t.Fatalf("expected lock expired, got locked=%v err=%v", locked, err)
	}
}

func TestResetClearsCounterOnly(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	_, _ = tracker.RecordFailure(ctx, "alice")
	if err := tracker.Reset(ctx, "alice"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if mr.Exists("la:alice") {
		t.Fatal("expected counter cleared")
	}
}

func TestDegradedFallbacks(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	mr.Close()

	count, err := tracker.RecordFailure(ctx, "alice")
	if !errors.Is(err, ErrAttemptsUnavailable) {
		t.Fatalf("expected ErrAttemptsUnavailable, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected fallback count 1, got %d", count)
	}

	count, err = tracker.FailureCount(ctx, "alice")
	if !errors.Is(err, ErrAttemptsUnavailable) || count != 0 {
		t.Fatalf("expected zero fallback, got count=%d err=%v", count, err)
	}

	locked, err := tracker.IsLocked(ctx, "alice")
	if !errors.Is(err, ErrAttemptsUnavailable) || locked {
		t.Fatalf("expected unlocked fallback, got locked=%v err=%v", locked, err)
	}

	remaining, err := tracker.LockRemaining(ctx, "alice")
	if !errors.Is(err, ErrAttemptsUnavailable) || remaining != 0 {
		t.Fatalf("expected zero remaining fallback, got remaining=%v err=%v", remaining, err)
	}
}
