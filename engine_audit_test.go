package loginguard

import (
	"context"
	"testing"
	"time"
)

func TestEngineEmitsAuditEvents(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 16

	_, client := newTestRedis(t)
	hasher := newTestHasher(t)

	hash, err := hasher.Hash(alicePassword)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	store := &mockCredentialStore{
		users: map[string]Credential{
			"alice": {ID: aliceID, Username: "alice", PasswordHash: hash, Enabled: true},
		},
	}

	sink := NewChannelSink(16)
	engine, err := New().
		WithConfig(cfg).
		WithRedis(client).
		WithCredentialStore(store).
		WithPasswordHasher(hasher).
		WithCaptchaRenderer(stubRenderer{}).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	ctx := WithClientIP(context.Background(), "203.0.113.9")

	if _, err := engine.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"}); err == nil {
		t.Fatal("expected login failure")
	}
	if _, err := engine.Login(ctx, LoginRequest{Username: "alice", Password: alicePassword}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	expectEvent := func(eventType string, success bool) AuditEvent {
		t.Helper()
		select {
		case event := <-sink.Events():
			if event.EventType != eventType {
				t.Fatalf("expected event %q, got %q", eventType, event.EventType)
			}
			if event.Success != success {
				t.Fatalf("event %q: expected success=%v", eventType, success)
			}
			return event
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %q", eventType)
			return AuditEvent{}
		}
	}

	failure := expectEvent(EventLoginFailure, false)
	if failure.Username != "alice" || failure.IP != "203.0.113.9" {
		t.Fatalf("unexpected failure event %+v", failure)
	}
	if failure.Error == "" {
		t.Fatal("expected failure event to carry the error string")
	}

	success := expectEvent(EventLoginSuccess, true)
	if success.UserID != aliceID {
		t.Fatalf("expected success event user id %d, got %d", aliceID, success.UserID)
	}
	if success.Metadata["remember_me"] != "false" {
		t.Fatalf("expected remember_me metadata, got %v", success.Metadata)
	}

	if engine.AuditDropped() != 0 {
		t.Fatalf("expected no dropped events, got %d", engine.AuditDropped())
	}
}
