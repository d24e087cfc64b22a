package loginguard

import (
	"context"
	"time"
)

// ValidateToken describes the validatetoken operation and its observable behavior.
//
// ValidateToken may return an error when input validation, dependency calls, or security checks fail.
// ValidateToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ValidateToken(ctx context.Context, tokenStr string) (*Claims, error) {
	if e == nil || !e.flows.Initialized() {
		return nil, ErrEngineNotReady
	}

	start := time.Now()
	result := e.flows.Validate(ctx, tokenStr)
	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricValidateLatency, time.Since(start))
	}

	if result.Err != nil {
		return nil, result.Err
	}
	return result.Claims, nil
}

// TokenValid describes the tokenvalid operation and its observable behavior.
//
// TokenValid may return an error when input validation, dependency calls, or security checks fail.
// TokenValid does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) TokenValid(ctx context.Context, tokenStr string) bool {
	_, err := e.ValidateToken(ctx, tokenStr)
	return err == nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context, tokenStr string) error {
	if e == nil || !e.flows.Initialized() {
		return ErrEngineNotReady
	}
	return e.flows.Logout(ctx, tokenStr)
}

// Refresh describes the refresh operation and its observable behavior.
//
// Refresh may return an error when input validation, dependency calls, or security checks fail.
// Refresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if e == nil || !e.flows.Initialized() {
		return nil, ErrEngineNotReady
	}

	result, err := e.flows.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}, nil
}
