package loginguard

import (
	"context"
	"time"

	"github.com/loginguard/loginguard/internal/flows"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if e == nil || !e.flows.Initialized() {
		return nil, ErrEngineNotReady
	}

	result, err := e.flows.Login(ctx, flows.LoginRequest{
		Username:    req.Username,
		Password:    req.Password,
		RememberMe:  req.RememberMe,
		CaptchaKey:  req.CaptchaKey,
		CaptchaCode: req.CaptchaCode,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

// LoginAttempts describes the loginattempts operation and its observable behavior.
//
// LoginAttempts may return an error when input validation, dependency calls, or security checks fail.
// LoginAttempts does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) LoginAttempts(ctx context.Context, username string) (int64, error) {
	if e == nil || e.attempts == nil {
		return 0, ErrEngineNotReady
	}
	count, err := e.attempts.FailureCount(ctx, username)
	if err != nil {
		e.storeDegraded(ctx, err)
		return 0, nil
	}
	return count, nil
}

// LockRemaining describes the lockremaining operation and its observable behavior.
//
// LockRemaining may return an error when input validation, dependency calls, or security checks fail.
// LockRemaining does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) LockRemaining(ctx context.Context, username string) (time.Duration, error) {
	if e == nil || e.attempts == nil {
		return 0, ErrEngineNotReady
	}
	remaining, err := e.attempts.LockRemaining(ctx, username)
	if err != nil {
		e.storeDegraded(ctx, err)
		return 0, nil
	}
	return remaining, nil
}
