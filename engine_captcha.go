package loginguard

import (
	"context"
	"encoding/base64"
)

// GenerateCaptcha describes the generatecaptcha operation and its observable behavior.
//
// GenerateCaptcha may return an error when input validation, dependency calls, or security checks fail.
// GenerateCaptcha does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GenerateCaptcha(ctx context.Context) (*Captcha, error) {
	if e == nil || !e.flows.Initialized() {
		return nil, ErrEngineNotReady
	}

	result, err := e.flows.GenerateCaptcha(ctx)
	if err != nil {
		return nil, err
	}

	return &Captcha{
		Key:         result.Key,
		Image:       result.Image,
		ImageBase64: base64.StdEncoding.EncodeToString(result.Image),
	}, nil
}

// CaptchaRequired describes the captcharequired operation and its observable behavior.
//
// CaptchaRequired may return an error when input validation, dependency calls, or security checks fail.
// CaptchaRequired does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CaptchaRequired(ctx context.Context, username string) (bool, error) {
	if e == nil || !e.flows.Initialized() {
		return false, ErrEngineNotReady
	}
	return e.flows.CaptchaRequired(ctx, username)
}
