package loginguard

// SecurityReport describes the securityreport operation and its observable behavior.
//
// SecurityReport may return an error when input validation, dependency calls, or security checks fail.
// SecurityReport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		MaxLoginAttempts:        e.config.Lockout.MaxAttempts,
		LockDuration:            e.config.Lockout.LockDuration,
		AttemptWindow:           e.config.Lockout.AttemptWindow,
		CaptchaFailureThreshold: e.config.Captcha.FailureThreshold,
		CaptchaTTL:              e.config.Captcha.TTL,
		AccessTTL:               e.config.Token.AccessTTL,
		RefreshTTL:              e.config.Token.RefreshTTL,
		SigningKeyDerived:       e.jwtManager != nil && e.jwtManager.KeyDerived(),
		RememberMeExtendsTTL:    e.config.Token.RememberMeRefreshTTL > 0,
		AuditEnabled:            e.config.Audit.Enabled,
		MetricsEnabled:          e.config.Metrics.Enabled,
	}
}
