package flows

import (
	"context"
	"time"

	"github.com/loginguard/loginguard/jwt"
)

// LogoutMetrics carries metric IDs needed by the logout flow.
type LogoutMetrics struct {
	Logout int
}

// LogoutEvents carries audit event names used by the logout flow.
type LogoutEvents struct {
	Logout string
}

// LogoutErrors carries host-level sentinel errors used by the logout flow.
type LogoutErrors struct {
	EngineNotReady error
}

// LogoutDeps captures logout dependencies.
type LogoutDeps struct {
	Extract       func(string) (*jwt.Claims, error)
	MapParseError func(error) error
	Revoke        func(ctx context.Context, token string, remaining time.Duration) error
	Now           func() time.Time

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, username string, userID int64, failure error, meta func() map[string]string)
	Degraded  func(context.Context, error)

	Metrics LogoutMetrics
	Events  LogoutEvents
	Errors  LogoutErrors
}

// RunLogout records the token in the revoked set for its remaining lifetime.
// Extraction checks the signature but not expiry: logging out with an expired
// token succeeds with nothing to revoke. A revocation-store outage degrades
// to success, matching the fail-open validation side.
func RunLogout(ctx context.Context, tokenStr string, deps LogoutDeps) error {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, int64, error, func() map[string]string) {}
	}
	if deps.Degraded == nil {
		deps.Degraded = func(context.Context, error) {}
	}
	if deps.Extract == nil || deps.MapParseError == nil || deps.Revoke == nil {
		return deps.Errors.EngineNotReady
	}

	claims, err := deps.Extract(tokenStr)
	if err != nil {
		return deps.MapParseError(err)
	}

	var remaining time.Duration
	if claims.ExpiresAt != nil {
		remaining = claims.ExpiresAt.Time.Sub(deps.Now())
	}
	if remaining > 0 {
		if err := deps.Revoke(ctx, tokenStr, remaining); err != nil {
			deps.Degraded(ctx, err)
		}
	}

	deps.MetricInc(deps.Metrics.Logout)
	deps.EmitAudit(ctx, deps.Events.Logout, true, claims.Username, claims.UserID, nil, nil)
	return nil
}
