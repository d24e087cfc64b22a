package flows

import (
	"context"
	"errors"
	"time"

	"github.com/loginguard/loginguard/jwt"
)

// RefreshMetrics carries metric IDs needed by the refresh flow.
type RefreshMetrics struct {
	RefreshSuccess int
	RefreshFailure int
	TokenRejected  int
}

// RefreshEvents carries audit event names used by the refresh flow.
type RefreshEvents struct {
	RefreshSuccess string
	RefreshFailure string
}

// RefreshErrors carries host-level sentinel errors used by the refresh flow.
type RefreshErrors struct {
	EngineNotReady     error
	TokenInvalid       error
	TokenRevoked       error
	AccountUnavailable error
	Internal           error
}

// RefreshDeps captures token-refresh dependencies.
type RefreshDeps struct {
	Parse         func(string) (*jwt.Claims, error)
	MapParseError func(error) error
	IsRevoked     func(context.Context, string) (bool, error)

	FindCredential     func(context.Context, string) (*CredentialRecord, error)
	CredentialNotFound error

	IssueAccess func(ctx context.Context, userID int64, username string) (token string, ttl time.Duration, err error)

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, username string, userID int64, failure error, meta func() map[string]string)
	Degraded  func(context.Context, error)

	Metrics RefreshMetrics
	Events  RefreshEvents
	Errors  RefreshErrors
}

// RunRefresh exchanges a valid refresh token for a fresh access token. The
// refresh token itself is returned unchanged; rotation is the caller's
// concern if they want it. The subject is re-resolved against the credential
// store so a deleted or disabled account cannot keep minting access tokens.
func RunRefresh(ctx context.Context, refreshToken string, deps RefreshDeps) (*LoginResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, int64, error, func() map[string]string) {}
	}
	if deps.Degraded == nil {
		deps.Degraded = func(context.Context, error) {}
	}
	if deps.Parse == nil || deps.MapParseError == nil || deps.FindCredential == nil || deps.IssueAccess == nil {
		return nil, deps.Errors.EngineNotReady
	}

	claims, err := deps.Parse(refreshToken)
	if err != nil {
		deps.MetricInc(deps.Metrics.TokenRejected)
		deps.MetricInc(deps.Metrics.RefreshFailure)
		mapped := deps.MapParseError(err)
		deps.EmitAudit(ctx, deps.Events.RefreshFailure, false, "", 0, mapped, nil)
		return nil, mapped
	}
	if claims.Kind != jwt.KindRefresh {
		deps.MetricInc(deps.Metrics.TokenRejected)
		deps.MetricInc(deps.Metrics.RefreshFailure)
		deps.EmitAudit(ctx, deps.Events.RefreshFailure, false, claims.Username, claims.UserID, deps.Errors.TokenInvalid, nil)
		return nil, deps.Errors.TokenInvalid
	}

	if deps.IsRevoked != nil {
		revoked, err := deps.IsRevoked(ctx, refreshToken)
		if err != nil {
			deps.Degraded(ctx, err)
		}
		if revoked {
			deps.MetricInc(deps.Metrics.TokenRejected)
			deps.MetricInc(deps.Metrics.RefreshFailure)
			deps.EmitAudit(ctx, deps.Events.RefreshFailure, false, claims.Username, claims.UserID, deps.Errors.TokenRevoked, nil)
			return nil, deps.Errors.TokenRevoked
		}
	}

	cred, err := deps.FindCredential(ctx, claims.Username)
	if err != nil {
		if deps.CredentialNotFound != nil && errors.Is(err, deps.CredentialNotFound) {
			deps.MetricInc(deps.Metrics.RefreshFailure)
			deps.EmitAudit(ctx, deps.Events.RefreshFailure, false, claims.Username, claims.UserID, deps.Errors.AccountUnavailable, nil)
			return nil, deps.Errors.AccountUnavailable
		}
		return nil, deps.Errors.Internal
	}
	if cred.ID != claims.UserID || !cred.Enabled {
		deps.MetricInc(deps.Metrics.RefreshFailure)
		deps.EmitAudit(ctx, deps.Events.RefreshFailure, false, claims.Username, claims.UserID, deps.Errors.AccountUnavailable, nil)
		return nil, deps.Errors.AccountUnavailable
	}

	access, ttl, err := deps.IssueAccess(ctx, cred.ID, cred.Username)
	if err != nil {
		return nil, deps.Errors.Internal
	}

	deps.MetricInc(deps.Metrics.RefreshSuccess)
	deps.EmitAudit(ctx, deps.Events.RefreshSuccess, true, cred.Username, cred.ID, nil, nil)
	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    ttl,
	}, nil
}
