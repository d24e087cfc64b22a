package flows

import (
	"context"

	"github.com/loginguard/loginguard/jwt"
)

// ValidateMetrics carries metric IDs needed by the validate flow.
type ValidateMetrics struct {
	TokenRejected int
}

// ValidateErrors carries host-level sentinel errors used by the validate flow.
type ValidateErrors struct {
	EngineNotReady error
	TokenRevoked   error
}

// ValidateDeps captures token-validation dependencies.
type ValidateDeps struct {
	Parse         func(string) (*jwt.Claims, error)
	MapParseError func(error) error
	IsRevoked     func(context.Context, string) (bool, error)

	MetricInc func(int)
	Degraded  func(context.Context, error)

	Metrics ValidateMetrics
	Errors  ValidateErrors
}

// ValidateResult carries either the verified claims or the mapped rejection.
type ValidateResult struct {
	Claims *jwt.Claims
	Err    error
}

// RunValidate verifies the token signature and claims, then checks the
// revoked set. Revocation reads fail open on store outage: a signed,
// unexpired token stays valid while Redis is down.
func RunValidate(ctx context.Context, tokenStr string, deps ValidateDeps) ValidateResult {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Degraded == nil {
		deps.Degraded = func(context.Context, error) {}
	}
	if deps.Parse == nil || deps.MapParseError == nil {
		return ValidateResult{Err: deps.Errors.EngineNotReady}
	}

	claims, err := deps.Parse(tokenStr)
	if err != nil {
		deps.MetricInc(deps.Metrics.TokenRejected)
		return ValidateResult{Err: deps.MapParseError(err)}
	}

	if deps.IsRevoked != nil {
		revoked, err := deps.IsRevoked(ctx, tokenStr)
		if err != nil {
			deps.Degraded(ctx, err)
		}
		if revoked {
			deps.MetricInc(deps.Metrics.TokenRejected)
			return ValidateResult{Err: deps.Errors.TokenRevoked}
		}
	}

	return ValidateResult{Claims: claims}
}
