package loginguard

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when the username is unknown or the
	// password does not match. The two cases are deliberately
	// indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is returned for disabled accounts. It does not feed
	// the failure counter — a disabled account is not a secret-guessing signal.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrAccountLocked is returned while a temporary lock is active. The
	// concrete error is a [LockedError] carrying the remaining lock time.
	ErrAccountLocked = errors.New("account locked")
	// ErrCaptchaRequired is returned when the failure count has crossed the
	// captcha threshold and the request carried no challenge response.
	ErrCaptchaRequired = errors.New("captcha required")
	// ErrInvalidCaptcha is returned when the challenge response is wrong,
	// expired, or already consumed. It counts as a login failure.
	ErrInvalidCaptcha = errors.New("invalid captcha")
	// ErrTokenInvalid is the umbrella for all token rejections; the wrapped
	// subtypes below match it through errors.Is.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrAccountUnavailable is returned by Refresh when the token subject no
	// longer resolves to an enabled account.
	ErrAccountUnavailable = errors.New("account unavailable")
	// ErrCredentialNotFound is returned by [CredentialStore] implementations
	// when no account exists for a username.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrInternal is the collapsed form of unexpected collaborator failures.
	ErrInternal = errors.New("internal error")
	// ErrEngineNotReady is an exported constant or variable used by the
	// authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// Token rejection subtypes. Each wraps [ErrTokenInvalid].
var (
	// ErrTokenMalformed is an exported constant or variable used by the authentication engine.
	ErrTokenMalformed = fmt.Errorf("%w: malformed", ErrTokenInvalid)
	// ErrTokenExpired is an exported constant or variable used by the authentication engine.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrTokenInvalid)
	// ErrTokenSignature is an exported constant or variable used by the authentication engine.
	ErrTokenSignature = fmt.Errorf("%w: bad signature", ErrTokenInvalid)
	// ErrTokenRevoked is an exported constant or variable used by the authentication engine.
	ErrTokenRevoked = fmt.Errorf("%w: revoked", ErrTokenInvalid)
)

// LockedError is the concrete error returned while an account lock is active.
// It matches [ErrAccountLocked] through errors.Is, so callers can branch on
// the sentinel and render a countdown from RemainingSeconds.
type LockedError struct {
	RemainingSeconds int64
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked: retry in %ds", e.RemainingSeconds)
}

// Is reports whether target is [ErrAccountLocked].
func (e *LockedError) Is(target error) bool {
	return target == ErrAccountLocked
}
