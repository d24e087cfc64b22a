package flows

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// LoginRequest is the flow-local login input shape.
type LoginRequest struct {
	Username    string
	Password    string
	RememberMe  bool
	CaptchaKey  string
	CaptchaCode string
}

// LoginResult is the flow-local login response shape.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// CredentialRecord is the flow-local account model used by login/refresh flows.
type CredentialRecord struct {
	ID           int64
	Username     string
	PasswordHash string
	Enabled      bool
}

// LoginMetrics carries metric IDs needed by the login flow.
type LoginMetrics struct {
	LoginSuccess     int
	LoginFailure     int
	LoginLocked      int
	LockoutTriggered int
	CaptchaRequired  int
	CaptchaFailure   int
	StoreDegraded    int
}

// LoginEvents carries audit event names used by the login flow.
type LoginEvents struct {
	LoginSuccess    string
	LoginFailure    string
	LoginLocked     string
	CaptchaRequired string
	CaptchaFailure  string
	AccountLocked   string
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	EngineNotReady     error
	InvalidCredentials error
	AccountDisabled    error
	CaptchaRequired    error
	InvalidCaptcha     error
	Internal           error
	Locked             func(remaining time.Duration) error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	MaxAttempts      int
	LockDuration     time.Duration
	CaptchaThreshold int

	IsLocked      func(context.Context, string) (bool, error)
	LockRemaining func(context.Context, string) (time.Duration, error)
	FailureCount  func(context.Context, string) (int64, error)
	RecordFailure func(context.Context, string) (int64, error)
	Lock          func(context.Context, string, time.Duration) error
	ResetAttempts func(context.Context, string) error

	ConsumeCaptcha func(context.Context, string, string) (bool, error)
	CaptchaMissing func(error) bool

	FindCredential     func(context.Context, string) (*CredentialRecord, error)
	CredentialNotFound error
	VerifyPassword     func(password, hash string) (bool, error)

	IssueTokens func(ctx context.Context, userID int64, username string, rememberMe bool) (*LoginResult, error)

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, username string, userID int64, failure error, meta func() map[string]string)
	Degraded  func(context.Context, error)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

func fillLoginDefaults(deps *LoginDeps) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, int64, error, func() map[string]string) {}
	}
	if deps.Degraded == nil {
		deps.Degraded = func(context.Context, error) {}
	}
}

// RunLogin executes the login state machine: lock check, captcha gate,
// credential check, then counter reset and token issuance on success.
func RunLogin(ctx context.Context, req LoginRequest, deps LoginDeps) (*LoginResult, error) {
	fillLoginDefaults(&deps)
	if deps.IsLocked == nil ||
		deps.FailureCount == nil ||
		deps.RecordFailure == nil ||
		deps.FindCredential == nil ||
		deps.VerifyPassword == nil ||
		deps.IssueTokens == nil {
		return nil, deps.Errors.EngineNotReady
	}

	username := req.Username

	// Lock check comes before everything else so a locked account cannot
	// probe credentials or burn captcha challenges.
	locked, err := deps.IsLocked(ctx, username)
	if err != nil {
		deps.Degraded(ctx, err)
	}
	if locked {
		remaining, rerr := deps.LockRemaining(ctx, username)
		if rerr != nil {
			deps.Degraded(ctx, rerr)
			remaining = deps.LockDuration
		}
		deps.MetricInc(deps.Metrics.LoginLocked)
		deps.EmitAudit(ctx, deps.Events.LoginLocked, false, username, 0, deps.Errors.Locked(remaining), nil)
		return nil, deps.Errors.Locked(remaining)
	}

	count, err := deps.FailureCount(ctx, username)
	if err != nil {
		deps.Degraded(ctx, err)
	}

	if deps.CaptchaThreshold > 0 && count >= int64(deps.CaptchaThreshold) {
		if err := runCaptchaGate(ctx, req, deps); err != nil {
			return nil, err
		}
	}

	cred, err := deps.FindCredential(ctx, username)
	if err != nil {
		if deps.CredentialNotFound != nil && errors.Is(err, deps.CredentialNotFound) {
			// Unknown usernames feed the counter too so attackers cannot
			// enumerate accounts by watching lockout behavior.
			if lockedErr := recordFailureAndMaybeLock(ctx, username, deps); lockedErr != nil {
				return nil, lockedErr
			}
			deps.MetricInc(deps.Metrics.LoginFailure)
			deps.EmitAudit(ctx, deps.Events.LoginFailure, false, username, 0, deps.Errors.InvalidCredentials, nil)
			return nil, deps.Errors.InvalidCredentials
		}
		return nil, deps.Errors.Internal
	}

	if !cred.Enabled {
		// Disabled accounts are rejected without touching the counter.
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, username, cred.ID, deps.Errors.AccountDisabled, nil)
		return nil, deps.Errors.AccountDisabled
	}

	ok, err := deps.VerifyPassword(req.Password, cred.PasswordHash)
	if err != nil || !ok {
		if lockedErr := recordFailureAndMaybeLock(ctx, username, deps); lockedErr != nil {
			return nil, lockedErr
		}
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, username, cred.ID, deps.Errors.InvalidCredentials, nil)
		return nil, deps.Errors.InvalidCredentials
	}

	if deps.ResetAttempts != nil {
		if err := deps.ResetAttempts(ctx, username); err != nil {
			deps.Degraded(ctx, err)
		}
	}

	result, err := deps.IssueTokens(ctx, cred.ID, cred.Username, req.RememberMe)
	if err != nil {
		return nil, deps.Errors.Internal
	}

	deps.MetricInc(deps.Metrics.LoginSuccess)
	deps.EmitAudit(ctx, deps.Events.LoginSuccess, true, username, cred.ID, nil, func() map[string]string {
		return map[string]string{
			"remember_me": strconv.FormatBool(req.RememberMe),
		}
	})
	return result, nil
}

// runCaptchaGate enforces the challenge once the failure count crosses the
// threshold. A wrong or already-consumed answer counts as a failed attempt.
func runCaptchaGate(ctx context.Context, req LoginRequest, deps LoginDeps) error {
	username := req.Username

	if req.CaptchaKey == "" || req.CaptchaCode == "" {
		deps.MetricInc(deps.Metrics.CaptchaRequired)
		deps.EmitAudit(ctx, deps.Events.CaptchaRequired, false, username, 0, deps.Errors.CaptchaRequired, nil)
		return deps.Errors.CaptchaRequired
	}

	if deps.ConsumeCaptcha == nil {
		return deps.Errors.EngineNotReady
	}

	ok, err := deps.ConsumeCaptcha(ctx, req.CaptchaKey, req.CaptchaCode)
	if err != nil {
		if deps.CaptchaMissing != nil && deps.CaptchaMissing(err) {
			ok = false
		} else {
			// Store outage: let the attempt through rather than locking
			// every user out of login.
			deps.Degraded(ctx, err)
			return nil
		}
	}
	if !ok {
		if lockedErr := recordFailureAndMaybeLock(ctx, username, deps); lockedErr != nil {
			return lockedErr
		}
		deps.MetricInc(deps.Metrics.CaptchaFailure)
		deps.EmitAudit(ctx, deps.Events.CaptchaFailure, false, username, 0, deps.Errors.InvalidCaptcha, nil)
		return deps.Errors.InvalidCaptcha
	}
	return nil
}

// recordFailureAndMaybeLock increments the failure counter and converts it
// into a lock when the limit is reached. It returns non-nil only when this
// attempt triggered the lock.
func recordFailureAndMaybeLock(ctx context.Context, username string, deps LoginDeps) error {
	count, err := deps.RecordFailure(ctx, username)
	if err != nil {
		deps.Degraded(ctx, err)
	}
	if deps.MaxAttempts <= 0 || count < int64(deps.MaxAttempts) {
		return nil
	}

	if deps.Lock != nil {
		if err := deps.Lock(ctx, username, deps.LockDuration); err != nil {
			deps.Degraded(ctx, err)
		}
	}
	deps.MetricInc(deps.Metrics.LockoutTriggered)
	deps.EmitAudit(ctx, deps.Events.AccountLocked, false, username, 0, deps.Errors.Locked(deps.LockDuration), func() map[string]string {
		return map[string]string{
			"failed_attempts": strconv.FormatInt(count, 10),
		}
	})
	return deps.Errors.Locked(deps.LockDuration)
}

// RunCaptchaRequired reports whether the next login attempt for username must
// carry a challenge response.
func RunCaptchaRequired(ctx context.Context, username string, deps LoginDeps) (bool, error) {
	fillLoginDefaults(&deps)
	if deps.FailureCount == nil {
		return false, deps.Errors.EngineNotReady
	}
	if deps.CaptchaThreshold <= 0 {
		return false, nil
	}
	count, err := deps.FailureCount(ctx, username)
	if err != nil {
		deps.Degraded(ctx, err)
		return false, nil
	}
	return count >= int64(deps.CaptchaThreshold), nil
}
