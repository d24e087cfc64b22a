package loginguard

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/loginguard/loginguard/captcha"
	internalaudit "github.com/loginguard/loginguard/internal/audit"
	"github.com/loginguard/loginguard/internal/flows"
	"github.com/loginguard/loginguard/internal/limiters"
	"github.com/loginguard/loginguard/internal/stores"
	"github.com/loginguard/loginguard/jwt"
)

// Engine defines a public type used by loginguard APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config          Config
	credentialStore CredentialStore
	attempts        *limiters.AttemptTracker
	captchaStore    *stores.CaptchaStore
	revocations     *stores.RevocationStore
	audit           *internalaudit.Dispatcher
	metrics         *Metrics
	passwordHash    PasswordHasher
	captchaRenderer CaptchaRenderer
	jwtManager      *jwt.Manager
	flows           flows.Service
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) emitAudit(ctx context.Context, event string, success bool, username string, userID int64, failure error, meta func() map[string]string) {
	if e == nil || e.audit == nil {
		return
	}

	var errStr string
	if failure != nil {
		errStr = failure.Error()
	}
	var metadata map[string]string
	if meta != nil {
		metadata = meta()
	}

	e.audit.Emit(ctx, internalaudit.Event{
		Timestamp: time.Now(),
		EventType: event,
		Username:  username,
		UserID:    userID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Error:     errStr,
		Metadata:  metadata,
	})
}

// storeDegraded records a backend outage. The flow that reported it has
// already continued with its fail-open value.
func (e *Engine) storeDegraded(ctx context.Context, err error) {
	e.metricInc(MetricStoreDegraded)
	e.emitAudit(ctx, EventStoreDegraded, false, "", 0, err, nil)
}

func (e *Engine) newLockedError(remaining time.Duration) error {
	seconds := int64(remaining.Round(time.Second) / time.Second)
	if seconds <= 0 {
		seconds = 1
	}
	return &LockedError{RemainingSeconds: seconds}
}

// mapTokenError converts jwt/v5 parse failures into the package sentinels.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	case errors.Is(err, jwtlib.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
}

func (e *Engine) findCredentialRecord(ctx context.Context, username string) (*flows.CredentialRecord, error) {
	cred, err := e.credentialStore.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrCredentialNotFound
	}
	return &flows.CredentialRecord{
		ID:           cred.ID,
		Username:     cred.Username,
		PasswordHash: cred.PasswordHash,
		Enabled:      cred.Enabled,
	}, nil
}

func (e *Engine) issueTokenPair(ctx context.Context, userID int64, username string, rememberMe bool) (*flows.LoginResult, error) {
	access, err := e.jwtManager.Issue(userID, username, jwt.KindAccess)
	if err != nil {
		return nil, err
	}

	refreshTTL := e.jwtManager.RefreshTTL()
	if rememberMe && e.config.Token.RememberMeRefreshTTL > 0 {
		refreshTTL = e.config.Token.RememberMeRefreshTTL
	}
	refresh, err := e.jwtManager.IssueWithTTL(userID, username, jwt.KindRefresh, refreshTTL)
	if err != nil {
		return nil, err
	}

	return &flows.LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    e.jwtManager.AccessTTL(),
	}, nil
}

func (e *Engine) buildFlows() flows.Service {
	loginDeps := flows.LoginDeps{
		MaxAttempts:      e.config.Lockout.MaxAttempts,
		LockDuration:     e.config.Lockout.LockDuration,
		CaptchaThreshold: e.config.Captcha.FailureThreshold,

		IsLocked:      e.attempts.IsLocked,
		LockRemaining: e.attempts.LockRemaining,
		FailureCount:  e.attempts.FailureCount,
		RecordFailure: e.attempts.RecordFailure,
		Lock:          e.attempts.Lock,
		ResetAttempts: e.attempts.Reset,

		ConsumeCaptcha: e.captchaStore.Consume,
		CaptchaMissing: func(err error) bool {
			return errors.Is(err, stores.ErrCaptchaNotFound)
		},

		FindCredential:     e.findCredentialRecord,
		CredentialNotFound: ErrCredentialNotFound,
		VerifyPassword:     e.passwordHash.Verify,

		IssueTokens: e.issueTokenPair,

		MetricInc: func(id int) { e.metricInc(MetricID(id)) },
		EmitAudit: e.emitAudit,
		Degraded:  e.storeDegraded,

		Metrics: flows.LoginMetrics{
			LoginSuccess:     int(MetricLoginSuccess),
			LoginFailure:     int(MetricLoginFailure),
			LoginLocked:      int(MetricLoginLocked),
			LockoutTriggered: int(MetricLockoutTriggered),
			CaptchaRequired:  int(MetricCaptchaRequired),
			CaptchaFailure:   int(MetricCaptchaFailure),
			StoreDegraded:    int(MetricStoreDegraded),
		},
		Events: flows.LoginEvents{
			LoginSuccess:    EventLoginSuccess,
			LoginFailure:    EventLoginFailure,
			LoginLocked:     EventLoginLocked,
			CaptchaRequired: EventCaptchaRequired,
			CaptchaFailure:  EventCaptchaFailure,
			AccountLocked:   EventAccountLocked,
		},
		Errors: flows.LoginErrors{
			EngineNotReady:     ErrEngineNotReady,
			InvalidCredentials: ErrInvalidCredentials,
			AccountDisabled:    ErrAccountDisabled,
			CaptchaRequired:    ErrCaptchaRequired,
			InvalidCaptcha:     ErrInvalidCaptcha,
			Internal:           ErrInternal,
			Locked:             e.newLockedError,
		},
	}

	captchaDeps := flows.CaptchaDeps{
		Length: e.config.Captcha.Length,

		NewKey: func() (string, error) {
			key, err := uuid.NewRandom()
			if err != nil {
				return "", err
			}
			return key.String(), nil
		},
		GenerateText: captcha.GenerateText,
		Render:       e.captchaRenderer.Render,
		SaveAnswer:   e.captchaStore.Save,

		MetricInc: func(id int) { e.metricInc(MetricID(id)) },
		EmitAudit: e.emitAudit,

		Metrics: flows.CaptchaMetrics{
			CaptchaGenerated: int(MetricCaptchaGenerated),
		},
		Events: flows.CaptchaEvents{
			CaptchaGenerated: EventCaptchaGenerated,
		},
		Errors: flows.CaptchaErrors{
			EngineNotReady: ErrEngineNotReady,
			Internal:       ErrInternal,
		},
	}

	validateDeps := flows.ValidateDeps{
		Parse:         e.jwtManager.Parse,
		MapParseError: mapTokenError,
		IsRevoked:     e.revocations.IsRevoked,

		MetricInc: func(id int) { e.metricInc(MetricID(id)) },
		Degraded:  e.storeDegraded,

		Metrics: flows.ValidateMetrics{
			TokenRejected: int(MetricTokenRejected),
		},
		Errors: flows.ValidateErrors{
			EngineNotReady: ErrEngineNotReady,
			TokenRevoked:   ErrTokenRevoked,
		},
	}

	logoutDeps := flows.LogoutDeps{
		Extract:       e.jwtManager.Extract,
		MapParseError: mapTokenError,
		Revoke:        e.revocations.Revoke,

		MetricInc: func(id int) { e.metricInc(MetricID(id)) },
		EmitAudit: e.emitAudit,
		Degraded:  e.storeDegraded,

		Metrics: flows.LogoutMetrics{
			Logout: int(MetricLogout),
		},
		Events: flows.LogoutEvents{
			Logout: EventLogout,
		},
		Errors: flows.LogoutErrors{
			EngineNotReady: ErrEngineNotReady,
		},
	}

	refreshDeps := flows.RefreshDeps{
		Parse:         e.jwtManager.Parse,
		MapParseError: mapTokenError,
		IsRevoked:     e.revocations.IsRevoked,

		FindCredential:     e.findCredentialRecord,
		CredentialNotFound: ErrCredentialNotFound,

		IssueAccess: func(ctx context.Context, userID int64, username string) (string, time.Duration, error) {
			token, err := e.jwtManager.Issue(userID, username, jwt.KindAccess)
			if err != nil {
				return "", 0, err
			}
			return token, e.jwtManager.AccessTTL(), nil
		},

		MetricInc: func(id int) { e.metricInc(MetricID(id)) },
		EmitAudit: e.emitAudit,
		Degraded:  e.storeDegraded,

		Metrics: flows.RefreshMetrics{
			RefreshSuccess: int(MetricRefreshSuccess),
			RefreshFailure: int(MetricRefreshFailure),
			TokenRejected:  int(MetricTokenRejected),
		},
		Events: flows.RefreshEvents{
			RefreshSuccess: EventRefreshSuccess,
			RefreshFailure: EventRefreshFailure,
		},
		Errors: flows.RefreshErrors{
			EngineNotReady:     ErrEngineNotReady,
			TokenInvalid:       ErrTokenInvalid,
			TokenRevoked:       ErrTokenRevoked,
			AccountUnavailable: ErrAccountUnavailable,
			Internal:           ErrInternal,
		},
	}

	return flows.New(flows.Deps{
		Login:    loginDeps,
		Captcha:  captchaDeps,
		Validate: validateDeps,
		Logout:   logoutDeps,
		Refresh:  refreshDeps,
	})
}
