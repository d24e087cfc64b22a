package loginguard

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/loginguard/loginguard/internal/audit"
	"github.com/loginguard/loginguard/jwt"
)

// Credential is the account record returned by [CredentialStore]. The engine
// reads it and never writes it back.
type Credential struct {
	ID           int64
	Username     string
	PasswordHash string
	Enabled      bool
}

// CredentialStore is the interface callers must implement to integrate
// loginguard with their user database. FindByUsername returns
// [ErrCredentialNotFound] when no account exists; any other error is treated
// as an internal failure and never leaks to the login caller.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
}

// PasswordHasher performs one-way password hashing and verification.
// The default implementation is [password.Argon2].
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// CaptchaRenderer renders challenge text to a raster image (PNG bytes).
// The default implementation is [captcha.Renderer].
type CaptchaRenderer interface {
	Render(text string) ([]byte, error)
}

// LoginRequest carries one login attempt. CaptchaKey/CaptchaCode are required
// only once [Engine.CaptchaRequired] reports true for the username.
// RememberMe is accepted always but changes the refresh-token lifetime only
// when [TokenConfig.RememberMeRefreshTTL] is set.
type LoginRequest struct {
	Username    string
	Password    string
	RememberMe  bool
	CaptchaKey  string
	CaptchaCode string
}

// LoginResult is returned by [Engine.Login] and [Engine.Refresh]. ExpiresIn
// is the access-token lifetime.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Captcha is returned by [Engine.GenerateCaptcha]. Key is the opaque handle
// the client must send back alongside its response; Image holds PNG bytes and
// ImageBase64 the same image as a data URI payload.
type Captcha struct {
	Key         string
	Image       []byte
	ImageBase64 string
}

// TokenKind distinguishes access from refresh tokens.
type TokenKind = jwt.TokenKind

const (
	// KindAccess is an exported constant or variable used by the authentication engine.
	KindAccess = jwt.KindAccess
	// KindRefresh is an exported constant or variable used by the authentication engine.
	KindRefresh = jwt.KindRefresh
)

// Claims is the verified claim set of a token: subject, username, kind and
// the issued/expiry instants.
type Claims = jwt.Claims

// SecurityReport is a read-only snapshot of the engine's protection posture,
// returned by [Engine.SecurityReport].
type SecurityReport struct {
	MaxLoginAttempts        int
	LockDuration            time.Duration
	AttemptWindow           time.Duration
	CaptchaFailureThreshold int
	CaptchaTTL              time.Duration
	AccessTTL               time.Duration
	RefreshTTL              time.Duration
	SigningKeyDerived       bool
	RememberMeExtendsTTL    bool
	AuditEnabled            bool
	MetricsEnabled          bool
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
