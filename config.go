package loginguard

import (
	"errors"
	"time"
)

// Config defines a public type used by loginguard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token    TokenConfig
	Lockout  LockoutConfig
	Captcha  CaptchaConfig
	Password PasswordConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by loginguard APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// SigningKey is the shared HS512 key. Keys shorter than 64 bytes are
	// rejected at Build unless DeriveWeakKey is set, in which case the key is
	// stretched deterministically with SHA-512 so every instance and restart
	// derives the same effective key.
	SigningKey    []byte
	DeriveWeakKey bool

	Issuer string
	Leeway time.Duration

	// RememberMeRefreshTTL, when > 0, replaces RefreshTTL for logins that set
	// LoginRequest.RememberMe. Zero means the flag is accepted and ignored.
	RememberMeRefreshTTL time.Duration
}

/*
====================================
LOCKOUT CONFIG
====================================
*/

// LockoutConfig defines a public type used by loginguard APIs.
//
// LockoutConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LockoutConfig struct {
	// MaxAttempts is the consecutive-failure count that converts into a lock.
	MaxAttempts  int
	LockDuration time.Duration
	// AttemptWindow is the rolling window TTL set on the first failure.
	AttemptWindow time.Duration
}

// CaptchaConfig defines a public type used by loginguard APIs.
//
// CaptchaConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CaptchaConfig struct {
	// FailureThreshold is the failure count at which a challenge becomes
	// mandatory. It must be strictly lower than Lockout.MaxAttempts so the
	// captcha gate engages before a full lockout.
	FailureThreshold int
	TTL              time.Duration
	// Length is the challenge text length (alphanumeric, ambiguous glyphs
	// excluded).
	Length int
}

// PasswordConfig defines a public type used by loginguard APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// AuditConfig defines a public type used by loginguard APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by loginguard APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			AccessTTL:            30 * time.Minute,
			RefreshTTL:           7 * 24 * time.Hour,
			Leeway:               0,
			RememberMeRefreshTTL: 0,
		},
		Lockout: LockoutConfig{
			MaxAttempts:   5,
			LockDuration:  15 * time.Minute,
			AttemptWindow: time.Hour,
		},
		Captcha: CaptchaConfig{
			FailureThreshold: 3,
			TTL:              5 * time.Minute,
			Length:           5,
		},
		Password: PasswordConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.SigningKey = cloneBytes(cfg.Token.SigningKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Token
	if c.Token.AccessTTL <= 0 {
		return errors.New("Token AccessTTL must be > 0")
	}
	if c.Token.RefreshTTL <= c.Token.AccessTTL {
		return errors.New("Token RefreshTTL must be greater than AccessTTL")
	}
	if c.Token.RememberMeRefreshTTL < 0 {
		return errors.New("Token RememberMeRefreshTTL must be >= 0")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("Token Leeway must be between 0 and 2m")
	}
	if len(c.Token.SigningKey) == 0 {
		return errors.New("Token SigningKey is required")
	}

	// Lockout
	if c.Lockout.MaxAttempts <= 0 {
		return errors.New("Lockout MaxAttempts must be > 0")
	}
	if c.Lockout.LockDuration <= 0 {
		return errors.New("Lockout LockDuration must be > 0")
	}
	if c.Lockout.AttemptWindow <= 0 {
		return errors.New("Lockout AttemptWindow must be > 0")
	}

	// Captcha
	if c.Captcha.FailureThreshold <= 0 {
		return errors.New("Captcha FailureThreshold must be > 0")
	}
	if c.Captcha.FailureThreshold >= c.Lockout.MaxAttempts {
		return errors.New("Captcha FailureThreshold must be strictly lower than Lockout MaxAttempts")
	}
	if c.Captcha.TTL <= 0 {
		return errors.New("Captcha TTL must be > 0")
	}
	if c.Captcha.Length < 4 || c.Captcha.Length > 10 {
		return errors.New("Captcha Length must be between 4 and 10")
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
