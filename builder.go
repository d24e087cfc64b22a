package loginguard

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/loginguard/loginguard/captcha"
	internalaudit "github.com/loginguard/loginguard/internal/audit"
	"github.com/loginguard/loginguard/internal/limiters"
	"github.com/loginguard/loginguard/internal/stores"
	"github.com/loginguard/loginguard/jwt"
	"github.com/loginguard/loginguard/password"
)

// Builder defines a public type used by loginguard APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	credentialStore CredentialStore
	passwordHasher  PasswordHasher
	captchaRenderer CaptchaRenderer
	auditSink       AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithCredentialStore describes the withcredentialstore operation and its observable behavior.
//
// WithCredentialStore may return an error when input validation, dependency calls, or security checks fail.
// WithCredentialStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCredentialStore(store CredentialStore) *Builder {
	b.credentialStore = store
	return b
}

// WithPasswordHasher describes the withpasswordhasher operation and its observable behavior.
//
// WithPasswordHasher may return an error when input validation, dependency calls, or security checks fail.
// WithPasswordHasher does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithPasswordHasher(hasher PasswordHasher) *Builder {
	b.passwordHasher = hasher
	return b
}

// WithCaptchaRenderer describes the withcaptcharenderer operation and its observable behavior.
//
// WithCaptchaRenderer may return an error when input validation, dependency calls, or security checks fail.
// WithCaptchaRenderer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCaptchaRenderer(renderer CaptchaRenderer) *Builder {
	b.captchaRenderer = renderer
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.credentialStore == nil {
		return nil, errors.New("credential store required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine := &Engine{
		config:          cloneConfig(cfg),
		credentialStore: b.credentialStore,
	}

	engine.attempts = limiters.NewAttemptTracker(b.redis, limiters.AttemptConfig{
		AttemptWindow: cfg.Lockout.AttemptWindow,
	})
	engine.captchaStore = stores.NewCaptchaStore(b.redis, cfg.Captcha.TTL)
	engine.revocations = stores.NewRevocationStore(b.redis)
	engine.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	if b.passwordHasher != nil {
		engine.passwordHash = b.passwordHasher
	} else {
		ph, err := password.NewArgon2(password.Config{
			Memory:      cfg.Password.Memory,
			Time:        cfg.Password.Time,
			Parallelism: cfg.Password.Parallelism,
			SaltLength:  cfg.Password.SaltLength,
			KeyLength:   cfg.Password.KeyLength,
		})
		if err != nil {
			return nil, err
		}
		engine.passwordHash = ph
	}

	if b.captchaRenderer != nil {
		engine.captchaRenderer = b.captchaRenderer
	} else {
		engine.captchaRenderer = captcha.NewRenderer()
	}

	jm, err := jwt.NewManager(jwt.Config{
		AccessTTL:     cfg.Token.AccessTTL,
		RefreshTTL:    cfg.Token.RefreshTTL,
		SigningKey:    cloneBytes(cfg.Token.SigningKey),
		DeriveWeakKey: cfg.Token.DeriveWeakKey,
		Issuer:        cfg.Token.Issuer,
		Leeway:        cfg.Token.Leeway,
	})
	if err != nil {
		return nil, err
	}
	engine.jwtManager = jm

	engine.flows = engine.buildFlows()

	b.built = true

	return engine, nil
}
