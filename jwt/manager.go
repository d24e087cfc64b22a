package jwt

import (
	"crypto/sha512"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind defines a public type used by loginguard APIs.
//
// TokenKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenKind string

const (
	// KindAccess is an exported constant or variable used by the authentication engine.
	KindAccess TokenKind = "access"
	// KindRefresh is an exported constant or variable used by the authentication engine.
	KindRefresh TokenKind = "refresh"
)

// minKeyBytes is the HS512 block size; shorter keys weaken the HMAC.
const minKeyBytes = 64

var (
	// ErrWeakKey is an exported constant or variable used by the authentication engine.
	ErrWeakKey = errors.New("signing key shorter than 64 bytes (set DeriveWeakKey to stretch it deterministically)")
	// ErrKindMismatch is an exported constant or variable used by the authentication engine.
	ErrKindMismatch = errors.New("unexpected token kind")
)

// Config defines a public type used by loginguard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	SigningKey    []byte
	DeriveWeakKey bool
	Issuer        string
	Leeway        time.Duration
}

// Claims defines a public type used by loginguard APIs.
//
// Claims instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Claims struct {
	UserID   int64     `json:"uid"`
	Username string    `json:"username"`
	Kind     TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// Manager defines a public type used by loginguard APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	config  Config
	key     []byte
	derived bool
}

// NewManager describes the newmanager operation and its observable behavior.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
// NewManager does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if len(cfg.SigningKey) == 0 {
		return nil, errors.New("signing key required")
	}

	m := &Manager{config: cfg, key: cfg.SigningKey}
	if len(cfg.SigningKey) < minKeyBytes {
		if !cfg.DeriveWeakKey {
			return nil, ErrWeakKey
		}
		sum := sha512.Sum512(cfg.SigningKey)
		m.key = sum[:]
		m.derived = true
	}

	return m, nil
}

// KeyDerived reports whether the effective key was stretched from a weak
// configured key.
func (m *Manager) KeyDerived() bool {
	return m.derived
}

// AccessTTL describes the accessttl operation and its observable behavior.
func (m *Manager) AccessTTL() time.Duration {
	return m.config.AccessTTL
}

// RefreshTTL describes the refreshttl operation and its observable behavior.
func (m *Manager) RefreshTTL() time.Duration {
	return m.config.RefreshTTL
}

// Issue describes the issue operation and its observable behavior.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Issue(userID int64, username string, kind TokenKind) (string, error) {
	ttl := m.config.AccessTTL
	if kind == KindRefresh {
		ttl = m.config.RefreshTTL
	}
	return m.IssueWithTTL(userID, username, kind, ttl)
}

// IssueWithTTL issues a token with an explicit lifetime. Used for the
// remember-me refresh extension; all other call sites go through [Manager.Issue].
func (m *Manager) IssueWithTTL(userID int64, username string, kind TokenKind, ttl time.Duration) (string, error) {
	if kind != KindAccess && kind != KindRefresh {
		return "", ErrKindMismatch
	}
	if ttl <= 0 {
		return "", errors.New("invalid token ttl")
	}

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    m.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(m.key)
}

// Parse verifies signature and expiry and returns the claim set.
// Errors surface the underlying jwt/v5 sentinels (jwt.ErrTokenMalformed,
// jwt.ErrTokenExpired, jwt.ErrTokenSignatureInvalid) for callers to map.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, true)
}

// Extract verifies the signature but skips claim validation, so expired
// tokens still yield their claims. Used for revocation (remaining lifetime)
// after the token has otherwise been validated.
func (m *Manager) Extract(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, false)
}

func (m *Manager) parse(tokenStr string, validateClaims bool) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
	}
	if !validateClaims {
		options = append(options, jwt.WithoutClaimsValidation())
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if validateClaims && m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || (validateClaims && !token.Valid) {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
