// Package loginguard provides a username/password authentication core with
// brute-force protection: Redis-backed failure counting with automatic
// time-bounded account locking, a one-shot CAPTCHA gate that activates before
// the lock threshold is reached, and HS512-signed access/refresh tokens with
// a revocation set.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. All shared mutable state (attempt counters, lock markers,
// captcha entries, revocation entries) lives in Redis and is manipulated with
// single atomic round-trips; no locks are held across the login state machine.
//
// # Architecture boundaries
//
// loginguard is the public surface. It exposes [Engine], [Builder], [Config],
// collaborator interfaces ([CredentialStore], [PasswordHasher],
// [CaptchaRenderer]) and value types. All internal coordination — flow
// orchestration, attempt tracking, captcha storage, token revocation, audit
// dispatch — lives under internal/ and is never exported.
//
// # Degraded-store behavior
//
// When Redis is unreachable the engine fails open by design: lock and
// revocation checks treat the store as empty, and failure counting assumes a
// count of one. Brute-force protection degrading is preferred over making
// login unavailable; during an outage lockout is delayed and logout may be
// temporarily ineffective. Degraded operations are reported through the audit
// stream and a dedicated metric so operators can alarm on them.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or key layouts in its public API.
//   - Cache lock or attempt state in process memory (Redis is the single
//     source of truth).
//   - Persist users, roles, or audit logs — those belong to the embedding
//     application, reached through the collaborator interfaces and sinks.
package loginguard
