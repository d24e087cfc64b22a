// Package middleware exposes an HTTP middleware adapter for bearer-token
// enforcement built on top of loginguard.Engine validation.
//
// [Guard] reads the Authorization header, calls Engine.ValidateToken, and
// injects the verified claims into the request context for handlers to read
// via [ClaimsFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.ValidateToken.
//
// # What this package must NOT do
//
//   - Parse or create tokens directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from Engine.ValidateToken.
package middleware
