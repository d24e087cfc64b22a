// Package jwt wraps HS512 token signing and verification for the
// authentication engine.
//
// # Components
//
//   - [Manager] — issues and parses access/refresh tokens from a single
//     process-wide key.
//   - [Claims] — the deterministic claim set: subject (user id), username,
//     kind, issued-at, expiry.
//
// # Key policy
//
// HS512 keys shorter than 64 bytes are rejected at construction unless
// Config.DeriveWeakKey is set, in which case the configured key is stretched
// deterministically with SHA-512. Derivation is stable across instances and
// restarts; [Manager.KeyDerived] exposes whether it happened so operators can
// be told.
//
// # What this package must NOT do
//
//   - Consult the revocation set — revocation is storage, owned by the engine.
//   - Import loginguard or any sibling internal package.
package jwt
