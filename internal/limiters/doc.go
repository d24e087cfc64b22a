// Package limiters tracks login failures and account locks on Redis.
//
// # Components
//
//   - [AttemptTracker] — per-username failure counter with a rolling window
//     TTL, plus a separate self-expiring lock marker.
//
// Counters use atomic INCR with an EXPIRE on the first hit in the window;
// the lock marker is a plain SET with TTL, so concurrent threshold observers
// setting it twice is harmless.
//
// # Degraded mode
//
// Every method returns a usable fallback value alongside a wrapped
// [ErrAttemptsUnavailable] when Redis is unreachable: lock checks read as
// unlocked, counts read as zero, and RecordFailure reports a count of one.
// Callers keep the login path alive and surface the degradation through
// metrics/audit instead of failing the request.
//
// # What this package must NOT do
//
//   - Decide consequences — the flow layer converts counts into locks and
//     errors.
//   - Import loginguard or any sibling internal package.
package limiters
