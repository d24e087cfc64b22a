// Package stores implements the Redis-backed short-lived state used by the
// authentication flows: one-shot captcha answers and the revoked-token set.
//
// Both stores treat a Redis outage as degraded rather than fatal. Reads fall
// open (captcha lookups miss, revocation checks pass) and each method returns
// the degraded value alongside a wrapped unavailability sentinel so callers
// can count the outage without changing their control flow.
package stores
