package internaldefs

import (
	loginguard "github.com/loginguard/loginguard"
)

// CounterDef defines a public type used by loginguard APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   loginguard.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by loginguard APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   loginguard.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: loginguard.MetricLoginSuccess, Name: "loginguard_login_success_total", Help: "Successful login attempts."},
	{ID: loginguard.MetricLoginFailure, Name: "loginguard_login_failure_total", Help: "Failed login attempts."},
	{ID: loginguard.MetricLoginLocked, Name: "loginguard_login_locked_total", Help: "Login attempts rejected while a lock was active."},
	{ID: loginguard.MetricLockoutTriggered, Name: "loginguard_lockout_triggered_total", Help: "Failure streaks converted into account locks."},
	{ID: loginguard.MetricCaptchaRequired, Name: "loginguard_captcha_required_total", Help: "Login attempts rejected for a missing captcha response."},
	{ID: loginguard.MetricCaptchaGenerated, Name: "loginguard_captcha_generated_total", Help: "Generated captcha challenges."},
	{ID: loginguard.MetricCaptchaFailure, Name: "loginguard_captcha_failure_total", Help: "Rejected captcha responses."},
	{ID: loginguard.MetricLogout, Name: "loginguard_logout_total", Help: "Logout operations."},
	{ID: loginguard.MetricRefreshSuccess, Name: "loginguard_refresh_success_total", Help: "Successful refresh operations."},
	{ID: loginguard.MetricRefreshFailure, Name: "loginguard_refresh_failure_total", Help: "Failed refresh operations."},
	{ID: loginguard.MetricTokenRejected, Name: "loginguard_token_rejected_total", Help: "Tokens rejected during validation."},
	{ID: loginguard.MetricStoreDegraded, Name: "loginguard_store_degraded_total", Help: "Backend outages absorbed in degraded mode."},
}

// HistogramDefs is an exported constant or variable used by the authentication engine.
var HistogramDefs = []HistogramDef{
	{ID: loginguard.MetricValidateLatency, Name: "loginguard_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
