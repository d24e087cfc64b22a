package loginguard

// Audit event names emitted by the engine. Sinks can switch on these without
// parsing free-form text.
const (
	// EventLoginSuccess is an exported constant or variable used by the authentication engine.
	EventLoginSuccess = "login_success"
	// EventLoginFailure is an exported constant or variable used by the authentication engine.
	EventLoginFailure = "login_failure"
	// EventLoginLocked is an exported constant or variable used by the authentication engine.
	EventLoginLocked = "login_locked"
	// EventCaptchaRequired is an exported constant or variable used by the authentication engine.
	EventCaptchaRequired = "login_captcha_required"
	// EventCaptchaFailure is an exported constant or variable used by the authentication engine.
	EventCaptchaFailure = "login_captcha_failure"
	// EventCaptchaGenerated is an exported constant or variable used by the authentication engine.
	EventCaptchaGenerated = "captcha_generated"
	// EventAccountLocked is an exported constant or variable used by the authentication engine.
	EventAccountLocked = "account_locked"
	// EventLogout is an exported constant or variable used by the authentication engine.
	EventLogout = "logout"
	// EventRefreshSuccess is an exported constant or variable used by the authentication engine.
	EventRefreshSuccess = "token_refresh_success"
	// EventRefreshFailure is an exported constant or variable used by the authentication engine.
	EventRefreshFailure = "token_refresh_failure"
	// EventStoreDegraded is an exported constant or variable used by the authentication engine.
	EventStoreDegraded = "store_degraded"
)
