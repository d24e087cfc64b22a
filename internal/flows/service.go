package flows

import "context"

// Service is the centralized flow runner built once by the root engine.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Login.FindCredential != nil
}

func (s Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	return RunLogin(ctx, req, s.deps.Login)
}

func (s Service) CaptchaRequired(ctx context.Context, username string) (bool, error) {
	return RunCaptchaRequired(ctx, username, s.deps.Login)
}

func (s Service) GenerateCaptcha(ctx context.Context) (*CaptchaResult, error) {
	return RunGenerateCaptcha(ctx, s.deps.Captcha)
}

func (s Service) Validate(ctx context.Context, tokenStr string) ValidateResult {
	return RunValidate(ctx, tokenStr, s.deps.Validate)
}

func (s Service) Logout(ctx context.Context, tokenStr string) error {
	return RunLogout(ctx, tokenStr, s.deps.Logout)
}

func (s Service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	return RunRefresh(ctx, refreshToken, s.deps.Refresh)
}
