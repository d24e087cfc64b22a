package flows

import "context"

// CaptchaResult is the flow-local challenge payload.
type CaptchaResult struct {
	Key   string
	Text  string
	Image []byte
}

// CaptchaMetrics carries metric IDs needed by the captcha flow.
type CaptchaMetrics struct {
	CaptchaGenerated int
}

// CaptchaEvents carries audit event names used by the captcha flow.
type CaptchaEvents struct {
	CaptchaGenerated string
}

// CaptchaErrors carries host-level sentinel errors used by the captcha flow.
type CaptchaErrors struct {
	EngineNotReady error
	Internal       error
}

// CaptchaDeps captures challenge-generation dependencies.
type CaptchaDeps struct {
	Length int

	NewKey       func() (string, error)
	GenerateText func(int) (string, error)
	Render       func(string) ([]byte, error)
	SaveAnswer   func(context.Context, string, string) error

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, username string, userID int64, failure error, meta func() map[string]string)

	Metrics CaptchaMetrics
	Events  CaptchaEvents
	Errors  CaptchaErrors
}

// RunGenerateCaptcha creates a new challenge: random text, a stored answer
// under a fresh opaque key, and a rendered image. The answer must be saved
// before the key is handed out, otherwise a fast client could submit against
// a key the store has never seen.
func RunGenerateCaptcha(ctx context.Context, deps CaptchaDeps) (*CaptchaResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, int64, error, func() map[string]string) {}
	}
	if deps.NewKey == nil || deps.GenerateText == nil || deps.Render == nil || deps.SaveAnswer == nil {
		return nil, deps.Errors.EngineNotReady
	}

	key, err := deps.NewKey()
	if err != nil {
		return nil, deps.Errors.Internal
	}
	text, err := deps.GenerateText(deps.Length)
	if err != nil {
		return nil, deps.Errors.Internal
	}
	if err := deps.SaveAnswer(ctx, key, text); err != nil {
		return nil, deps.Errors.Internal
	}
	image, err := deps.Render(text)
	if err != nil {
		return nil, deps.Errors.Internal
	}

	deps.MetricInc(deps.Metrics.CaptchaGenerated)
	deps.EmitAudit(ctx, deps.Events.CaptchaGenerated, true, "", 0, nil, nil)
	return &CaptchaResult{Key: key, Text: text, Image: image}, nil
}
