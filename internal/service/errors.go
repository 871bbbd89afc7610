package service

import "errors"

// Sentinel errors for the request pipeline. Handlers classify with errors.Is
// and answer with a fixed client message; the wrapped detail is only logged.
var (
	ErrValidation            = errors.New("validation error")
	ErrRateLimited           = errors.New("rate limit exceeded")
	ErrCaptchaRejected       = errors.New("captcha rejected")
	ErrCaptchaUnavailable    = errors.New("captcha provider unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrNotConfigured         = errors.New("not configured")
)
