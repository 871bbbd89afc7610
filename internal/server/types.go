package server

import (
	"github.com/osa911/portfolio-backend/internal/api/handlers"
	"github.com/osa911/portfolio-backend/internal/api/validation"
	"github.com/osa911/portfolio-backend/internal/ratelimit"
)

// Dependencies holds the collaborators the request pipeline calls into
type Dependencies struct {
	Validator *validation.Validator
	Limiter   *ratelimit.Limiter
	Chat      handlers.ChatReplier
	Captcha   handlers.CaptchaVerifier
	Mailer    handlers.Mailer
}
