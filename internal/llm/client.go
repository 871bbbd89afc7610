package llm

import (
	"context"
	"errors"
)

// FallbackReply is returned when the provider answers without usable content
const FallbackReply = "Sorry, I couldn't generate a response."

// Client generates a reply to a single user message. Calls are independent:
// no conversation history is kept between them.
type Client interface {
	GenerateReply(ctx context.Context, userMessage, systemPrompt string) (string, error)
}

// Failure classes of a provider call
var (
	ErrNotConfigured = errors.New("llm provider not configured")
	ErrUnauthorized  = errors.New("llm provider rejected credentials")
	ErrRateLimited   = errors.New("llm provider rate limited")
	ErrProviderFault = errors.New("llm provider error")
	ErrUnavailable   = errors.New("llm provider unreachable")
)

// ErrorClass names the failure class of err for logs
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrProviderFault):
		return "provider_fault"
	default:
		return "unavailable"
	}
}
