package constants

// Context keys for validated requests
const (
	ContextKeyChatMessage = "chatMessage"
	ContextKeyContact     = "contact"
	ContextKeyRequestID   = "RequestID"
	ContextKeyRateLimit   = "rateLimit"

	// ContextKeyReplyErrors marks routes whose failures render as {"reply": ...}
	ContextKeyReplyErrors = "replyErrors"
)
