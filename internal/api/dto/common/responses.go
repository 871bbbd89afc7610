package common

// ErrorResponse is the body of every failed contact request
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the liveness check
type HealthResponse struct {
	Status string `json:"status"`
}

// Client-visible messages. Responses only ever carry one of these strings,
// never raw error text.
const (
	MsgInvalidBody       = "Invalid request body"
	MsgMissingFields     = "Missing required fields"
	MsgInvalidEmail      = "Invalid email format"
	MsgTooManyContacts   = "Too many contact form submissions, please try again later."
	MsgCaptchaRejected   = "CAPTCHA verification failed. Please try again."
	MsgCaptchaError      = "CAPTCHA verification error"
	MsgSendEmailFailed   = "Failed to send email"
	MsgInternalError     = "Internal server error"
	MsgRequestTooLarge   = "Request body too large"
	MsgEmptyChat         = "Please provide a message so I can respond."
	MsgChatTooLong       = "That message is too long. Please shorten it and try again."
	MsgChatNotConfigured = "AI service not configured. Please contact the site owner."
	MsgChatUnavailable   = "I'm having trouble connecting right now. Please try again in a moment or use the contact form below!"
)

// NewErrorResponse creates a new error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
