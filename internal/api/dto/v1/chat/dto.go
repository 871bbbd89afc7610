package chat

// ChatRequest represents a chat message from the portfolio assistant panel.
// Message is untyped so that null and non-string values reach validation.
type ChatRequest struct {
	Message any `json:"message"`
}

// ChatResponse always carries a human-readable reply, failures included
type ChatResponse struct {
	Reply string `json:"reply"`
}
