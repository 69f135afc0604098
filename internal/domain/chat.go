package domain

// ChatRequest is an inbound chat turn. SessionID is optional: empty means
// a new conversation, an "anon-" prefixed id addresses the in-memory
// registry, anything else a persisted session.
type ChatRequest struct {
	Text      string `json:"text" validate:"required,max=4000"`
	SessionID string `json:"session_id,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	// Persist asks for a stored session when SessionID is empty. Only
	// honored for authenticated callers.
	Persist bool `json:"persist,omitempty"`
}

// ChatResponse carries the generated reply back to the boundary
type ChatResponse struct {
	Reply      string `json:"reply"`
	SessionID  string `json:"session_id"`
	Title      string `json:"title,omitempty"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used,omitempty"`
	LatencyMs  int64  `json:"latency_ms"`
}
