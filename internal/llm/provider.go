package llm

import "context"

// Turn is one entry in the conversation transcript sent to a provider.
// Role is "user", "assistant" or "tool". Assistant turns may carry the
// tool calls the model requested; tool turns carry the result of one call.
type Turn struct {
	Role      string
	Content   string
	ToolCalls []ToolCall
	ToolName  string
}

// ToolCall is a function invocation requested by the model
type ToolCall struct {
	Name string
	Args map[string]any
}

// Param describes one tool parameter for the model
type Param struct {
	Name        string
	Type        string // "string" or "number"
	Description string
	Required    bool
}

// ToolDecl declares a callable tool to the model
type ToolDecl struct {
	Name        string
	Description string
	Params      []Param
}

// Request contains everything a provider needs for one generation round
type Request struct {
	System string
	Turns  []Turn
	Tools  []ToolDecl
}

// Response contains one generation result. Either Text is the final
// reply, or ToolCalls lists the functions the model wants invoked.
type Response struct {
	Text       string
	ToolCalls  []ToolCall
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Generate runs one round of the conversation
	Generate(ctx context.Context, req Request, model string) (*Response, error)
}

// Summarizer produces a short title from raw text. It may fail
// arbitrarily; callers must keep a deterministic local fallback.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
