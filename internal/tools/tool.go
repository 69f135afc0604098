package tools

import (
	"context"

	"github.com/kheti-ai/kheti/internal/llm"
)

// Unavailable is the degraded answer every tool falls back to when its
// data source cannot serve the request.
const Unavailable = "Sorry, information not available."

// Tool is one informational capability the model can invoke by name
type Tool interface {
	// Name returns the tool identifier used in function calls
	Name() string

	// Description tells the model when to use the tool
	Description() string

	// Params declares the accepted arguments
	Params() []llm.Param

	// Call executes the tool with model-supplied arguments
	Call(ctx context.Context, args map[string]any) (string, error)
}
