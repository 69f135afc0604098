package agent

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kheti-ai/kheti/internal/llm"
	"github.com/kheti-ai/kheti/internal/tools"
)

// MaxToolRounds bounds how many tool-call rounds one user message may
// trigger before the loop gives up and asks for a direct answer.
const MaxToolRounds = 5

var ErrNoReply = errors.New("model returned no reply")

// Result is the outcome of one agent invocation
type Result struct {
	Reply      string
	Turns      []llm.Turn // transcript additions: assistant and tool turns
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Agent runs the tool-calling loop: send the transcript, execute any
// requested tools, feed results back, repeat until the model answers
// in plain text.
type Agent struct {
	registry *tools.Registry
}

func New(registry *tools.Registry) *Agent {
	return &Agent{registry: registry}
}

// Invoke sends history plus the new user message through the provider
// and resolves tool calls until a final text reply arrives. The
// returned Turns contain everything appended after the user turn, so
// callers can persist the full exchange.
func (a *Agent) Invoke(ctx context.Context, provider llm.Provider, model string, history []llm.Turn, userText string) (*Result, error) {
	start := time.Now()

	turns := make([]llm.Turn, 0, len(history)+2)
	turns = append(turns, history...)
	turns = append(turns, llm.Turn{Role: "user", Content: userText})

	req := llm.Request{
		System: llm.SystemPrompt(time.Now()),
		Tools:  a.registry.Declarations(),
	}

	result := &Result{Model: model}

	for round := 0; round <= MaxToolRounds; round++ {
		if round == MaxToolRounds {
			// Out of rounds: retract the tool set so the model has
			// to answer with what it already gathered.
			req.Tools = nil
		}
		req.Turns = turns

		resp, err := provider.Generate(ctx, req, model)
		if err != nil {
			return nil, err
		}
		result.Model = resp.Model
		result.TokensUsed += resp.TokensUsed

		if len(resp.ToolCalls) == 0 {
			if resp.Text == "" {
				return nil, ErrNoReply
			}
			result.Reply = resp.Text
			result.Turns = append(result.Turns, llm.Turn{Role: "assistant", Content: resp.Text})
			result.LatencyMs = time.Since(start).Milliseconds()
			return result, nil
		}

		assistant := llm.Turn{Role: "assistant", Content: resp.Text, ToolCalls: resp.ToolCalls}
		turns = append(turns, assistant)
		result.Turns = append(result.Turns, assistant)

		for _, call := range resp.ToolCalls {
			output, err := a.registry.Dispatch(ctx, call.Name, call.Args)
			if err != nil {
				log.Warn().Err(err).Str("tool", call.Name).Msg("tool call failed")
				output = tools.Unavailable
			}
			toolTurn := llm.Turn{Role: "tool", ToolName: call.Name, Content: output}
			turns = append(turns, toolTurn)
			result.Turns = append(result.Turns, toolTurn)
		}
	}

	return nil, ErrNoReply
}
