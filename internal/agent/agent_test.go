package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kheti-ai/kheti/internal/llm"
	"github.com/kheti-ai/kheti/internal/tools"
)

type scriptedProvider struct {
	responses []*llm.Response
	requests  []llm.Request
	err       error
}

func (p *scriptedProvider) Name() string              { return "scripted" }
func (p *scriptedProvider) AvailableModels() []string { return []string{"test-model"} }
func (p *scriptedProvider) DefaultModel() string      { return "test-model" }
func (p *scriptedProvider) IsConfigured() bool        { return true }

func (p *scriptedProvider) Generate(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	resp := p.responses[0]
	if len(p.responses) > 1 {
		p.responses = p.responses[1:]
	}
	return resp, nil
}

type echoTool struct {
	calls []map[string]any
	out   string
	err   error
}

func (t *echoTool) Name() string        { return "weather_data" }
func (t *echoTool) Description() string { return "test tool" }
func (t *echoTool) Params() []llm.Param {
	return []llm.Param{{Name: "district_name", Type: "string", Required: true}}
}
func (t *echoTool) Call(ctx context.Context, args map[string]any) (string, error) {
	t.calls = append(t.calls, args)
	return t.out, t.err
}

func newTestAgent(t *echoTool) *Agent {
	registry := tools.NewRegistry()
	registry.Register(t)
	return New(registry)
}

func TestInvokePlainReply(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{Text: "Namaste! How can I help?", Model: "test-model", TokensUsed: 10},
	}}
	agent := newTestAgent(&echoTool{})

	result, err := agent.Invoke(context.Background(), provider, "test-model", nil, "hello")
	assert.NoError(t, err)
	assert.Equal(t, "Namaste! How can I help?", result.Reply)
	assert.Equal(t, 10, result.TokensUsed)

	// Only the assistant turn is appended to the transcript.
	assert.Len(t, result.Turns, 1)
	assert.Equal(t, "assistant", result.Turns[0].Role)

	// The request carried the user turn and the tool declarations.
	assert.Len(t, provider.requests, 1)
	sent := provider.requests[0]
	assert.Equal(t, "user", sent.Turns[len(sent.Turns)-1].Role)
	assert.Equal(t, "hello", sent.Turns[len(sent.Turns)-1].Content)
	assert.Len(t, sent.Tools, 1)
	assert.NotEmpty(t, sent.System)
}

func TestInvokeResolvesToolCall(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{Name: "weather_data", Args: map[string]any{"district_name": "Pune"}}}, TokensUsed: 5},
		{Text: "It is sunny in Pune.", TokensUsed: 7},
	}}
	tool := &echoTool{out: `{"temp_c":31}`}
	agent := newTestAgent(tool)

	result, err := agent.Invoke(context.Background(), provider, "test-model", nil, "weather in pune?")
	assert.NoError(t, err)
	assert.Equal(t, "It is sunny in Pune.", result.Reply)
	assert.Equal(t, 12, result.TokensUsed)

	// Tool received the model's arguments.
	assert.Len(t, tool.calls, 1)
	assert.Equal(t, "Pune", tool.calls[0]["district_name"])

	// Transcript additions: assistant tool request, tool result, final reply.
	assert.Len(t, result.Turns, 3)
	assert.Equal(t, "assistant", result.Turns[0].Role)
	assert.Equal(t, "tool", result.Turns[1].Role)
	assert.Equal(t, "weather_data", result.Turns[1].ToolName)
	assert.Equal(t, `{"temp_c":31}`, result.Turns[1].Content)
	assert.Equal(t, "assistant", result.Turns[2].Role)

	// Second request saw the tool output.
	second := provider.requests[1]
	assert.Equal(t, "tool", second.Turns[len(second.Turns)-1].Role)
}

func TestInvokeToolErrorBecomesUnavailable(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{Name: "weather_data", Args: map[string]any{}}}},
		{Text: "Sorry, I could not fetch that."},
	}}
	tool := &echoTool{err: errors.New("upstream down")}
	agent := newTestAgent(tool)

	result, err := agent.Invoke(context.Background(), provider, "test-model", nil, "weather?")
	assert.NoError(t, err)
	assert.Equal(t, tools.Unavailable, result.Turns[1].Content)
}

func TestInvokeUnknownToolBecomesUnavailable(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{Name: "no_such_tool", Args: map[string]any{}}}},
		{Text: "done"},
	}}
	agent := newTestAgent(&echoTool{})

	result, err := agent.Invoke(context.Background(), provider, "test-model", nil, "hi")
	assert.NoError(t, err)
	assert.Equal(t, tools.Unavailable, result.Turns[1].Content)
}

func TestInvokeBoundedRounds(t *testing.T) {
	// A provider that always wants another tool call until tools are
	// withdrawn, then answers.
	provider := &endlessToolProvider{}
	agent := newTestAgent(&echoTool{out: "data"})

	result, err := agent.Invoke(context.Background(), provider, "test-model", nil, "loop")
	assert.NoError(t, err)
	assert.Equal(t, "final answer", result.Reply)
	assert.Equal(t, MaxToolRounds+1, provider.rounds)
}

func TestInvokeHistoryPrecedesUserTurn(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{{Text: "ok"}}}
	agent := newTestAgent(&echoTool{})

	history := []llm.Turn{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}
	_, err := agent.Invoke(context.Background(), provider, "test-model", history, "new question")
	assert.NoError(t, err)

	sent := provider.requests[0]
	assert.Len(t, sent.Turns, 3)
	assert.Equal(t, "earlier question", sent.Turns[0].Content)
	assert.Equal(t, "new question", sent.Turns[2].Content)
}

func TestInvokeProviderError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("quota exceeded")}
	agent := newTestAgent(&echoTool{})

	_, err := agent.Invoke(context.Background(), provider, "test-model", nil, "hi")
	assert.Error(t, err)
}

func TestInvokeEmptyReply(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{{Text: ""}}}
	agent := newTestAgent(&echoTool{})

	_, err := agent.Invoke(context.Background(), provider, "test-model", nil, "hi")
	assert.ErrorIs(t, err, ErrNoReply)
}

type endlessToolProvider struct {
	rounds int
}

func (p *endlessToolProvider) Name() string              { return "endless" }
func (p *endlessToolProvider) AvailableModels() []string { return []string{"test-model"} }
func (p *endlessToolProvider) DefaultModel() string      { return "test-model" }
func (p *endlessToolProvider) IsConfigured() bool        { return true }

func (p *endlessToolProvider) Generate(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	p.rounds++
	if len(req.Tools) == 0 {
		return &llm.Response{Text: "final answer"}, nil
	}
	return &llm.Response{
		ToolCalls: []llm.ToolCall{{Name: "weather_data", Args: map[string]any{"district_name": "x"}}},
	}, nil
}
