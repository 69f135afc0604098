package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/kheti-ai/kheti/internal/llm"
	"google.golang.org/api/option"
)

// Provider implements llm.Provider for Google Gemini
type Provider struct {
	apiKey     string
	model      string
	titleModel string
}

// NewProvider creates a new Gemini provider
func NewProvider(apiKey, model, titleModel string) *Provider {
	if titleModel == "" {
		titleModel = "gemma-3-1b-it"
	}
	return &Provider{
		apiKey:     apiKey,
		model:      model,
		titleModel: titleModel,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) AvailableModels() []string {
	return []string{
		"gemini-2.5-flash",
		"gemini-2.0-flash",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	}
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-2.5-flash"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// Generate runs one round of the conversation, declaring the registered
// tools so the model can request function calls.
func (p *Provider) Generate(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	if model == "" {
		model = p.DefaultModel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(model)
	generativeModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.System)},
	}
	if len(req.Tools) > 0 {
		generativeModel.Tools = buildTools(req.Tools)
	}

	if len(req.Turns) == 0 {
		return nil, fmt.Errorf("empty conversation")
	}

	contents := buildContents(req.Turns)
	last := contents[len(contents)-1]

	cs := generativeModel.StartChat()
	cs.History = contents[:len(contents)-1]

	start := time.Now()
	resp, err := cs.SendMessage(ctx, last.Parts...)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	out := &llm.Response{
		Model:     model,
		LatencyMs: latency,
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			out.Text += string(v)
		case genai.FunctionCall:
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				Name: v.Name,
				Args: v.Args,
			})
		}
	}

	if resp.UsageMetadata != nil {
		out.TokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	return out, nil
}

// Summarize generates a short session title using the small title model
func (p *Provider) Summarize(ctx context.Context, text string) (string, error) {
	if !p.IsConfigured() {
		return "", fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(p.titleModel)
	var temperature float32 = 0.2
	generativeModel.Temperature = &temperature

	resp, err := generativeModel.GenerateContent(ctx, genai.Text(llm.TitlePrompt(text)))
	if err != nil {
		return "", fmt.Errorf("gemini title generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty title response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			output += string(t)
		}
	}

	title := llm.CleanTitle(output)
	if title == "" {
		return "", fmt.Errorf("gemini returned a blank title")
	}
	return title, nil
}

func buildTools(decls []llm.ToolDecl) []*genai.Tool {
	fns := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, d := range decls {
		props := make(map[string]*genai.Schema, len(d.Params))
		var required []string
		for _, param := range d.Params {
			schemaType := genai.TypeString
			if param.Type == "number" {
				schemaType = genai.TypeNumber
			}
			props[param.Name] = &genai.Schema{
				Type:        schemaType,
				Description: param.Description,
			}
			if param.Required {
				required = append(required, param.Name)
			}
		}

		fn := &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
		}
		if len(props) > 0 {
			fn.Parameters = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   required,
			}
		}
		fns = append(fns, fn)
	}

	return []*genai.Tool{{FunctionDeclarations: fns}}
}

func buildContents(turns []llm.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case "assistant":
			parts := []genai.Part{}
			if turn.Content != "" {
				parts = append(parts, genai.Text(turn.Content))
			}
			for _, call := range turn.ToolCalls {
				parts = append(parts, genai.FunctionCall{
					Name: call.Name,
					Args: call.Args,
				})
			}
			contents = append(contents, &genai.Content{Role: "model", Parts: parts})
		case "tool":
			contents = append(contents, &genai.Content{
				Role: "function",
				Parts: []genai.Part{genai.FunctionResponse{
					Name:     turn.ToolName,
					Response: map[string]any{"output": turn.Content},
				}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(turn.Content)},
			})
		}
	}
	return contents
}
