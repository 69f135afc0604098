package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kheti-ai/kheti/internal/llm"
	"github.com/rs/zerolog/log"
)

const duckDuckGoAPI = "https://api.duckduckgo.com/"

// PlantInfoTool looks up general information about a plant grown in
// India using the DuckDuckGo instant answer API.
type PlantInfoTool struct {
	client *http.Client
}

func NewPlantInfoTool() *PlantInfoTool {
	return &PlantInfoTool{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *PlantInfoTool) Name() string {
	return "plant_information"
}

func (t *PlantInfoTool) Description() string {
	return "Search for general information about a specific plant grown in India: description, uses, cultivation notes."
}

func (t *PlantInfoTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "plant_name", Type: "string", Description: "Name of the plant to look up", Required: true},
	}
}

func (t *PlantInfoTool) Call(ctx context.Context, args map[string]any) (string, error) {
	plant := strings.TrimSpace(stringArg(args, "plant_name"))
	if plant == "" {
		return Unavailable, nil
	}

	query := url.Values{
		"q":             {plant + " plant information in India"},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, duckDuckGoAPI+"?"+query.Encode(), nil)
	if err != nil {
		return Unavailable, nil
	}

	resp, err := t.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("plant", plant).Msg("plant information request failed")
		return Unavailable, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unavailable, nil
	}

	var payload struct {
		AbstractText  string `json:"AbstractText"`
		AbstractURL   string `json:"AbstractURL"`
		RelatedTopics []struct {
			Text string `json:"Text"`
		} `json:"RelatedTopics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Unavailable, nil
	}

	if payload.AbstractText != "" {
		return payload.AbstractText, nil
	}

	var parts []string
	for _, topic := range payload.RelatedTopics {
		if topic.Text != "" {
			parts = append(parts, topic.Text)
		}
		if len(parts) == 3 {
			break
		}
	}
	if len(parts) == 0 {
		return Unavailable, nil
	}
	return strings.Join(parts, "\n"), nil
}
