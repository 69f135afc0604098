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

// DefaultENAMURL is the eNAM trade data endpoint
const DefaultENAMURL = "https://enam.gov.in/web/Ajax_ctrl/trade_data_list"

// MandiTool fetches the latest mandi (market) prices for a state from
// the eNAM trade portal.
type MandiTool struct {
	endpoint string
	client   *http.Client
}

// NewMandiTool creates the mandi price tool. An empty endpoint uses the
// public eNAM portal.
func NewMandiTool(endpoint string) *MandiTool {
	if endpoint == "" {
		endpoint = DefaultENAMURL
	}
	return &MandiTool{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *MandiTool) Name() string {
	return "mandi_prices"
}

func (t *MandiTool) Description() string {
	return "Fetch the latest mandi (agricultural market) prices for an Indian state from the eNAM portal. Use for questions about crop selling prices or market rates."
}

func (t *MandiTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "state_name", Type: "string", Description: "Name of the Indian state, e.g. RAJASTHAN", Required: true},
	}
}

func (t *MandiTool) Call(ctx context.Context, args map[string]any) (string, error) {
	state := stringArg(args, "state_name")
	if state == "" {
		return Unavailable, nil
	}

	now := time.Now()
	form := url.Values{
		"stateName":     {strings.ToUpper(state)},
		"apmcName":      {"-- Select APMCs --"},
		"commodityName": {"-- Select Commodity --"},
		"fromDate":      {now.AddDate(0, 0, -1).Format("2006-01-02")},
		"toDate":        {now.Format("2006-01-02")},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Unavailable, nil
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("state", state).Msg("mandi price request failed")
		return Unavailable, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unavailable, nil
	}

	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Unavailable, nil
	}
	if len(payload.Data) == 0 {
		return Unavailable, nil
	}

	out, err := json.Marshal(payload.Data)
	if err != nil {
		return Unavailable, nil
	}
	return string(out), nil
}
