package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kheti-ai/kheti/internal/llm"
	"github.com/kheti-ai/kheti/internal/repository/redis"
	"github.com/rs/zerolog/log"
)

const weatherAPIBase = "http://api.weatherapi.com/v1/current.json"

// WeatherTool fetches current conditions for an Indian district from
// WeatherAPI, caching responses in Redis.
type WeatherTool struct {
	apiKey string
	cache  *redis.WeatherCache
	client *http.Client
}

// NewWeatherTool creates the weather tool. cache may be nil.
func NewWeatherTool(apiKey string, cache *redis.WeatherCache) *WeatherTool {
	return &WeatherTool{
		apiKey: apiKey,
		cache:  cache,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *WeatherTool) Name() string {
	return "weather_data"
}

func (t *WeatherTool) Description() string {
	return "Fetch current weather for a district or city in India. Use for any question about weather, rain, temperature or humidity."
}

func (t *WeatherTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "district_name", Type: "string", Description: "Name of the district or city", Required: true},
	}
}

func (t *WeatherTool) Call(ctx context.Context, args map[string]any) (string, error) {
	district := stringArg(args, "district_name")
	if district == "" {
		return Unavailable, nil
	}

	if t.apiKey == "" {
		return "Weather API key not configured.", nil
	}

	if t.cache != nil {
		if cached, ok := t.cache.Get(ctx, district); ok {
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s?key=%s&q=%s&aqi=no", weatherAPIBase, t.apiKey, url.QueryEscape(district))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Unavailable, nil
	}

	resp, err := t.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("district", district).Msg("weather request failed")
		return Unavailable, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unavailable, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Unavailable, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return Unavailable, nil
	}
	if _, hasError := payload["error"]; hasError {
		return Unavailable, nil
	}

	if t.cache != nil {
		if err := t.cache.Set(ctx, district, string(body)); err != nil {
			log.Warn().Err(err).Msg("failed to cache weather response")
		}
	}

	return string(body), nil
}
