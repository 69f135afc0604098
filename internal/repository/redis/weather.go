package redis

import (
	"context"
	"strings"
	"time"
)

const weatherCachePrefix = "weather:"

// WeatherCache holds recent WeatherAPI responses so repeated questions
// about the same district within the TTL skip the upstream call.
type WeatherCache struct {
	client *Client
	ttl    time.Duration
}

// NewWeatherCache creates a weather cache with the given TTL
func NewWeatherCache(client *Client, ttl time.Duration) *WeatherCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &WeatherCache{client: client, ttl: ttl}
}

// Get retrieves a cached weather payload for a location
func (c *WeatherCache) Get(ctx context.Context, location string) (string, bool) {
	data, err := c.client.rdb.Get(ctx, c.key(location)).Result()
	if err != nil {
		return "", false // Cache miss or Redis down; caller fetches fresh
	}
	return data, true
}

// Set caches a weather payload for a location
func (c *WeatherCache) Set(ctx context.Context, location, payload string) error {
	return c.client.rdb.Set(ctx, c.key(location), payload, c.ttl).Err()
}

func (c *WeatherCache) key(location string) string {
	return weatherCachePrefix + strings.ToLower(strings.TrimSpace(location))
}
