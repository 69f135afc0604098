package llm_test

import (
	"strings"
	"testing"
	"time"

	"github.com/kheti-ai/kheti/internal/llm"
)

func TestSystemPrompt(t *testing.T) {
	prompt := llm.SystemPrompt(time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC))

	mustContain := []string{
		"Kheti",
		"Indian farmers",
		"Malayalam",
		"Hindi",
		"Sorry, information not available.",
		"July 14, 2025",
	}

	for _, s := range mustContain {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt should contain %q", s)
		}
	}
}

func TestTitlePrompt(t *testing.T) {
	prompt := llm.TitlePrompt("How do I grow wheat?")

	if !strings.Contains(prompt, "How do I grow wheat?") {
		t.Error("prompt should contain the user message")
	}
	if !strings.Contains(prompt, "3-7 words") {
		t.Error("prompt should contain the length instruction")
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain", "Weather forecast for Delhi", "Weather forecast for Delhi"},
		{"quoted", `"Weather forecast for Delhi"`, "Weather forecast for Delhi"},
		{"prefixed", "Title: Growing tomatoes", "Growing tomatoes"},
		{"multiline", "Pest control for cotton\nExtra commentary", "Pest control for cotton"},
		{"whitespace", "  Best fertilizer for wheat  ", "Best fertilizer for wheat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := llm.CleanTitle(tt.raw); got != tt.expected {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestFallbackTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			"short message unchanged",
			"What's the weather in Delhi today?",
			"What's the weather in Delhi today?",
		},
		{
			"long message truncated with ellipsis",
			"I want to know everything about growing sugarcane in Uttar Pradesh this season",
			"I want to know everything about growing sugarcane...",
		},
		{
			"cut at sentence boundary",
			"Tell me about wheat. Also rice and cotton and maize and more beyond fifty",
			"Tell me about wheat...",
		},
		{
			"short with sentence boundary no ellipsis",
			"Wheat advice. Please",
			"Wheat advice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := llm.FallbackTitle(tt.content); got != tt.expected {
				t.Errorf("FallbackTitle(%q) = %q, want %q", tt.content, got, tt.expected)
			}
		})
	}
}
