package llm

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// SystemPrompt builds the Kheti assistant instructions for one request
func SystemPrompt(now time.Time) string {
	var b strings.Builder

	b.WriteString("Identity & Role\n")
	b.WriteString("- Your name is Kheti, an AI assistant specialized in agriculture and farming for Indian farmers.\n\n")

	b.WriteString("Language Preference\n")
	b.WriteString("1. Always respond in English if the user speaks/asks in English.\n")
	b.WriteString("2. If the user speaks in Malayalam, reply in Malayalam.\n")
	b.WriteString("3. If the user speaks in Hindi, reply in Hindi.\n")
	b.WriteString("4. If another Indian language is used, respond in that language if possible.\n\n")

	b.WriteString("Topics Covered\n")
	b.WriteString("- Weather updates\n")
	b.WriteString("- Crop advice\n")
	b.WriteString("- Government schemes for farmers\n\n")

	b.WriteString("Style\n")
	b.WriteString("- Keep answers short, simple, and easy to understand.\n")
	b.WriteString("- Avoid technical jargon.\n")
	b.WriteString("- Use native terms when replying in Malayalam or Hindi, but you may keep common English agricultural words if widely understood.\n\n")

	b.WriteString("Uncertainty Rule\n")
	b.WriteString("- If information is unavailable, reply only with:\n")
	b.WriteString("  - English: \"Sorry, information not available.\"\n")
	b.WriteString("  - Malayalam: \"ക്ഷമിക്കണം, വിവരങ്ങൾ ലഭ്യമല്ല.\"\n")
	b.WriteString("  - Hindi: \"क्षमा करें, जानकारी उपलब्ध नहीं है।\"\n\n")

	b.WriteString("Tools\n")
	b.WriteString("- Use live tools for weather, crop advice, and schemes.\n")
	b.WriteString("- If tools return \"Sorry, information not available.\", respond with the same in the user's language.\n\n")

	fmt.Fprintf(&b, "Date Context\n- Always be aware of today's date: %s.\n", now.Format("January 2, 2006"))

	return b.String()
}

// TitlePrompt builds the instruction for generating a short session title
// from the user's first message.
func TitlePrompt(userMessage string) string {
	return fmt.Sprintf(`Task: Generate a short, descriptive title for a chat conversation.

Instructions:
- Output ONLY the title text, nothing else
- Keep it 3-7 words maximum
- Use sentence case (capitalize first word only)
- No quotes, no punctuation at the end
- Make it clear and descriptive

Examples:
Input: "What's the weather in Delhi today?"
Output: Weather forecast for Delhi

Input: "How do I grow tomatoes in the monsoon season?"
Output: Growing tomatoes in monsoon

Input: "Which fertilizer is best for wheat crops?"
Output: Best fertilizer for wheat

Input: "Tell me about pest control methods for cotton"
Output: Pest control for cotton

Input: "Government schemes for farmers"
Output: Government schemes for farmers

Now generate a title for this input:
Input: "%s"
Output:`, userMessage)
}

// CleanTitle normalizes raw model output into a usable title
func CleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)
	title = strings.TrimSpace(title)

	if len(title) >= 6 && strings.EqualFold(title[:6], "title:") {
		title = strings.TrimSpace(title[6:])
	}

	// Keep only the first line in case the model rambles.
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}

	if utf8.RuneCountInString(title) > 60 {
		runes := []rune(title)
		title = strings.TrimSpace(string(runes[:60]))
	}

	return title
}

// FallbackTitle derives a deterministic title from a message when the
// summarizer is unavailable: the first 50 characters, cut at the first
// sentence boundary if one comes earlier, with an ellipsis appended when
// the message was truncated.
func FallbackTitle(content string) string {
	runes := []rune(content)
	truncated := len(runes) > 50
	if truncated {
		runes = runes[:50]
	}

	title := string(runes)
	if i := strings.IndexByte(title, '.'); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)

	if truncated {
		title += "..."
	}
	return title
}
