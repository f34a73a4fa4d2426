package openai

import (
	"fmt"

	"video-seo-backend/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const (
	systemPromptStrict  = "You are a YouTube SEO content engine. Respond with JSON only. No markdown. Never omit keys."
	systemPromptFixJSON = "You are a JSON repair tool. Return only valid JSON that matches the requested structure."
)

// BuildPrompt creates the chat messages for a content suggestion request.
func BuildPrompt(promptVersion, keyword string) []Message {
	return []Message{
		{Role: "system", Content: systemPromptStrict},
		{Role: "user", Content: llm.BuildContentPrompt(promptVersion, keyword)},
	}
}

func buildFixPrompt(raw []byte) []Message {
	return []Message{
		{Role: "system", Content: systemPromptFixJSON},
		{Role: "user", Content: fmt.Sprintf("Fix this JSON so it parses. Output JSON only:\n%s", string(raw))},
	}
}
