package ai

import (
	"context"
	"strings"
)

// Message is one role-tagged entry in a chat-completion request.
type Message struct {
	Role    string
	Content string
}

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider defines the contract for the chat-completion gateway.
// This interface allows for swapping different providers (OpenAI-compatible,
// Gemini, etc.) without touching the pipeline that consumes them.
type Provider interface {
	// Complete sends the ordered messages to the model and returns its text reply.
	Complete(ctx context.Context, msgs []Message) (string, error)
}

// CleanJSONString removes markdown code fences if present (e.g. ```json ... ```)
// so model output can be fed straight into json.Unmarshal.
func CleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
