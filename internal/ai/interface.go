package ai

import (
	"context"
)

// CompletionProvider defines the contract for interacting with hosted AI models.
// This interface allows for swapping providers (Bedrock, Gemini, etc.) without
// touching the conversational core.
type CompletionProvider interface {
	// Complete sends a system prompt plus a sanitized multi-turn transcript and
	// returns the raw model text. The transcript must strictly alternate
	// user/assistant roles, starting and ending with a user message; callers are
	// expected to run their history through SanitizeHistory first.
	Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}
