package ai

import (
	"errors"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a model transcript.
type Message struct {
	Role string
	Text string
}

// Provider failure classes. The caller treats both the same way (degrade the
// turn to a fixed apology) but logs them differently.
var (
	ErrRateLimited = errors.New("llm rate limited")
	ErrUnavailable = errors.New("llm unavailable")
)

// SanitizeHistory rewrites a transcript into the shape every hosted provider
// requires: strictly alternating user/assistant roles, starting and ending
// with a user message. Consecutive same-role turns are merged, a leading
// assistant turn is dropped, and a trailing assistant turn is removed.
// Empty-text turns are discarded.
func SanitizeHistory(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		if len(out) == 0 {
			if m.Role == RoleAssistant {
				continue // transcript must open with the user
			}
			out = append(out, m)
			continue
		}
		last := &out[len(out)-1]
		if last.Role == m.Role {
			last.Text = last.Text + "\n" + m.Text
			continue
		}
		out = append(out, m)
	}
	// Must end on a user turn so the model has something to answer.
	for len(out) > 0 && out[len(out)-1].Role == RoleAssistant {
		out = out[:len(out)-1]
	}
	return out
}
