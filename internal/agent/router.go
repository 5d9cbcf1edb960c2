// README: Turn router: classification -> slot validation -> data fetch ->
// prompt assembly -> LLM call -> post-processing, for one user turn.
package agent

import (
	"context"
	"log"
	"sync"

	"voyago/internal/ai"
	"voyago/internal/session"
)

// apologyText is the fixed reply used when the language model itself fails.
// It never varies, so clients can detect it and retry if they want.
const apologyText = "Sorry, I'm having trouble putting an answer together right now. Please try again in a moment."

// TurnRequest is one user turn with its loaded session context.
type TurnRequest struct {
	Message   string
	SessionID string
	UserID    string
	History   []session.Turn
	Prefs     session.Preferences
}

// TurnResponse is the processed outcome of one turn. UpdatedPrefs is nil when
// the message carried no preference signals. Intent is always set and is
// intended for debugging surfaces, not for client logic.
type TurnResponse struct {
	Reply        Reply
	UpdatedPrefs *session.Patch
	Intent       *Intent
}

// Router runs the per-turn pipeline. Prior intents are held in memory only,
// keyed by session: they are conversational working state, not data worth
// persisting.
type Router struct {
	llm      ai.CompletionProvider
	dispatch *Dispatcher

	mu         sync.Mutex
	lastIntent map[string]Intent
}

func NewRouter(llm ai.CompletionProvider, dispatch *Dispatcher) *Router {
	return &Router{
		llm:        llm,
		dispatch:   dispatch,
		lastIntent: make(map[string]Intent),
	}
}

// HandleTurn processes one user message end to end. Clarification turns skip
// the data fetch and the language model entirely; provider failures degrade
// inside the fetch; only an LLM failure produces the fixed apology.
func (r *Router) HandleTurn(ctx context.Context, req TurnRequest) TurnResponse {
	prior := r.priorIntent(req.SessionID)
	intent := Classify(req.Message, prior)
	r.rememberIntent(req.SessionID, intent)

	resp := TurnResponse{Intent: &intent}
	if patch := DetectPreferenceSignals(req.Message); !patch.IsZero() {
		resp.UpdatedPrefs = &patch
	}

	check := Validate(intent)
	if !check.Ready {
		log.Printf("turn %s: %s needs %v, asking", req.SessionID, intent.Type, check.Missing)
		resp.Reply = Reply{Text: check.Clarification, UIDirectives: []UIDirective{}}
		return resp
	}

	fr := r.dispatch.Fetch(ctx, intent, firstInterest(req.Prefs))

	prompt := BuildPrompt(intent, fr, req.Prefs, req.History)
	messages := append(historyMessages(req.History), ai.Message{Role: ai.RoleUser, Text: req.Message})
	messages = ai.SanitizeHistory(messages)

	completion, err := r.llm.Complete(ctx, prompt, messages)
	if err != nil {
		log.Printf("turn %s: completion failed: %v", req.SessionID, err)
		resp.Reply = apologyReply(fr)
		return resp
	}

	resp.Reply = PostProcess(completion, fr)
	return resp
}

func (r *Router) priorIntent(sessionID string) *Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.lastIntent[sessionID]; ok {
		return &it
	}
	return nil
}

func (r *Router) rememberIntent(sessionID string, intent Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastIntent[sessionID] = intent
}

// firstInterest picks the interest used to narrow POI searches. The profile
// accumulates interests in detection order, so the first is the oldest signal.
func firstInterest(prefs session.Preferences) string {
	if len(prefs.Interests) == 0 {
		return ""
	}
	return prefs.Interests[0]
}

func historyMessages(turns []session.Turn) []ai.Message {
	msgs := make([]ai.Message, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, ai.Message{Role: t.Role, Text: t.Text})
	}
	return msgs
}

// apologyReply pairs the fixed apology with whatever fallback link the fetch
// produced, so a dead model still leaves the traveler a way forward.
func apologyReply(fr FetchResult) Reply {
	directives := []UIDirective{}
	if fr.FallbackURL != "" {
		directives = append(directives, UIDirective{
			Kind:      "link",
			Label:     fallbackLabel(fr),
			TargetURL: fr.FallbackURL,
		})
	}
	return Reply{Text: apologyText, UIDirectives: directives}
}
