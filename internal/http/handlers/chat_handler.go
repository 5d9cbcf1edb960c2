// README: Chat handler: the single conversational endpoint.
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/agent"
	"voyago/internal/session"
)

// TurnRouter runs the per-turn pipeline. Satisfied by *agent.Router.
type TurnRouter interface {
	HandleTurn(ctx context.Context, req agent.TurnRequest) agent.TurnResponse
}

// HistoryStore reads and appends conversation turns.
type HistoryStore interface {
	Append(ctx context.Context, sessionID string, turn session.Turn) error
	Recent(ctx context.Context, sessionID string, n int) ([]session.Turn, error)
}

// PrefsStore reads and merges traveler preferences.
type PrefsStore interface {
	Get(ctx context.Context, uid string) (session.Preferences, error)
	Merge(ctx context.Context, uid string, patch session.Patch) error
}

type ChatHandler struct {
	router        TurnRouter
	history       HistoryStore
	prefs         PrefsStore
	historyWindow int
	turnTimeout   time.Duration
}

func NewChatHandler(router TurnRouter, history HistoryStore, prefs PrefsStore, historyWindow int, turnTimeout time.Duration) *ChatHandler {
	if historyWindow <= 0 {
		historyWindow = 5
	}
	if turnTimeout <= 0 {
		turnTimeout = 60 * time.Second
	}
	return &ChatHandler{
		router:        router,
		history:       history,
		prefs:         prefs,
		historyWindow: historyWindow,
		turnTimeout:   turnTimeout,
	}
}

type chatReq struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

type chatResp struct {
	Reply              agent.Reply    `json:"reply"`
	UpdatedPreferences *session.Patch `json:"updated_preferences,omitempty"`
	IntentDebug        *agent.Intent  `json:"intent_debug,omitempty"`
}

// Chat handles POST /api/chat. Store failures around the turn are logged and
// tolerated: a reply the traveler can read beats a 500 over lost history.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.Message == "" || req.SessionID == "" {
		writeError(c, http.StatusBadRequest, "missing message or session_id")
		return
	}
	if !isValidID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}
	if req.UserID != "" && !isValidID(req.UserID) {
		writeError(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.turnTimeout)
	defer cancel()

	history, err := h.history.Recent(ctx, req.SessionID, h.historyWindow)
	if err != nil {
		log.Printf("chat %s: history load failed: %v", req.SessionID, err)
		history = []session.Turn{}
	}

	var prefs session.Preferences
	if req.UserID != "" {
		prefs, err = h.prefs.Get(ctx, req.UserID)
		if err != nil {
			log.Printf("chat %s: prefs load failed: %v", req.SessionID, err)
			prefs = session.Preferences{}
		}
	}

	out := h.router.HandleTurn(ctx, agent.TurnRequest{
		Message:   req.Message,
		SessionID: req.SessionID,
		UserID:    req.UserID,
		History:   history,
		Prefs:     prefs,
	})

	now := time.Now().UTC()
	if err := h.history.Append(ctx, req.SessionID, session.Turn{Role: session.RoleUser, Text: req.Message, Timestamp: now}); err != nil {
		log.Printf("chat %s: append user turn failed: %v", req.SessionID, err)
	}
	if err := h.history.Append(ctx, req.SessionID, session.Turn{Role: session.RoleAssistant, Text: out.Reply.Text, Timestamp: now}); err != nil {
		log.Printf("chat %s: append assistant turn failed: %v", req.SessionID, err)
	}

	if out.UpdatedPrefs != nil && req.UserID != "" {
		if err := h.prefs.Merge(ctx, req.UserID, *out.UpdatedPrefs); err != nil {
			log.Printf("chat %s: prefs merge failed: %v", req.SessionID, err)
			out.UpdatedPrefs = nil
		}
	}

	writeJSON(c, http.StatusOK, chatResp{
		Reply:              out.Reply,
		UpdatedPreferences: out.UpdatedPrefs,
		IntentDebug:        out.Intent,
	})
}
