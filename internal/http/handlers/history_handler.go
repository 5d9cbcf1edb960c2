// README: History handler exposing recent conversation turns per session.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	history HistoryStore
}

func NewHistoryHandler(history HistoryStore) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// Get handles GET /api/sessions/:sid/history?n=20.
func (h *HistoryHandler) Get(c *gin.Context) {
	sid := c.Param("sid")
	if !isValidID(sid) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	n := 20
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > 50 {
			writeError(c, http.StatusBadRequest, "invalid n")
			return
		}
		n = v
	}
	turns, err := h.history.Recent(c.Request.Context(), sid, n)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"turns": turns})
}
