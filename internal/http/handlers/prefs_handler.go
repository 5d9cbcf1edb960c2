// README: Preferences handlers for reading and editing a traveler profile.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/session"
)

type PrefsHandler struct {
	prefs PrefsStore
}

func NewPrefsHandler(prefs PrefsStore) *PrefsHandler {
	return &PrefsHandler{prefs: prefs}
}

// Get handles GET /api/users/:uid/preferences.
func (h *PrefsHandler) Get(c *gin.Context) {
	uid := c.Param("uid")
	if !isValidID(uid) {
		writeError(c, http.StatusBadRequest, "invalid uid")
		return
	}
	p, err := h.prefs.Get(c.Request.Context(), uid)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, p)
}

// Update handles PATCH /api/users/:uid/preferences, letting the client apply
// explicit edits with the same merge semantics as detected signals.
func (h *PrefsHandler) Update(c *gin.Context) {
	uid := c.Param("uid")
	if !isValidID(uid) {
		writeError(c, http.StatusBadRequest, "invalid uid")
		return
	}
	var patch session.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if patch.IsZero() {
		writeError(c, http.StatusBadRequest, "empty patch")
		return
	}
	if err := h.prefs.Merge(c.Request.Context(), uid, patch); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	p, err := h.prefs.Get(c.Request.Context(), uid)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, p)
}
