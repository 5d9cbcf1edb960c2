// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/http/handlers"
	"voyago/internal/http/middleware"
)

// NewRouter wires middleware and routes onto a gin engine.
func NewRouter(chat *handlers.ChatHandler, prefs *handlers.PrefsHandler, history *handlers.HistoryHandler) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.POST("/api/chat", chat.Chat)
	r.GET("/api/users/:uid/preferences", prefs.Get)
	r.PATCH("/api/users/:uid/preferences", prefs.Update)
	r.GET("/api/sessions/:sid/history", history.Get)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
