package middleware

import (
	"net/http"

	"eantienda/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionCookie names the cookie that carries the workspace id
const SessionCookie = "eantienda_session"

const workspaceKey = "workspace"

// Session attaches the caller's workspace to the request, creating one on the
// first visit. The workspace stays locked until the handler chain returns.
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		ws, created := manager.Acquire(id)
		if created {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    ws.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		_ = ws.Do(func(ws *session.Workspace) error {
			c.Set(workspaceKey, ws)
			c.Next()
			return nil
		})
	}
}

// Workspace returns the workspace attached by Session
func Workspace(c *gin.Context) *session.Workspace {
	return c.MustGet(workspaceKey).(*session.Workspace)
}
