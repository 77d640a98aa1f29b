package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// sessionCookie carries the signed session token. The session
	// itself lives server-side; the cookie is only a handle to it.
	sessionCookie = "session"

	// userIDKey is the Gin context key holding the session principal.
	userIDKey = "userId"
)

// sessionMiddleware attaches the session principal to the request
// context when the cookie resolves to a live session. It never rejects
// a request by itself; requireAuth does that for protected routes.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err == nil && token != "" {
		if userID, ok := h.services.Sessions.Resolve(token); ok {
			c.Set(userIDKey, userID)
		}
	}
	c.Next()
}

// requireAuth redirects to the login page when no principal was
// attached. The wrapped handler never runs for an unauthenticated
// request.
func (h *Handler) requireAuth(c *gin.Context) {
	if _, ok := c.Get(userIDKey); !ok {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}

// currentUserID returns the authenticated principal. Only valid behind
// requireAuth.
func (h *Handler) currentUserID(c *gin.Context) int {
	v, _ := c.Get(userIDKey)
	userID, _ := v.(int)
	return userID
}
