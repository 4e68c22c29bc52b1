package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
)

// SessionCookie carries the session id for browser clients.
const SessionCookie = "portfolio_session"

// SessionResumer validates a session id and refreshes its activity time.
type SessionResumer interface {
	Resume(ctx context.Context, sessionID string) (*domain.Session, error)
}

// RequireSession rejects requests without a live session and stores the
// session's identity in the context.
func RequireSession(sessions SessionResumer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ExtractSessionID(c)
		if id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			c.Abort()
			return
		}

		sess, err := sessions.Resume(c.Request.Context(), id)
		switch {
		case errors.Is(err, domain.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			c.Abort()
			return
		case errors.Is(err, domain.ErrSessionNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			c.Abort()
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
			c.Abort()
			return
		}

		c.Set(auth.CtxSessionID, sess.ID)
		c.Set(auth.CtxIdentity, sess.Identity())
		c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}
		if id.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ExtractSessionID reads a Bearer token first, then the session cookie.
func ExtractSessionID(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}
