package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
)

const (
	CtxSessionID = "session_id"
	CtxIdentity  = "identity"
)

// SessionID returns the session id set by the session middleware.
func SessionID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxSessionID))
}

// CurrentIdentity returns the logged-in identity set by the session
// middleware.
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
