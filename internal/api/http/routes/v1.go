package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/api/http/middleware"
	authhttp "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/http"
	authmw "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/middleware"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/service"
	portfoliohttp "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/http"
	settingshttp "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/http"
)

type V1Deps struct {
	Auth      *service.AuthService
	AuthHTTP  *authhttp.Handler
	Portfolio *portfoliohttp.Handler
	Settings  *settingshttp.Handler

	// ExportRatePerMinute bounds renders across all users.
	ExportRatePerMinute int
}

// RegisterV1 mounts the /api/v1 tree:
//
//	/auth       login is public, the rest needs a session
//	/portfolio  any signed-in user
//	/admin      admin sessions only
func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	requireSession := authmw.RequireSession(dep.Auth)

	dep.AuthHTTP.Register(api.Group("/auth"), requireSession)

	portfolio := api.Group("/portfolio", requireSession)
	dep.Portfolio.Register(portfolio, middleware.RateLimit(dep.ExportRatePerMinute))

	admin := api.Group("/admin", requireSession, authmw.RequireAdmin())
	dep.Settings.Register(admin)
	dep.AuthHTTP.RegisterAdmin(admin)
}
