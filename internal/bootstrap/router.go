package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/api/http"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/api/http/middleware"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/api/http/routes"
	authhttp "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/http"
	authservice "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/service"
	portfoliohttp "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/http"
	portfolioservice "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/service"
	settingshttp "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/http"
	settingsservice "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Environment string

	AllowedOrigins      []string
	ExportRatePerMinute int

	DB    *pgxpool.Pool
	Redis *redis.Client

	Auth      *authservice.AuthService
	Settings  *settingsservice.SettingsService
	Portfolio *portfolioservice.ExportService

	Logger *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader, portfoliohttp.HeaderPages, portfoliohttp.HeaderTheme, portfoliohttp.HeaderWarnings},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		Auth:                dep.Auth,
		AuthHTTP:            authhttp.New(dep.Auth, dep.Environment == "production", dep.Logger),
		Portfolio:           portfoliohttp.New(dep.Portfolio, dep.Logger),
		Settings:            settingshttp.New(dep.Settings, dep.Logger),
		ExportRatePerMinute: dep.ExportRatePerMinute,
	})

	return r
}
