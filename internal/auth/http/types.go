package http

import (
	"go.uber.org/zap"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/service"
)

type Handler struct {
	authService *service.AuthService
	secure      bool
	logger      *zap.Logger
}

// New creates the auth handler. secure marks the session cookie Secure.
func New(authService *service.AuthService, secure bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		authService: authService,
		secure:      secure,
		logger:      logger,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	SessionID       string          `json:"session_id"`
	User            domain.Identity `json:"user"`
	IdleTimeoutSecs int64           `json:"idle_timeout_seconds"`
}

type overrideRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type expiryRequest struct {
	Hours int `json:"hours" binding:"required"`
}
