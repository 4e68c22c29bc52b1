package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
)

func (h *Handler) ListOverrides(c *gin.Context) {
	status, err := h.authService.Overrides(c.Request.Context())
	if err != nil {
		h.persistenceError(c, "failed to list overrides", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) SetOverride(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	err := h.authService.SetOverride(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrEmptyUsername) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.persistenceError(c, "failed to set override", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "username": req.Username})
}

func (h *Handler) ClearOverrides(c *gin.Context) {
	if err := h.authService.ClearOverrides(c.Request.Context()); err != nil {
		h.persistenceError(c, "failed to clear overrides", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) SetExpiry(c *gin.Context) {
	var req expiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hours is required"})
		return
	}
	err := h.authService.SetExpiry(c.Request.Context(), req.Hours)
	if errors.Is(err, domain.ErrInvalidExpiry) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.persistenceError(c, "failed to set override expiry", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "expiry_hours": req.Hours})
}

func (h *Handler) ListAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts": h.authService.Accounts()})
}

func (h *Handler) persistenceError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
