package http

import "github.com/gin-gonic/gin"

// Register mounts login, logout and identity routes. requireSession guards
// everything except login.
func (h *Handler) Register(rg *gin.RouterGroup, requireSession gin.HandlerFunc) {
	rg.POST("/login", h.Login)
	rg.POST("/logout", requireSession, h.Logout)
	rg.GET("/me", requireSession, h.Me)
}

// RegisterAdmin mounts override administration on an admin-only group.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/overrides", h.ListOverrides)
	rg.POST("/overrides", h.SetOverride)
	rg.DELETE("/overrides", h.ClearOverrides)
	rg.PUT("/overrides/expiry", h.SetExpiry)
	rg.GET("/accounts", h.ListAccounts)
}
