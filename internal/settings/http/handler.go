package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/service"
)

type Handler struct {
	svc    *service.SettingsService
	logger *zap.Logger
}

func New(svc *service.SettingsService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Register mounts preset and theme administration on an admin-only group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/presets", h.listPresets)
	rg.GET("/presets/:name", h.getPreset)
	rg.PUT("/presets/:name", h.savePreset)
	rg.DELETE("/presets/:name", h.deletePreset)
	rg.GET("/client-theme", h.getClientTheme)
	rg.PUT("/client-theme", h.setClientTheme)
}

type presetRequest struct {
	BrandColor string            `json:"brand_color"`
	FontChoice domain.FontChoice `json:"font_choice"`
	Logo       *string           `json:"logo"`
	PDFTheme   domain.Theme      `json:"pdf_theme"`
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

func (h *Handler) listPresets(c *gin.Context) {
	presets, err := h.svc.ListPresets(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"presets": presets,
		"default": domain.DefaultBranding(),
	})
}

func (h *Handler) getPreset(c *gin.Context) {
	p, err := h.svc.GetPreset(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) savePreset(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.SavePreset(c.Request.Context(), c.Param("name"), domain.Preset{
		BrandColor: req.BrandColor,
		FontChoice: req.FontChoice,
		Logo:       req.Logo,
		PDFTheme:   req.PDFTheme,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deletePreset(c *gin.Context) {
	if err := h.svc.DeletePreset(c.Request.Context(), c.Param("name")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) getClientTheme(c *gin.Context) {
	theme, err := h.svc.ClientTheme(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func (h *Handler) setClientTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme is required"})
		return
	}
	theme, err := domain.ParseTheme(req.Theme)
	if err == nil {
		err = h.svc.SetClientTheme(c.Request.Context(), theme)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPresetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidPreset),
		errors.Is(err, domain.ErrEmptyPresetName),
		errors.Is(err, domain.ErrInvalidTheme):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("settings request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to access settings"})
	}
}
