package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/logging"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/service"
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

// Response headers of the export route.
const (
	HeaderPages    = "X-Portfolio-Pages"
	HeaderTheme    = "X-Portfolio-Theme"
	HeaderWarnings = "X-Portfolio-Warnings"
)

type Handler struct {
	svc    *service.ExportService
	logger *zap.Logger
}

func New(svc *service.ExportService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the portfolio routes on a session-protected group.
// exportGuards run in front of the export route only.
func (h *Handler) Register(rg *gin.RouterGroup, exportGuards ...gin.HandlerFunc) {
	rg.GET("/template", h.template)
	rg.POST("/preview", h.preview)
	rg.POST("/export", append(exportGuards, h.export)...)
	rg.GET("/exports", h.history)
}

func (h *Handler) template(c *gin.Context) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	tpl, err := h.svc.Template(c.Request.Context(), who)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) preview(c *gin.Context) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	req, err := parseExportForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := h.svc.Preview(c.Request.Context(), who, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreview(doc))
}

func (h *Handler) export(c *gin.Context) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	req, err := parseExportForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.Export(c.Request.Context(), who, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.FileName+`"`)
	c.Header(HeaderPages, strconv.Itoa(out.Pages))
	c.Header(HeaderTheme, string(out.Theme))
	c.Header(HeaderWarnings, strconv.Itoa(len(out.Warnings)))
	c.Data(http.StatusOK, "application/pdf", out.PDF)
}

func (h *Handler) history(c *gin.Context) {
	who, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}
	records, err := h.svc.History(c.Request.Context(), who, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exports": records})
}

func (h *Handler) fail(c *gin.Context, err error) {
	log := logging.FromContext(c.Request.Context(), h.logger)
	var renderErr *domain.RenderError
	switch {
	case errors.As(err, &renderErr):
		log.Error("portfolio render failed", zap.String("op", renderErr.Op), zap.Error(renderErr.Err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF generation failed"})
	case errors.Is(err, settingsdomain.ErrPresetNotFound), errors.Is(err, domain.ErrHistoryDisabled):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error("portfolio request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
	}
}
