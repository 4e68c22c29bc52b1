// Package render paginates a composed portfolio into PDF bytes.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
)

const (
	WatermarkLogo = "logo"
	WatermarkText = "text"
)

// Options carries per-render inputs that are not part of the document.
type Options struct {
	// GeneratedAt becomes the creation and modification date of the PDF.
	GeneratedAt time.Time
}

// Result is a complete rendered document.
type Result struct {
	PDF       []byte
	Pages     int
	Warnings  []string
	Watermark string
}

// Renderer renders documents. It is safe for concurrent use; every call
// gets its own workspace.
type Renderer struct {
	tempRoot string
	stamper  Stamper
	logger   *zap.Logger
}

type Option func(*Renderer)

// WithTempRoot sets the parent of per-render workspaces. Empty means the
// system temp directory.
func WithTempRoot(dir string) Option {
	return func(r *Renderer) { r.tempRoot = dir }
}

// WithStamper replaces the pdfcpu watermark stamper.
func WithStamper(s Stamper) Option {
	return func(r *Renderer) { r.stamper = s }
}

func NewRenderer(logger *zap.Logger, opts ...Option) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{
		stamper: NewPDFCPUStamper(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out doc, stamps the watermark on every page and returns the
// finished bytes. Any failure yields a *domain.RenderError and no bytes.
// The workspace is removed on every path.
func (r *Renderer) Render(ctx context.Context, doc domain.Document, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.RenderError{Op: "start", Err: err}
	}

	ws, err := os.MkdirTemp(r.tempRoot, "portfolio-render-*")
	if err != nil {
		return nil, &domain.RenderError{Op: "create workspace", Err: err}
	}
	defer func() {
		if err := os.RemoveAll(ws); err != nil {
			r.logger.Warn("failed to remove render workspace", zap.String("dir", ws), zap.Error(err))
		}
	}()

	assets, warnings := prepareAssets(ws, doc)

	mark := Mark{Text: doc.Watermark.Text, Color: doc.Palette.Watermark}
	result := &Result{Watermark: WatermarkText}
	if len(doc.Watermark.Logo) > 0 {
		path, err := writeNormalized(ws, "watermark-logo", doc.Watermark.Logo)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("logo watermark skipped: %v", err))
		} else {
			mark.LogoPath = path
			result.Watermark = WatermarkLogo
		}
	}

	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Unix(0, 0).UTC()
	}

	layoutPath := filepath.Join(ws, "layout.pdf")
	layoutWarnings, err := layout(doc, assets, generatedAt, layoutPath)
	warnings = append(warnings, layoutWarnings...)
	if err != nil {
		return nil, &domain.RenderError{Op: "layout", Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, &domain.RenderError{Op: "layout", Err: err}
	}

	stampedPath := filepath.Join(ws, "portfolio.pdf")
	if err := r.stamper.Stamp(layoutPath, stampedPath, mark); err != nil {
		return nil, &domain.RenderError{Op: "watermark", Err: err}
	}

	pages, err := r.stamper.PageCount(stampedPath)
	if err != nil {
		return nil, &domain.RenderError{Op: "count pages", Err: err}
	}

	data, err := os.ReadFile(stampedPath)
	if err != nil {
		return nil, &domain.RenderError{Op: "read output", Err: err}
	}

	for _, w := range warnings {
		r.logger.Warn("portfolio render warning", zap.String("warning", w))
	}

	result.PDF = data
	result.Pages = pages
	result.Warnings = warnings
	return result, nil
}
