package render

import (
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
)

// Mark describes the per-page watermark. LogoPath wins over Text.
type Mark struct {
	LogoPath string
	Text     string
	Color    domain.Color
}

// Stamper applies a watermark to every page of a PDF file.
type Stamper interface {
	Stamp(inPath, outPath string, m Mark) error
	PageCount(path string) (int, error)
}

type pdfcpuStamper struct{}

var disableConfigDir sync.Once

// NewPDFCPUStamper returns the pdfcpu backed stamper. pdfcpu runs on its
// built-in configuration and core fonts; no user config dir is created.
func NewPDFCPUStamper() Stamper {
	disableConfigDir.Do(api.DisableConfigDir)
	return pdfcpuStamper{}
}

func (pdfcpuStamper) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func (s pdfcpuStamper) Stamp(inPath, outPath string, m Mark) error {
	var (
		wm  *model.Watermark
		err error
	)
	if m.LogoPath != "" {
		wm, err = api.ImageWatermark(m.LogoPath, "rotation:30, opacity:0.15, scalefactor:0.5 rel", true, false, types.POINTS)
	} else {
		desc := fmt.Sprintf("fontname:Helvetica-Bold, points:60, rotation:45, opacity:0.08, fillcolor:%s, scalefactor:1 abs", m.Color.Hex())
		wm, err = api.TextWatermark(m.Text, desc, true, false, types.POINTS)
	}
	if err != nil {
		return fmt.Errorf("failed to build watermark: %w", err)
	}

	if err := api.AddWatermarksFile(inPath, outPath, nil, wm, s.config()); err != nil {
		return fmt.Errorf("failed to stamp watermark: %w", err)
	}
	return nil
}

func (s pdfcpuStamper) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}
