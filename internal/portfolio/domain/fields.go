package domain

import (
	"time"

	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

// SectionKey names one of the six content slots.
type SectionKey string

const (
	KeyExecSummary   SectionKey = "exec_summary"
	KeyOpportunities SectionKey = "opportunities"
	KeyRisks         SectionKey = "risks"
	KeyScenarios     SectionKey = "scenarios"
	KeyReflection    SectionKey = "reflection"
	KeyLogoText      SectionKey = "logo_text"
)

// ImagesField is the form field carrying the images of a section.
func (k SectionKey) ImagesField() string {
	return string(k) + "_images"
}

// Image is an uploaded image blob.
type Image struct {
	Name string
	Data []byte
}

// Fields is everything one editing session submits for a portfolio.
type Fields struct {
	ProjectTitle string
	Date         *time.Time
	Name         string
	BrandColor   string
	FontChoice   settingsdomain.FontChoice
	Logo         []byte

	Content map[SectionKey]string
	Images  map[SectionKey][]Image
}

// Text returns the raw content of a section.
func (f Fields) Text(key SectionKey) string {
	return f.Content[key]
}

// SectionImages returns the images attached to a section.
func (f Fields) SectionImages(key SectionKey) []Image {
	return f.Images[key]
}

// ScenarioHeader is the fixed header of the scenario table.
var ScenarioHeader = []string{"Option", "Investment", "Benefits", "Risks", "Recommendation"}

// ScenarioRow is one parsed scenario line.
type ScenarioRow [5]string
