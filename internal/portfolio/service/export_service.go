package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	authdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/composer"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/render"
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

const (
	// HouseBrandColor and HouseFont are forced on every client export.
	HouseBrandColor = "#1E3A8A"
	HouseFont       = settingsdomain.FontHelvetica

	fileStampLayout = "20060102_150405"
)

// Renderer turns a composed document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, doc domain.Document, opts render.Options) (*render.Result, error)
}

// Branding resolves presets and the admin-chosen client theme.
type Branding interface {
	Branding(ctx context.Context, presetName string) (settingsdomain.Preset, error)
	ClientTheme(ctx context.Context) (settingsdomain.Theme, error)
}

// History records generated exports.
type History interface {
	Create(ctx context.Context, rec *domain.ExportRecord) error
	List(ctx context.Context, username string, limit int) ([]domain.ExportRecord, error)
}

// ExportRequest is one submitted portfolio form.
type ExportRequest struct {
	Fields domain.Fields
	// Preset and Theme are honoured for admins only.
	Preset string
	Theme  settingsdomain.Theme
}

// Export is a finished download.
type Export struct {
	FileName  string
	PDF       []byte
	Pages     int
	Theme     settingsdomain.Theme
	Watermark string
	Warnings  []string
}

// Template holds the starting values of the portfolio form for a role.
type Template struct {
	ProjectTitle   string                      `json:"project_title"`
	Name           string                      `json:"name"`
	BrandColor     string                      `json:"brand_color"`
	FontChoice     settingsdomain.FontChoice   `json:"font_choice"`
	Theme          settingsdomain.Theme        `json:"theme"`
	Scenarios      string                      `json:"scenarios"`
	Sections       []TemplateSection           `json:"sections"`
	Fonts          []settingsdomain.FontChoice `json:"fonts"`
	BrandingLocked bool                        `json:"branding_locked"`
}

type TemplateSection struct {
	Key         domain.SectionKey `json:"key"`
	Title       string            `json:"title"`
	Kind        string            `json:"kind"`
	ImagesField string            `json:"images_field"`
}

// ExportService applies role rules to submitted fields, renders them and
// records the result.
type ExportService struct {
	renderer Renderer
	branding Branding
	history  History
	now      func() time.Time
	logger   *zap.Logger
}

// NewExportService creates the service. history may be nil.
func NewExportService(renderer Renderer, branding Branding, history History, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		renderer: renderer,
		branding: branding,
		history:  history,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *ExportService) WithClock(now func() time.Time) *ExportService {
	s.now = now
	return s
}

// Prepare returns the fields and theme that will actually be rendered for
// who. Clients always get house branding and the admin's client theme.
func (s *ExportService) Prepare(ctx context.Context, who authdomain.Identity, req ExportRequest) (domain.Fields, settingsdomain.Theme, error) {
	fields := req.Fields

	if who.Role != authdomain.RoleAdmin {
		theme, err := s.branding.ClientTheme(ctx)
		if err != nil {
			return domain.Fields{}, "", fmt.Errorf("failed to load client theme: %w", err)
		}
		fields.Name = "Client Portfolio - " + who.DisplayName
		fields.BrandColor = HouseBrandColor
		fields.FontChoice = HouseFont
		fields.Logo = nil
		return fields, theme, nil
	}

	preset, err := s.branding.Branding(ctx, req.Preset)
	if err != nil {
		return domain.Fields{}, "", err
	}
	if strings.TrimSpace(fields.Name) == "" {
		fields.Name = preset.Name
	}
	if strings.TrimSpace(fields.BrandColor) == "" {
		fields.BrandColor = preset.BrandColor
	}
	if !fields.FontChoice.Valid() {
		fields.FontChoice = preset.FontChoice
	}
	if len(fields.Logo) == 0 && preset.Logo != nil {
		logo, err := base64.StdEncoding.DecodeString(*preset.Logo)
		if err != nil {
			s.logger.Warn("preset logo is not valid base64", zap.String("preset", preset.Name), zap.Error(err))
		} else {
			fields.Logo = logo
		}
	}

	theme := req.Theme
	if !theme.Valid() {
		theme = preset.PDFTheme
	}
	if !theme.Valid() {
		theme = settingsdomain.ThemeLight
	}
	return fields, theme, nil
}

// Preview composes the document without rendering it.
func (s *ExportService) Preview(ctx context.Context, who authdomain.Identity, req ExportRequest) (domain.Document, error) {
	fields, theme, err := s.Prepare(ctx, who, req)
	if err != nil {
		return domain.Document{}, err
	}
	return composer.Compose(fields, theme), nil
}

// Export renders the portfolio for who. A history failure is logged and
// does not fail the export.
func (s *ExportService) Export(ctx context.Context, who authdomain.Identity, req ExportRequest) (*Export, error) {
	fields, theme, err := s.Prepare(ctx, who, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := composer.Compose(fields, theme)
	res, err := s.renderer.Render(ctx, doc, render.Options{GeneratedAt: now})
	if err != nil {
		return nil, err
	}

	out := &Export{
		FileName:  FileName(who.Role, now),
		PDF:       res.PDF,
		Pages:     res.Pages,
		Theme:     theme,
		Watermark: res.Watermark,
		Warnings:  res.Warnings,
	}

	s.logger.Info("portfolio exported",
		zap.String("username", who.Username),
		zap.String("role", string(who.Role)),
		zap.String("file", out.FileName),
		zap.Int("pages", out.Pages),
		zap.Int("bytes", len(out.PDF)),
		zap.Int("warnings", len(out.Warnings)),
	)

	if s.history != nil {
		rec := &domain.ExportRecord{
			Username: who.Username,
			Role:     string(who.Role),
			FileName: out.FileName,
			Theme:    string(theme),
			Pages:    out.Pages,
			Bytes:    int64(len(out.PDF)),
			Warnings: out.Warnings,
		}
		if err := s.history.Create(ctx, rec); err != nil {
			s.logger.Error("failed to record export", zap.String("file", out.FileName), zap.Error(err))
		}
	}
	return out, nil
}

// History lists past exports. Admins see everyone's; clients their own.
func (s *ExportService) History(ctx context.Context, who authdomain.Identity, limit int) ([]domain.ExportRecord, error) {
	if s.history == nil {
		return nil, domain.ErrHistoryDisabled
	}
	username := who.Username
	if who.Role == authdomain.RoleAdmin {
		username = ""
	}
	return s.history.List(ctx, username, limit)
}

// Template returns the form defaults for who.
func (s *ExportService) Template(ctx context.Context, who authdomain.Identity) (Template, error) {
	sections := make([]TemplateSection, 0, len(domain.Sections))
	for _, sec := range domain.Sections {
		sections = append(sections, TemplateSection{
			Key:         sec.Key,
			Title:       sec.Title,
			Kind:        sec.Kind.String(),
			ImagesField: sec.Key.ImagesField(),
		})
	}

	if who.Role != authdomain.RoleAdmin {
		theme, err := s.branding.ClientTheme(ctx)
		if err != nil {
			return Template{}, fmt.Errorf("failed to load client theme: %w", err)
		}
		return Template{
			ProjectTitle:   "Consulting Engagement",
			Name:           "Client Portfolio - " + who.DisplayName,
			BrandColor:     HouseBrandColor,
			FontChoice:     HouseFont,
			Theme:          theme,
			Scenarios:      clientScenarios,
			Sections:       sections,
			Fonts:          []settingsdomain.FontChoice{HouseFont},
			BrandingLocked: true,
		}, nil
	}

	def := settingsdomain.DefaultBranding()
	return Template{
		ProjectTitle: "Generative AI Consulting Training Program",
		Name:         def.Name,
		BrandColor:   def.BrandColor,
		FontChoice:   def.FontChoice,
		Theme:        def.PDFTheme,
		Scenarios:    adminScenarios,
		Sections:     sections,
		Fonts:        settingsdomain.FontChoices,
	}, nil
}

// FileName names a download after the role and the export time.
func FileName(role authdomain.Role, at time.Time) string {
	prefix := "Client"
	if role == authdomain.RoleAdmin {
		prefix = "Admin"
	}
	return fmt.Sprintf("%s_Portfolio_%s.pdf", prefix, at.Format(fileStampLayout))
}

const (
	adminScenarios = "Strategic Option A | High Investment | 40% Efficiency Gains | Implementation Risk | Highly Recommended\n" +
		"Strategic Option B | Medium Investment | 25% Cost Savings | Lower Risk Profile | Worth Considering"
	clientScenarios = "Primary Strategy | High Investment | 35% ROI | Moderate Risk | Recommended\n" +
		"Alternative Approach | Medium Investment | 20% ROI | Lower Risk | Consider"
)
