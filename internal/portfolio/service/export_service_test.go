package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	authdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/render"
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

type captureRenderer struct {
	doc  domain.Document
	opts render.Options
	err  error
}

func (r *captureRenderer) Render(_ context.Context, doc domain.Document, opts render.Options) (*render.Result, error) {
	r.doc, r.opts = doc, opts
	if r.err != nil {
		return nil, r.err
	}
	return &render.Result{PDF: []byte("%PDF-1.4 test"), Pages: 3, Watermark: render.WatermarkText, Warnings: []string{"w1"}}, nil
}

type stubBranding struct {
	presets     map[string]settingsdomain.Preset
	clientTheme settingsdomain.Theme
}

func (b stubBranding) Branding(_ context.Context, name string) (settingsdomain.Preset, error) {
	if name == "" {
		return settingsdomain.DefaultBranding(), nil
	}
	p, ok := b.presets[name]
	if !ok {
		return settingsdomain.Preset{}, settingsdomain.ErrPresetNotFound
	}
	return p, nil
}

func (b stubBranding) ClientTheme(context.Context) (settingsdomain.Theme, error) {
	return b.clientTheme, nil
}

type memHistory struct {
	records []domain.ExportRecord
	err     error
	listFor []string
}

func (h *memHistory) Create(_ context.Context, rec *domain.ExportRecord) error {
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, *rec)
	return nil
}

func (h *memHistory) List(_ context.Context, username string, _ int) ([]domain.ExportRecord, error) {
	h.listFor = append(h.listFor, username)
	return h.records, nil
}

var (
	admin  = authdomain.Identity{Username: "alierwai", Role: authdomain.RoleAdmin, DisplayName: "Alier Kergany"}
	client = authdomain.Identity{Username: "client1", Role: authdomain.RoleClient, DisplayName: "Client One"}
	fixed  = time.Date(2025, 3, 7, 14, 5, 9, 0, time.UTC)
)

func newService(r Renderer, h History) *ExportService {
	logo := "bG9nbw==" // "logo"
	branding := stubBranding{
		presets: map[string]settingsdomain.Preset{
			"Ocean": {Name: "Ocean Consulting", BrandColor: "#0EA5E9", FontChoice: settingsdomain.FontCourier, Logo: &logo, PDFTheme: settingsdomain.ThemeDark},
		},
		clientTheme: settingsdomain.ThemeDark,
	}
	return NewExportService(r, branding, h, nil).WithClock(func() time.Time { return fixed })
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Admin_Portfolio_20250307_140509.pdf", FileName(authdomain.RoleAdmin, fixed))
	assert.Equal(t, "Client_Portfolio_20250307_140509.pdf", FileName(authdomain.RoleClient, fixed))
}

func TestPrepare_ClientBrandingIsForced(t *testing.T) {
	svc := newService(&captureRenderer{}, nil)
	req := ExportRequest{
		Fields: domain.Fields{
			Name:       "Someone Else",
			BrandColor: "#FF0000",
			FontChoice: settingsdomain.FontCourier,
			Logo:       []byte("logo"),
		},
		Preset: "Ocean",
		Theme:  settingsdomain.ThemeLight,
	}

	fields, theme, err := svc.Prepare(context.Background(), client, req)
	require.NoError(t, err)
	assert.Equal(t, "Client Portfolio - Client One", fields.Name)
	assert.Equal(t, HouseBrandColor, fields.BrandColor)
	assert.Equal(t, settingsdomain.FontHelvetica, fields.FontChoice)
	assert.Nil(t, fields.Logo)
	assert.Equal(t, settingsdomain.ThemeDark, theme)
}

func TestPrepare_AdminBranding(t *testing.T) {
	svc := newService(&captureRenderer{}, nil)
	ctx := context.Background()

	t.Run("preset fills blanks", func(t *testing.T) {
		fields, theme, err := svc.Prepare(ctx, admin, ExportRequest{Preset: "Ocean"})
		require.NoError(t, err)
		assert.Equal(t, "Ocean Consulting", fields.Name)
		assert.Equal(t, "#0EA5E9", fields.BrandColor)
		assert.Equal(t, settingsdomain.FontCourier, fields.FontChoice)
		assert.Equal(t, []byte("logo"), fields.Logo)
		assert.Equal(t, settingsdomain.ThemeDark, theme)
	})

	t.Run("request values win", func(t *testing.T) {
		fields, theme, err := svc.Prepare(ctx, admin, ExportRequest{
			Fields: domain.Fields{Name: "Jane", FontChoice: settingsdomain.FontTimes},
			Preset: "Ocean",
			Theme:  settingsdomain.ThemeLight,
		})
		require.NoError(t, err)
		assert.Equal(t, "Jane", fields.Name)
		assert.Equal(t, settingsdomain.FontTimes, fields.FontChoice)
		assert.Equal(t, settingsdomain.ThemeLight, theme)
	})

	t.Run("default branding without preset", func(t *testing.T) {
		fields, theme, err := svc.Prepare(ctx, admin, ExportRequest{})
		require.NoError(t, err)
		assert.Equal(t, "AI Consultant Pro", fields.Name)
		assert.Equal(t, settingsdomain.ThemeLight, theme)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, _, err := svc.Prepare(ctx, admin, ExportRequest{Preset: "Missing"})
		assert.ErrorIs(t, err, settingsdomain.ErrPresetNotFound)
	})
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	t.Run("renders and records", func(t *testing.T) {
		r := &captureRenderer{}
		h := &memHistory{}
		svc := newService(r, h)

		out, err := svc.Export(ctx, client, ExportRequest{Fields: domain.Fields{
			Content: map[domain.SectionKey]string{domain.KeyExecSummary: "Summary"},
		}})
		require.NoError(t, err)
		assert.Equal(t, "Client_Portfolio_20250307_140509.pdf", out.FileName)
		assert.Equal(t, 3, out.Pages)
		assert.Equal(t, settingsdomain.ThemeDark, out.Theme)
		assert.Equal(t, fixed, r.opts.GeneratedAt)
		assert.Equal(t, []domain.SectionKey{domain.KeyExecSummary}, r.doc.SectionKeys())

		require.Len(t, h.records, 1)
		assert.Equal(t, "client1", h.records[0].Username)
		assert.Equal(t, "Dark", h.records[0].Theme)
		assert.Equal(t, []string{"w1"}, h.records[0].Warnings)
	})

	t.Run("history failure is only logged", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		svc := NewExportService(&captureRenderer{}, stubBranding{clientTheme: settingsdomain.ThemeLight}, &memHistory{err: errors.New("db down")}, zap.New(core))

		out, err := svc.Export(ctx, client, ExportRequest{})
		require.NoError(t, err)
		assert.NotEmpty(t, out.PDF)
		assert.Equal(t, 1, logs.FilterMessage("failed to record export").Len())
	})

	t.Run("render failure is returned", func(t *testing.T) {
		renderErr := &domain.RenderError{Op: "layout", Err: errors.New("bad font")}
		h := &memHistory{}
		svc := newService(&captureRenderer{err: renderErr}, h)

		out, err := svc.Export(ctx, admin, ExportRequest{})
		assert.Nil(t, out)
		var re *domain.RenderError
		assert.ErrorAs(t, err, &re)
		assert.Empty(t, h.records)
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()

	_, err := newService(&captureRenderer{}, nil).History(ctx, admin, 10)
	assert.ErrorIs(t, err, domain.ErrHistoryDisabled)

	h := &memHistory{}
	svc := newService(&captureRenderer{}, h)
	_, err = svc.History(ctx, admin, 10)
	require.NoError(t, err)
	_, err = svc.History(ctx, client, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "client1"}, h.listFor)
}

func TestTemplate(t *testing.T) {
	svc := newService(&captureRenderer{}, nil)
	ctx := context.Background()

	adminTpl, err := svc.Template(ctx, admin)
	require.NoError(t, err)
	assert.False(t, adminTpl.BrandingLocked)
	assert.Len(t, adminTpl.Fonts, 3)
	assert.Len(t, adminTpl.Sections, 6)
	assert.Equal(t, "exec_summary_images", adminTpl.Sections[0].ImagesField)

	clientTpl, err := svc.Template(ctx, client)
	require.NoError(t, err)
	assert.True(t, clientTpl.BrandingLocked)
	assert.Equal(t, "Client Portfolio - Client One", clientTpl.Name)
	assert.Equal(t, settingsdomain.ThemeDark, clientTpl.Theme)
	assert.Contains(t, clientTpl.Scenarios, "Primary Strategy")
}
