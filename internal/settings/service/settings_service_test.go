package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/repository"
)

func setupService(t *testing.T) (*SettingsService, string) {
	dir := t.TempDir()
	presetsPath := filepath.Join(dir, "branding_presets.json")
	store := repository.NewFileStore(presetsPath, filepath.Join(dir, "admin_settings.json"))
	return NewSettingsService(store, nil), presetsPath
}

func strPtr(s string) *string { return &s }

func TestSettingsService_Presets(t *testing.T) {
	svc, presetsPath := setupService(t)
	ctx := context.Background()

	t.Run("save then reload round-trips every field", func(t *testing.T) {
		in := domain.Preset{
			BrandColor: "#0EA5E9",
			FontChoice: domain.FontCourier,
			Logo:       strPtr("iVBORw0KGgo="),
			PDFTheme:   domain.ThemeDark,
		}
		saved, err := svc.SavePreset(ctx, " Ocean ", in)
		require.NoError(t, err)
		assert.Equal(t, "Ocean", saved.Name)

		got, err := svc.GetPreset(ctx, "Ocean")
		require.NoError(t, err)
		assert.Equal(t, saved, got)

		raw, err := os.ReadFile(presetsPath)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"brand_color": "#0EA5E9"`)
	})

	t.Run("rejects invalid presets", func(t *testing.T) {
		_, err := svc.SavePreset(ctx, "  ", domain.DefaultBranding())
		assert.ErrorIs(t, err, domain.ErrEmptyPresetName)

		bad := domain.DefaultBranding()
		bad.BrandColor = "blue"
		_, err = svc.SavePreset(ctx, "Bad", bad)
		assert.ErrorIs(t, err, domain.ErrInvalidPreset)

		bad = domain.DefaultBranding()
		bad.Logo = strPtr("%%%")
		_, err = svc.SavePreset(ctx, "Bad", bad)
		assert.ErrorIs(t, err, domain.ErrInvalidPreset)

		_, err = svc.GetPreset(ctx, "Bad")
		assert.ErrorIs(t, err, domain.ErrPresetNotFound)
	})

	t.Run("empty logo is stored as null", func(t *testing.T) {
		p := domain.DefaultBranding()
		p.Logo = strPtr("")
		saved, err := svc.SavePreset(ctx, "Plain", p)
		require.NoError(t, err)
		assert.Nil(t, saved.Logo)
	})

	t.Run("list is sorted and delete removes", func(t *testing.T) {
		list, err := svc.ListPresets(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Ocean", list[0].Name)
		assert.Equal(t, "Plain", list[1].Name)

		require.NoError(t, svc.DeletePreset(ctx, "Plain"))
		assert.ErrorIs(t, svc.DeletePreset(ctx, "Plain"), domain.ErrPresetNotFound)
	})
}

func TestSettingsService_Branding(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	b, err := svc.Branding(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBranding(), b)

	_, err = svc.Branding(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
}

func TestSettingsService_ClientTheme(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	theme, err := svc.ClientTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)

	require.NoError(t, svc.SetClientTheme(ctx, domain.ThemeDark))
	theme, err = svc.ClientTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)

	assert.ErrorIs(t, svc.SetClientTheme(ctx, "Sepia"), domain.ErrInvalidTheme)
}
