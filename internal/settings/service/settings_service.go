package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/repository"
)

// SettingsService manages branding presets and the client theme. Every
// write reloads the whole document first; concurrent writers race.
type SettingsService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewSettingsService(store repository.Store, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, logger: logger}
}

// ListPresets returns all presets sorted by name.
func (s *SettingsService) ListPresets(ctx context.Context) ([]domain.Preset, error) {
	presets, err := s.store.LoadPresets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}
	out := make([]domain.Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *SettingsService) GetPreset(ctx context.Context, name string) (domain.Preset, error) {
	presets, err := s.store.LoadPresets(ctx)
	if err != nil {
		return domain.Preset{}, fmt.Errorf("failed to load presets: %w", err)
	}
	p, ok := presets[strings.TrimSpace(name)]
	if !ok {
		return domain.Preset{}, domain.ErrPresetNotFound
	}
	return p, nil
}

// SavePreset creates or replaces the preset called name.
func (s *SettingsService) SavePreset(ctx context.Context, name string, p domain.Preset) (domain.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Preset{}, domain.ErrEmptyPresetName
	}
	p.Name = name
	if err := p.Validate(); err != nil {
		return domain.Preset{}, err
	}
	if p.Logo != nil {
		if *p.Logo == "" {
			p.Logo = nil
		} else if _, err := base64.StdEncoding.DecodeString(*p.Logo); err != nil {
			return domain.Preset{}, fmt.Errorf("%w: logo is not base64", domain.ErrInvalidPreset)
		}
	}

	presets, err := s.store.LoadPresets(ctx)
	if err != nil {
		return domain.Preset{}, fmt.Errorf("failed to load presets: %w", err)
	}
	presets[name] = p
	if err := s.store.SavePresets(ctx, presets); err != nil {
		return domain.Preset{}, fmt.Errorf("failed to save preset: %w", err)
	}

	s.logger.Info("preset saved", zap.String("preset", name))
	return p, nil
}

func (s *SettingsService) DeletePreset(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	presets, err := s.store.LoadPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	if _, ok := presets[name]; !ok {
		return domain.ErrPresetNotFound
	}
	delete(presets, name)
	if err := s.store.SavePresets(ctx, presets); err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	s.logger.Info("preset deleted", zap.String("preset", name))
	return nil
}

// Branding returns the named preset, or the default branding for "".
func (s *SettingsService) Branding(ctx context.Context, name string) (domain.Preset, error) {
	if strings.TrimSpace(name) == "" {
		return domain.DefaultBranding(), nil
	}
	return s.GetPreset(ctx, name)
}

// ClientTheme is the theme forced on client exports.
func (s *SettingsService) ClientTheme(ctx context.Context) (domain.Theme, error) {
	settings, err := s.store.LoadAdminSettings(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load admin settings: %w", err)
	}
	return settings.ClientPDFTheme, nil
}

func (s *SettingsService) SetClientTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return domain.ErrInvalidTheme
	}
	settings, err := s.store.LoadAdminSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin settings: %w", err)
	}
	settings.ClientPDFTheme = theme
	if err := s.store.SaveAdminSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save client theme: %w", err)
	}

	s.logger.Info("client theme changed", zap.String("theme", string(theme)))
	return nil
}
