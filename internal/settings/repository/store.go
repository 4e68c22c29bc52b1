package repository

import (
	"context"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

// Store persists the presets document and the admin settings document.
// Each Save replaces the whole document; concurrent writers race and the
// last one wins.
type Store interface {
	LoadPresets(ctx context.Context) (domain.Presets, error)
	SavePresets(ctx context.Context, presets domain.Presets) error
	LoadAdminSettings(ctx context.Context) (domain.AdminSettings, error)
	SaveAdminSettings(ctx context.Context, settings domain.AdminSettings) error
}
