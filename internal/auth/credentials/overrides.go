package credentials

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
	settingsrepo "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/repository"
	"go.uber.org/zap"
)

// Overrides administers temporary replacement passwords. Every mutation is
// persisted immediately; expiry is only enforced when overrides are read.
type Overrides struct {
	store  settingsrepo.Store
	logger *zap.Logger
}

// NewOverrides creates an Overrides administrator backed by store.
func NewOverrides(store settingsrepo.Store, logger *zap.Logger) *Overrides {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Overrides{store: store, logger: logger}
}

// SetOverride replaces the password of username starting at now. Any
// username is accepted.
func (o *Overrides) SetOverride(ctx context.Context, username, password string, now time.Time) error {
	if username == "" {
		return domain.ErrEmptyUsername
	}
	settings, err := o.store.LoadAdminSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin settings: %w", err)
	}

	settings.PasswordOverrides[username] = settingsdomain.Override{
		Password:  password,
		Timestamp: settingsdomain.NewTimestamp(now),
	}
	if err := o.store.SaveAdminSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save password override: %w", err)
	}

	o.logger.Info("password override set", zap.String("username", username))
	return nil
}

// ClearAllOverrides restores every account to its configured password.
func (o *Overrides) ClearAllOverrides(ctx context.Context) error {
	settings, err := o.store.LoadAdminSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin settings: %w", err)
	}

	settings.PasswordOverrides = map[string]settingsdomain.Override{}
	if err := o.store.SaveAdminSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to clear password overrides: %w", err)
	}

	o.logger.Info("all password overrides cleared")
	return nil
}

// SetExpiry changes the override lifetime. Existing overrides are judged
// against the new value on their next access.
func (o *Overrides) SetExpiry(ctx context.Context, hours int) error {
	if hours < settingsdomain.MinOverrideExpiryHours || hours > settingsdomain.MaxOverrideExpiryHours {
		return domain.ErrInvalidExpiry
	}
	settings, err := o.store.LoadAdminSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin settings: %w", err)
	}

	settings.OverrideExpiryHours = hours
	if err := o.store.SaveAdminSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save override expiry: %w", err)
	}

	o.logger.Info("override expiry changed", zap.Int("hours", hours))
	return nil
}

// Expiry returns the current override lifetime in hours.
func (o *Overrides) Expiry(ctx context.Context) (int, error) {
	settings, err := o.store.LoadAdminSettings(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load admin settings: %w", err)
	}
	return settings.OverrideExpiryHours, nil
}

// ListActiveOverrides returns unexpired overrides sorted by username,
// evicting and persisting the expired ones first.
func (o *Overrides) ListActiveOverrides(ctx context.Context, now time.Time) ([]domain.ActiveOverride, error) {
	settings, err := o.store.LoadAdminSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin settings: %w", err)
	}

	if err := cleanupOverrides(ctx, o.store, o.logger, &settings, now); err != nil {
		return nil, err
	}

	threshold := settings.ExpiryThreshold()
	active := make([]domain.ActiveOverride, 0, len(settings.PasswordOverrides))
	for username, entry := range settings.PasswordOverrides {
		active = append(active, domain.ActiveOverride{
			Username:         username,
			RemainingSeconds: int64(entry.Remaining(now, threshold) / time.Second),
		})
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Username < active[j].Username })
	return active, nil
}
