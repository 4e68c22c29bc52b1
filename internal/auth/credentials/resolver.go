package credentials

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sort"
	"time"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
	settingsrepo "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/repository"
	"go.uber.org/zap"
)

// Resolver decides logins against the static account table, honouring
// unexpired password overrides kept in the admin settings document.
type Resolver struct {
	accounts map[string]domain.Account
	store    settingsrepo.Store
	logger   *zap.Logger
}

// NewResolver creates a Resolver over accounts backed by store.
func NewResolver(accounts []domain.Account, store settingsrepo.Store, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	table := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		table[a.Username] = a
	}
	return &Resolver{
		accounts: table,
		store:    store,
		logger:   logger,
	}
}

// Accounts lists the static accounts sorted by username.
func (r *Resolver) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// Authenticate checks username/password at now. Expired and unreadable
// overrides are evicted and persisted before the comparison. Unknown users and wrong
// passwords both yield domain.ErrInvalidCredentials; any other error is a
// persistence failure.
func (r *Resolver) Authenticate(ctx context.Context, username, password string, now time.Time) (domain.Identity, error) {
	settings, err := r.store.LoadAdminSettings(ctx)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to load admin settings: %w", err)
	}

	if err := cleanupOverrides(ctx, r.store, r.logger, &settings, now); err != nil {
		return domain.Identity{}, err
	}

	account, known := r.accounts[username]
	expected := account.PasswordHash
	overrideUsed := false
	if o, ok := settings.PasswordOverrides[username]; ok && known {
		expected = HashPassword(o.Password)
		overrideUsed = true
	}
	if !known {
		// Compare against a throwaway hash so unknown users cost the same.
		expected = HashPassword("")
	}

	match := subtle.ConstantTimeCompare([]byte(expected), []byte(HashPassword(password))) == 1
	if !known || !match {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	return domain.Identity{
		Username:     account.Username,
		Role:         account.Role,
		DisplayName:  account.DisplayName,
		OverrideUsed: overrideUsed,
	}, nil
}

// cleanupOverrides evicts expired overrides and persists the document when
// it lost entries, including ones dropped as unreadable on load.
func cleanupOverrides(ctx context.Context, store settingsrepo.Store, logger *zap.Logger, settings *settingsdomain.AdminSettings, now time.Time) error {
	evicted := evictExpired(settings, now)
	dropped := settings.DroppedOverrides
	if len(evicted) == 0 && len(dropped) == 0 {
		return nil
	}

	if err := store.SaveAdminSettings(ctx, *settings); err != nil {
		return fmt.Errorf("failed to persist override eviction: %w", err)
	}
	settings.DroppedOverrides = nil

	if len(dropped) > 0 {
		logger.Warn("unreadable password overrides removed", zap.Strings("usernames", dropped))
	}
	if len(evicted) > 0 {
		logger.Info("expired password overrides removed", zap.Strings("usernames", evicted))
	}
	return nil
}

// evictExpired drops every override older than the settings' threshold and
// returns the affected usernames in sorted order.
func evictExpired(settings *settingsdomain.AdminSettings, now time.Time) []string {
	threshold := settings.ExpiryThreshold()
	var evicted []string
	for username, o := range settings.PasswordOverrides {
		if o.Expired(now, threshold) {
			delete(settings.PasswordOverrides, username)
			evicted = append(evicted, username)
		}
	}
	sort.Strings(evicted)
	return evicted
}
