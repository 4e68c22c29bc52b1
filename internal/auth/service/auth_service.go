package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/credentials"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/session"
)

// OverrideStatus is what the admin sees about password overrides.
type OverrideStatus struct {
	ExpiryHours int                     `json:"expiry_hours"`
	Active      []domain.ActiveOverride `json:"active"`
}

// AuthService ties the credential resolver to login sessions and exposes
// override administration with a single clock.
type AuthService struct {
	resolver  *credentials.Resolver
	overrides *credentials.Overrides
	sessions  *session.Service
	now       func() time.Time
	logger    *zap.Logger
}

func NewAuthService(resolver *credentials.Resolver, overrides *credentials.Overrides, sessions *session.Service, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		resolver:  resolver,
		overrides: overrides,
		sessions:  sessions,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Login authenticates and opens a session. Failed logins return
// domain.ErrInvalidCredentials and open nothing.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, domain.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.Identity{}, domain.ErrInvalidCredentials
	}

	now := s.now()
	id, err := s.resolver.Authenticate(ctx, username, password, now)
	if err != nil {
		return nil, domain.Identity{}, err
	}

	sess, err := s.sessions.Open(ctx, id, now)
	if err != nil {
		return nil, domain.Identity{}, fmt.Errorf("failed to open session: %w", err)
	}
	if id.OverrideUsed {
		s.logger.Info("login with password override", zap.String("username", id.Username))
	}
	return sess, id, nil
}

// Resume validates a session id and refreshes its activity time.
func (s *AuthService) Resume(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.Resume(ctx, sessionID, s.now())
}

// Logout ends a session. Unknown ids are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Close(ctx, sessionID)
}

// IdleTimeout is the session inactivity window.
func (s *AuthService) IdleTimeout() time.Duration {
	return s.sessions.IdleTimeout()
}

// Accounts lists the static accounts, without hashes.
func (s *AuthService) Accounts() []domain.Identity {
	accounts := s.resolver.Accounts()
	out := make([]domain.Identity, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, domain.Identity{Username: a.Username, Role: a.Role, DisplayName: a.DisplayName})
	}
	return out
}

// SetOverride installs a temporary password for username.
func (s *AuthService) SetOverride(ctx context.Context, username, password string) error {
	return s.overrides.SetOverride(ctx, strings.TrimSpace(username), password, s.now())
}

// ClearOverrides removes every override.
func (s *AuthService) ClearOverrides(ctx context.Context) error {
	return s.overrides.ClearAllOverrides(ctx)
}

// SetExpiry changes the override lifetime in hours.
func (s *AuthService) SetExpiry(ctx context.Context, hours int) error {
	return s.overrides.SetExpiry(ctx, hours)
}

// Overrides reports the expiry setting and the unexpired overrides,
// evicting expired ones on the way.
func (s *AuthService) Overrides(ctx context.Context) (OverrideStatus, error) {
	active, err := s.overrides.ListActiveOverrides(ctx, s.now())
	if err != nil {
		return OverrideStatus{}, err
	}
	hours, err := s.overrides.Expiry(ctx)
	if err != nil {
		return OverrideStatus{}, err
	}
	return OverrideStatus{ExpiryHours: hours, Active: active}, nil
}
