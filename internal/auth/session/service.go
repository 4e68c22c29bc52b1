package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service opens, resumes and closes login sessions. A session idle for
// longer than the timeout is deleted on its next use.
type Service struct {
	repo        Repository
	idleTimeout time.Duration
	logger      *zap.Logger
}

// NewService creates a new session Service
func NewService(repo Repository, idleTimeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// IdleTimeout is the inactivity window after which sessions end.
func (s *Service) IdleTimeout() time.Duration {
	return s.idleTimeout
}

// Open starts a session for an authenticated identity.
func (s *Service) Open(ctx context.Context, id domain.Identity, now time.Time) (*domain.Session, error) {
	sess := &domain.Session{
		ID:          uuid.New().String(),
		Username:    id.Username,
		Role:        id.Role,
		DisplayName: id.DisplayName,
		CreatedAt:   now,
		LastSeen:    now,
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("session opened", zap.String("username", id.Username), zap.String("role", string(id.Role)))
	return sess, nil
}

// Resume returns the session and records now as its last interaction.
// Idle sessions are deleted and reported as domain.ErrSessionExpired.
func (s *Service) Resume(ctx context.Context, sessionID string, now time.Time) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Idle(now, s.idleTimeout) {
		if err := s.repo.Delete(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("failed to drop idle session: %w", err)
		}
		s.logger.Info("session expired", zap.String("username", sess.Username))
		return nil, domain.ErrSessionExpired
	}

	sess.LastSeen = now
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Close ends the session. Closing an unknown session is not an error.
func (s *Service) Close(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}
