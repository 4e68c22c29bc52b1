package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RetentionSpec runs the purge daily at 03:00:00.
const RetentionSpec = "0 0 3 * * *"

// Purger deletes export history older than a cutoff.
type Purger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler runs the export history retention job.
type Scheduler struct {
	purger    Purger
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
	c         *cron.Cron
}

func NewScheduler(purger Purger, retentionDays int, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		purger:    purger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
		logger:    logger,
		c:         cron.New(cron.WithSeconds()),
	}
}

// Start registers the nightly purge and starts the cron runner.
func (s *Scheduler) Start() error {
	_, err := s.c.AddFunc(RetentionSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.Error("export retention failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}

	s.c.Start()
	s.logger.Info("export retention scheduled", zap.String("spec", RetentionSpec), zap.Duration("retention", s.retention))
	return nil
}

// Stop halts the runner and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}

// RunOnce purges everything older than the retention window.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Info("export history purged", zap.Int64("rows", n), zap.Time("cutoff", cutoff))
	return n, nil
}
