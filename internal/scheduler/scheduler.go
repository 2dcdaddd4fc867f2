package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Runner is one full-refresh ingestion pass. *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler owns the watch loop: reruns the full-refresh pipeline on an
// interval. A failed run leaves the previous dataset in place (the store's
// replace is transactional), so the loop just logs and waits for the next tick.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that reruns the pipeline at the given interval.
func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the refresh loop. It runs one immediate pass, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.runner.Run(ctx); err != nil {
		s.logger.Error("refresh failed, keeping previous dataset", "error", err)
	}
}
