package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Runner is the unit of scheduled work.
type Runner interface {
	ScheduledRun(ctx context.Context)
}

// Scheduler triggers a Runner on a fixed interval. The run itself owns
// its failure handling; the scheduler only drives the calendar.
type Scheduler struct {
	runner   Runner
	interval time.Duration
}

// New creates a Scheduler. An interval of 0 or less defaults to 24 hours.
func New(runner Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{runner: runner, interval: interval}
}

// Start blocks, invoking the runner once per interval until the context
// is canceled. Run it in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("scheduler started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runner.ScheduledRun(ctx)
		}
	}
}
