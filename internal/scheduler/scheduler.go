// Package scheduler re-runs the widget pipeline every refresh interval.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pfrederiksen/covid-widget/internal/logger"
)

// DefaultTimeout bounds a single run
const DefaultTimeout = 2 * time.Minute

// Job is one independent refresh of the widget
type Job func(ctx context.Context) error

// Scheduler periodically runs a Job
type Scheduler struct {
	scheduler *gocron.Scheduler
	ctx       context.Context
	interval  time.Duration
	timeout   time.Duration
	job       Job
}

// New creates a new Scheduler
func New(interval time.Duration, job Job) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	// A slow page load must not stack a second run on top of it
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		interval:  interval,
		timeout:   DefaultTimeout,
		job:       job,
	}
}

// Start schedules the job, running it immediately and then every interval.
// Each run's context derives from ctx, so canceling ctx aborts a run in flight.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid interval: %s", s.interval)
	}
	s.ctx = ctx

	_, err := s.scheduler.Every(s.interval).Do(s.run)
	if err != nil {
		return fmt.Errorf("scheduling refresh: %w", err)
	}

	s.scheduler.StartAsync()
	logger.Info("scheduler started", logger.Fields{"interval": s.interval.String()})
	return nil
}

// Stop stops the scheduler and cancels any future runs
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.job(ctx); err != nil {
		logger.IncrCounter("scheduler.run_failed")
		logger.Warn("scheduled refresh failed", nil, err)
		return
	}

	logger.RecordTiming("scheduler.run", time.Since(start))
	logger.Debug("scheduled refresh completed", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
}
