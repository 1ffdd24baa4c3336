package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// Scheduler triggers monitoring runs on a fixed interval. The trigger itself
// may also be external (cron, HTTP); the scheduler just supplies the loop for
// daemon mode.
type Scheduler struct {
	runner   *Runner
	sources  []domain.Source
	interval time.Duration

	mu      sync.Mutex
	last    domain.RunSummary
	hasLast bool

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler running the sources every interval
func NewScheduler(runner *Runner, sources []domain.Source, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &Scheduler{runner: runner, sources: sources, interval: interval}
}

// Start begins the periodic loop, the first run fires immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.RunNow(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunNow(ctx)
			}
		}
	}()

	lgr.Printf("[INFO] scheduler started with interval %v over %d sources", s.interval, len(s.sources))
}

// Stop gracefully stops the scheduler, waiting for an in-flight run
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunNow triggers an immediate run and records its summary
func (s *Scheduler) RunNow(ctx context.Context) domain.RunSummary {
	summary := s.runner.Run(ctx, s.sources)

	s.mu.Lock()
	s.last = summary
	s.hasLast = true
	s.mu.Unlock()

	return summary
}

// LastSummary returns the most recent run summary, false when no run completed yet
func (s *Scheduler) LastSummary() (domain.RunSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}
