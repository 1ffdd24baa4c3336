package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// SourceProcessor checks one source for changes
type SourceProcessor interface {
	Process(ctx context.Context, src domain.Source) (*domain.ChangeRecord, error)
}

// run status values reported in the summary
const (
	StatusSuccess  = "success"
	StatusDegraded = "degraded"
)

const defaultConcurrency = 10

// Runner fans source processing out with bounded concurrency, aggregates the
// change records and hands them to the notifier as a single digest
type Runner struct {
	processor   SourceProcessor
	notifier    Notifier
	concurrency int
	now         func() time.Time
}

// NewRunner creates a run orchestrator, concurrency <= 0 uses the default of 10
func NewRunner(processor SourceProcessor, notifier Notifier, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Runner{processor: processor, notifier: notifier, concurrency: concurrency, now: time.Now}
}

// Run processes every source and returns the structured run summary. A failing
// source never aborts the run; only digest delivery failure degrades the result.
func (r *Runner) Run(ctx context.Context, sources []domain.Source) domain.RunSummary {
	start := r.now()
	lgr.Printf("[INFO] starting run over %d sources", len(sources))

	var (
		mu       sync.Mutex
		changes  []domain.ChangeRecord
		errCount int
	)

	g := errgroup.Group{}
	g.SetLimit(r.concurrency)

	for _, src := range sources {
		g.Go(func() error {
			rec, err := r.processor.Process(ctx, src)
			if err != nil {
				lgr.Printf("[WARN] source %s skipped: %v", src.ID, err)
				mu.Lock()
				errCount++
				mu.Unlock()
				return nil
			}
			if rec != nil {
				mu.Lock()
				changes = append(changes, *rec)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, failures are counted above

	status := StatusSuccess
	if len(changes) > 0 {
		if err := r.notifier.SendDigest(ctx, changes); err != nil {
			// state is already updated, an undelivered digest is not re-sent
			lgr.Printf("[ERROR] digest delivery failed: %v", err)
			status = StatusDegraded
			errCount++
		} else {
			lgr.Printf("[INFO] sent digest with %d changes", len(changes))
		}
	} else {
		lgr.Printf("[INFO] no changes detected")
	}

	end := r.now()
	summary := domain.RunSummary{
		Status:          status,
		SourcesChecked:  len(sources),
		ChangesDetected: len(changes),
		Errors:          errCount,
		DurationSeconds: end.Sub(start).Seconds(),
		Timestamp:       end.UTC(),
	}

	lgr.Printf("[INFO] run completed: %d sources, %d changes, %d errors in %.2fs",
		summary.SourcesChecked, summary.ChangesDetected, summary.Errors, summary.DurationSeconds)

	return summary
}
