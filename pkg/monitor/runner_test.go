package monitor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
	"github.com/kpus-tech/ai-updates-monitor/pkg/monitor/mocks"
)

func makeSources(n int) []domain.Source {
	sources := make([]domain.Source, n)
	for i := range sources {
		sources[i] = domain.Source{ID: fmt.Sprintf("src-%d", i), Adapter: domain.AdapterRSS,
			URL: fmt.Sprintf("https://example.com/%d", i)}
	}
	return sources
}

func TestRunner_FailuresDoNotAbortRun(t *testing.T) {
	processor := &mocks.SourceProcessorMock{
		ProcessFunc: func(ctx context.Context, src domain.Source) (*domain.ChangeRecord, error) {
			switch src.ID {
			case "src-1":
				return nil, fmt.Errorf("fetch failed")
			case "src-2":
				return &domain.ChangeRecord{SourceID: src.ID}, nil
			default:
				return nil, nil
			}
		},
	}
	notifier := &mocks.NotifierMock{
		SendDigestFunc: func(ctx context.Context, changes []domain.ChangeRecord) error { return nil },
	}

	r := NewRunner(processor, notifier, 4)
	summary := r.Run(context.Background(), makeSources(5))

	assert.Equal(t, StatusSuccess, summary.Status)
	assert.Equal(t, 5, summary.SourcesChecked)
	assert.Equal(t, 1, summary.ChangesDetected)
	assert.Equal(t, 1, summary.Errors)
	assert.Len(t, processor.ProcessCalls(), 5, "every source processed despite the failure")

	require.Len(t, notifier.SendDigestCalls(), 1, "one consolidated digest, never one per source")
	require.Len(t, notifier.SendDigestCalls()[0].Changes, 1)
	assert.Equal(t, "src-2", notifier.SendDigestCalls()[0].Changes[0].SourceID)
}

func TestRunner_NoChangesNoNotification(t *testing.T) {
	processor := &mocks.SourceProcessorMock{
		ProcessFunc: func(ctx context.Context, src domain.Source) (*domain.ChangeRecord, error) {
			return nil, nil
		},
	}
	notifier := &mocks.NotifierMock{
		SendDigestFunc: func(ctx context.Context, changes []domain.ChangeRecord) error { return nil },
	}

	r := NewRunner(processor, notifier, 0) // 0 falls back to the default cap
	summary := r.Run(context.Background(), makeSources(3))

	assert.Equal(t, StatusSuccess, summary.Status)
	assert.Equal(t, 0, summary.ChangesDetected)
	assert.Empty(t, notifier.SendDigestCalls())
}

func TestRunner_DigestFailureDegrades(t *testing.T) {
	processor := &mocks.SourceProcessorMock{
		ProcessFunc: func(ctx context.Context, src domain.Source) (*domain.ChangeRecord, error) {
			return &domain.ChangeRecord{SourceID: src.ID}, nil
		},
	}
	notifier := &mocks.NotifierMock{
		SendDigestFunc: func(ctx context.Context, changes []domain.ChangeRecord) error {
			return fmt.Errorf("webhook down")
		},
	}

	r := NewRunner(processor, notifier, 2)
	summary := r.Run(context.Background(), makeSources(2))

	assert.Equal(t, StatusDegraded, summary.Status)
	assert.Equal(t, 2, summary.ChangesDetected, "changes are still counted")
	assert.Equal(t, 1, summary.Errors)
}

func TestRunner_ConcurrencyBounded(t *testing.T) {
	var inFlight, maxInFlight int64
	processor := &mocks.SourceProcessorMock{
		ProcessFunc: func(ctx context.Context, src domain.Source) (*domain.ChangeRecord, error) {
			cur := atomic.AddInt64(&inFlight, 1)
			for {
				prev := atomic.LoadInt64(&maxInFlight)
				if cur <= prev || atomic.CompareAndSwapInt64(&maxInFlight, prev, cur) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
			return nil, nil
		},
	}
	notifier := &mocks.NotifierMock{
		SendDigestFunc: func(ctx context.Context, changes []domain.ChangeRecord) error { return nil },
	}

	r := NewRunner(processor, notifier, 3)
	summary := r.Run(context.Background(), makeSources(12))

	assert.Equal(t, 12, summary.SourcesChecked)
	assert.LessOrEqual(t, atomic.LoadInt64(&maxInFlight), int64(3), "no more than 3 sources in flight")
}

func TestScheduler_RunNowAndLastSummary(t *testing.T) {
	processor := &mocks.SourceProcessorMock{
		ProcessFunc: func(ctx context.Context, src domain.Source) (*domain.ChangeRecord, error) {
			return nil, nil
		},
	}
	notifier := &mocks.NotifierMock{
		SendDigestFunc: func(ctx context.Context, changes []domain.ChangeRecord) error { return nil },
	}
	r := NewRunner(processor, notifier, 2)

	s := NewScheduler(r, makeSources(2), time.Hour)

	_, ok := s.LastSummary()
	assert.False(t, ok, "no summary before the first run")

	summary := s.RunNow(context.Background())
	assert.Equal(t, 2, summary.SourcesChecked)

	last, ok := s.LastSummary()
	require.True(t, ok)
	assert.Equal(t, summary, last)
}

func TestScheduler_StartRunsImmediately(t *testing.T) {
	var runs int64
	done := make(chan struct{})
	var once sync.Once

	processor := &mocks.SourceProcessorMock{
		ProcessFunc: func(ctx context.Context, src domain.Source) (*domain.ChangeRecord, error) {
			atomic.AddInt64(&runs, 1)
			once.Do(func() { close(done) })
			return nil, nil
		},
	}
	notifier := &mocks.NotifierMock{
		SendDigestFunc: func(ctx context.Context, changes []domain.ChangeRecord) error { return nil },
	}
	r := NewRunner(processor, notifier, 1)

	s := NewScheduler(r, makeSources(1), time.Hour)
	s.Start(context.Background())
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("first run did not fire immediately")
	}

	s.Stop()
	_, ok := s.LastSummary()
	assert.True(t, ok)
	assert.Equal(t, int64(1), atomic.LoadInt64(&runs))
}
