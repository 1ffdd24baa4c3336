// Package monitor orchestrates change detection: it fetches every configured
// source, extracts items, fingerprints them and compares against stored state.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/kpus-tech/ai-updates-monitor/pkg/adapter"
	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
	"github.com/kpus-tech/ai-updates-monitor/pkg/fetcher"
	"github.com/kpus-tech/ai-updates-monitor/pkg/fingerprint"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/processor.go -pkg mocks -skip-ensure -fmt goimports . SourceProcessor

// Fetcher retrieves raw content with conditional GET support
type Fetcher interface {
	Fetch(ctx context.Context, url, etag, lastModified string) fetcher.Result
}

// Store persists per-source state, Get returns nil for unseen sources
type Store interface {
	Get(ctx context.Context, sourceID string) (*domain.SourceState, error)
	Put(ctx context.Context, st *domain.SourceState) error
}

// Notifier delivers the aggregated digest in one call
type Notifier interface {
	SendDigest(ctx context.Context, changes []domain.ChangeRecord) error
}

// recordItems caps how many items a change record carries
const recordItems = 5

// Processor runs the fetch, extract, fingerprint, compare cycle for one source
type Processor struct {
	fetcher Fetcher
	store   Store
	now     func() time.Time
}

// NewProcessor creates a per-source processor
func NewProcessor(f Fetcher, s Store) *Processor {
	return &Processor{fetcher: f, store: s, now: time.Now}
}

// Process checks a single source. It returns a change record when the source's
// content changed since the last check, nil when nothing changed, and an error
// for fetch failures that skip the source this run. Parse failures count as
// "no items", not as skipped sources. State is never mutated on failure paths,
// and an empty extraction leaves stored state untouched: an empty result is an
// ambiguous upstream signal.
func (p *Processor) Process(ctx context.Context, src domain.Source) (*domain.ChangeRecord, error) {
	prior, err := p.store.Get(ctx, src.ID)
	if err != nil {
		// a failed read degrades to "never seen", the source is still checked
		lgr.Printf("[WARN] state read failed for %s, treating as new: %v", src.ID, err)
		prior = nil
	}

	var etag, lastModified string
	if prior != nil {
		etag, lastModified = prior.ETag, prior.LastModified
	}

	res := p.fetcher.Fetch(ctx, src.URL, etag, lastModified)
	if res.NotModified {
		lgr.Printf("[DEBUG] %s not modified (304)", src.ID)
		return nil, nil
	}
	if res.Err != "" {
		return nil, fmt.Errorf("fetch %s: %s", src.ID, res.Err)
	}

	adp, err := adapter.Get(src.Adapter)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", src.ID, err)
	}

	items, err := adp.Extract(res.Body, src)
	if err != nil {
		// a parse failure means no items this run, never a skipped source
		lgr.Printf("[WARN] extract failed for %s: %v", src.ID, err)
		return nil, nil
	}
	if len(items) == 0 {
		lgr.Printf("[DEBUG] %s: no items extracted", src.ID)
		return nil, nil
	}

	fp := fingerprint.Compute(items, src.Limit())

	if prior != nil && prior.Fingerprint == fp {
		// unchanged, refresh validators so the next check can still send a conditional GET
		refreshed := *prior
		refreshed.ETag = res.ETag
		refreshed.LastModified = res.LastModified
		refreshed.LastSeen = p.now().UTC()
		if err := p.store.Put(ctx, &refreshed); err != nil {
			lgr.Printf("[WARN] state write failed for %s: %v", src.ID, err)
		}
		lgr.Printf("[DEBUG] %s: no change (same fingerprint)", src.ID)
		return nil, nil
	}

	isNew := prior == nil || prior.Fingerprint == ""
	oldFp := "none"
	if !isNew {
		oldFp = prior.Fingerprint[:8]
	}
	lgr.Printf("[INFO] %s changed, old=%s new=%s", src.ID, oldFp, fp[:8])

	st := &domain.SourceState{
		SourceID:     src.ID,
		Fingerprint:  fp,
		ETag:         res.ETag,
		LastModified: res.LastModified,
		LastSeen:     p.now().UTC(),
		LastItemKey:  items[0].Key(),
	}
	if err := p.store.Put(ctx, st); err != nil {
		// a lost write means the change is re-reported next run, acceptable
		lgr.Printf("[WARN] state write failed for %s: %v", src.ID, err)
	}

	top := items
	if len(top) > recordItems {
		top = top[:recordItems]
	}

	return &domain.ChangeRecord{
		SourceID: src.ID,
		Org:      src.Organization(),
		Name:     src.DisplayName(),
		URL:      src.URL,
		Items:    top,
		IsNew:    isNew,
	}, nil
}
