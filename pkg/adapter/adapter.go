// Package adapter turns raw fetched content into normalized item lists.
// Each adapter is a format-specific extraction strategy; the set of types is
// closed and unknown types are rejected at config validation time.
package adapter

import (
	"fmt"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// Adapter extracts normalized items from a raw document. A returned error is
// an explicit whole-document parse failure; the processor treats it as "no
// items" for this run rather than propagating it. Individual unparseable
// entries are skipped, so a malformed-but-partially-parseable document still
// yields whatever entries parsed.
type Adapter interface {
	Extract(content string, src domain.Source) ([]domain.Item, error)
}

// Get returns the adapter for the given type
func Get(t domain.AdapterType) (Adapter, error) {
	switch t {
	case domain.AdapterRSS, domain.AdapterAtom, domain.AdapterGitHubReleases:
		return &FeedAdapter{variant: t}, nil
	case domain.AdapterHTMLArticles:
		return &HTMLArticles{}, nil
	case domain.AdapterHTMLChangelog:
		return &HTMLChangelog{}, nil
	}
	return nil, fmt.Errorf("unknown adapter type %q", t)
}
