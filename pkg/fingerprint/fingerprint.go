// Package fingerprint computes deterministic digests over extracted items,
// used to decide whether a source's content meaningfully changed between runs.
package fingerprint

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// projection is the stable subset of an item that participates in the digest.
// Dates, summaries and adapter-specific fields are deliberately excluded so
// that formatting noise does not signal change.
type projection struct {
	ID    string `json:"id"`
	Link  string `json:"link"`
	Title string `json:"title"`
}

func (p projection) sortKey() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Link
}

// Compute returns the SHA-256 hex digest of a normalized, order-independent
// projection of the top maxItems items. An empty list maps to a fixed sentinel
// digest so empty-vs-empty never signals change. maxItems <= 0 uses the default.
func Compute(items []domain.Item, maxItems int) string {
	if len(items) == 0 {
		return emptyDigest()
	}
	if maxItems <= 0 {
		maxItems = domain.DefaultMaxItems
	}
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	projections := make([]projection, len(items))
	for i, item := range items {
		projections[i] = projection{
			ID:    item.ID,
			Link:  item.Link,
			Title: normalizeText(item.Title),
		}
	}

	// sort by id-or-link so reordering of unchanged items yields the same digest
	sort.Slice(projections, func(i, j int) bool {
		return projections[i].sortKey() < projections[j].sortKey()
	})

	data, err := json.Marshal(projections)
	if err != nil { // projections are plain strings, marshal can't fail
		return emptyDigest()
	}

	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// ContentHash hashes whitespace-normalized raw content, a fallback for
// documents where item extraction isn't possible
func ContentHash(content string) string {
	normalized := strings.Join(strings.Fields(content), " ")
	if normalized == "" {
		return emptyDigest()
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(normalized)))
}

func emptyDigest() string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte("empty")))
}

// normalizeText lowercases and collapses whitespace for case-insensitive,
// formatting-insensitive comparison
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
