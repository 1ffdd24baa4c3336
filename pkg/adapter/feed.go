package adapter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// FeedAdapter parses syndication feeds. The variant controls the small
// differences between plain RSS, Atom and GitHub releases.atom documents:
// id preference, date preference, summary source and release tag derivation.
type FeedAdapter struct {
	variant domain.AdapterType
}

// Extract parses the feed document and returns up to src.Limit() items.
// A partially parseable document yields whatever entries parsed.
func (a *FeedAdapter) Extract(content string, src domain.Source) ([]domain.Item, error) {
	feed, err := gofeed.NewParser().ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	ignores := compileIgnores(src.IgnorePatterns)
	limit := src.Limit()

	items := make([]domain.Item, 0, limit)
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		if entry == nil {
			continue
		}
		item, ok := a.parseEntry(entry)
		if !ok || ignored(item.Title, ignores) {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// parseEntry normalizes a single feed entry, entries with no title are dropped
func (a *FeedAdapter) parseEntry(entry *gofeed.Item) (domain.Item, bool) {
	title := collapse(entry.Title)
	if title == "" {
		return domain.Item{}, false
	}

	// id preference: explicit guid/id, then alternate link, then bare link
	link := entry.Link
	if link == "" && len(entry.Links) > 0 {
		link = entry.Links[0]
	}
	id := entry.GUID
	if id == "" {
		id = link
	}

	// github entry ids are tag URIs, but some repos emit plain URLs there
	if a.variant == domain.AdapterGitHubReleases && link == "" && strings.HasPrefix(id, "http") {
		link = id
	}

	var date string
	if a.variant == domain.AdapterRSS {
		date = firstNonEmpty(entry.Published, entry.Updated)
	} else {
		date = firstNonEmpty(entry.Updated, entry.Published)
	}

	var summary string
	if a.variant == domain.AdapterGitHubReleases {
		// release notes live in the content element
		summary = firstNonEmpty(entry.Content, entry.Description)
	} else {
		summary = firstNonEmpty(entry.Description, entry.Content)
	}
	summary = truncate(cleanHTML(summary), maxSummaryLen)

	item := domain.Item{
		ID:      id,
		Title:   title,
		Link:    link,
		Date:    date,
		Summary: summary,
	}
	if a.variant == domain.AdapterGitHubReleases {
		item.Tag = releaseTag(id, title)
	}

	return item, true
}

// semverRe matches version-looking strings like v1.2.3 or 2.0.0-rc.1
var semverRe = regexp.MustCompile(`v?\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9.]+)?`)

// releaseTag derives the release tag from a GitHub tag URI
// (tag:github.com,2008:Repository/123456/v1.0.0) or from the entry title
func releaseTag(id, title string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 && idx+1 < len(id) {
		return id[idx+1:]
	}
	if m := semverRe.FindString(title); m != "" {
		return m
	}
	return strings.TrimSpace(title)
}
