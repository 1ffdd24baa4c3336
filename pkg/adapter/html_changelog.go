package adapter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// HTMLChangelog extracts release entries from HTML changelog pages. Without an
// explicit entry selector, entries default to heading elements whose text looks
// like a version or a date.
type HTMLChangelog struct{}

const maxChangelogSummaryLen = 300

// versionHeadingRe matches headings that open a changelog entry: semantic
// versions, ISO-ish dates, or "Month D" forms
var versionHeadingRe = regexp.MustCompile(
	`(?i)v?\d+\.\d+(?:\.\d+)?|\d{4}[-/]\d{2}[-/]\d{2}|` +
		`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d+`)

// titleDatePatterns extract a date-shaped substring embedded in an entry title
var titleDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\((\d{4}[-/]\d{2}[-/]\d{2})\)`),                                          // (2024-01-15)
	regexp.MustCompile(`[-–]\s*(\d{4}[-/]\d{2}[-/]\d{2})`),                                       // - 2024-01-15
	regexp.MustCompile(`(\d{4}[-/]\d{2}[-/]\d{2})`),                                              // 2024-01-15
	regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4})`), // Jan 15, 2024
}

// Extract parses the changelog document and returns up to src.Limit() entries
func (a *HTMLChangelog) Extract(content string, src domain.Source) ([]domain.Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	container := findContainer(doc, src.Selectors.Container)

	var entries []*goquery.Selection
	if src.Selectors.Entry != "" {
		container.Find(src.Selectors.Entry).Each(func(_ int, el *goquery.Selection) {
			entries = append(entries, el)
		})
	} else {
		entries = versionHeadings(container)
	}
	if len(entries) == 0 {
		return []domain.Item{}, nil
	}

	ignores := compileIgnores(src.IgnorePatterns)
	limit := src.Limit()

	items := make([]domain.Item, 0, limit)
	for _, el := range entries {
		if len(items) >= limit {
			break
		}
		item, ok := a.parseEntry(el, src)
		if ok && !ignored(item.Title, ignores) {
			items = append(items, item)
		}
	}

	return items, nil
}

// parseEntry extracts one changelog entry, entries with no title are dropped
func (a *HTMLChangelog) parseEntry(el *goquery.Selection, src domain.Source) (domain.Item, bool) {
	sel := src.Selectors

	title := ""
	if sel.Version != "" {
		title = collapse(el.Find(sel.Version).First().Text())
	}
	if title == "" {
		if versionEl := firstMatch(el, "h1, h2, h3, h4", "[class*='version']", "[class*='release']"); versionEl != nil {
			title = collapse(versionEl.Text())
		}
	}
	if title == "" && isHeading(el) {
		title = collapse(el.Text())
	}
	if title == "" {
		return domain.Item{}, false
	}

	date := ""
	if sel.Date != "" {
		if dateEl := el.Find(sel.Date).First(); dateEl.Length() > 0 {
			date = firstNonEmpty(dateEl.AttrOr("datetime", ""), collapse(dateEl.Text()))
		}
	}
	if date == "" {
		if dateEl := firstMatch(el, "time", "[class*='date']"); dateEl != nil {
			date = firstNonEmpty(dateEl.AttrOr("datetime", ""), collapse(dateEl.Text()))
		} else {
			date = dateFromText(title)
		}
	}

	summary := ""
	if sel.Content != "" {
		if contentEl := el.Find(sel.Content).First(); contentEl.Length() > 0 {
			summary = summarize(contentEl)
		}
	}
	if summary == "" {
		if listEl := el.Find("ul, ol").First(); listEl.Length() > 0 {
			summary = summarize(listEl)
		} else {
			rest := el.Clone()
			rest.Find("h1, h2, h3, h4").Remove()
			summary = truncate(collapse(rest.Text()), maxChangelogSummaryLen)
		}
	}

	// link points at the entry's own anchor when one exists
	link := ""
	entryID := el.AttrOr("id", "")
	if entryID != "" {
		link = src.URL + "#" + entryID
	} else if anchored := el.Find("[id]").First(); anchored.Length() > 0 {
		link = src.URL + "#" + anchored.AttrOr("id", "")
	}

	id := entryID
	if id == "" {
		id = titleKey("version:", title)
	}

	return domain.Item{
		ID:      id,
		Title:   title,
		Link:    link,
		Date:    cleanDate(date),
		Summary: summary,
	}, true
}

// versionHeadings finds headings whose text matches a version or date pattern
func versionHeadings(container *goquery.Selection) []*goquery.Selection {
	var entries []*goquery.Selection
	container.Find("h1, h2, h3, h4").Each(func(_ int, el *goquery.Selection) {
		if versionHeadingRe.MatchString(collapse(el.Text())) {
			entries = append(entries, el)
		}
	})
	return entries
}

// summarize renders a change list as up to 5 bulleted truncated lines, or the
// element's plain text when it holds no list items
func summarize(el *goquery.Selection) string {
	lines := make([]string, 0, 5)
	el.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if len(lines) >= 5 {
			return false
		}
		if text := collapse(li.Text()); text != "" {
			lines = append(lines, fmt.Sprintf("• %s", truncate(text, 100)))
		}
		return true
	})
	if len(lines) > 0 {
		return strings.Join(lines, "\n")
	}
	return truncate(collapse(el.Text()), maxChangelogSummaryLen)
}

// dateFromText extracts an embedded date substring from an entry title
func dateFromText(text string) string {
	for _, re := range titleDatePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

func isHeading(el *goquery.Selection) bool {
	switch goquery.NodeName(el) {
	case "h1", "h2", "h3", "h4":
		return true
	}
	return false
}
