package adapter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// HTMLArticles extracts article lists from generic HTML pages. Explicit CSS
// selectors from the source definition take precedence; without them the
// adapter falls back to common article-listing patterns.
type HTMLArticles struct{}

// itemPatterns are tried in order when no item selector is configured.
// The first pattern matching at least two elements wins: a true listing
// has at least two entries.
var itemPatterns = []string{
	"article",
	"[class*='article']",
	"[class*='post']",
	"[class*='card']",
	"[class*='item']",
	"li[class*='blog']",
	".blog-post",
	".news-item",
}

// Extract parses the HTML document and returns up to src.Limit() articles
func (a *HTMLArticles) Extract(content string, src domain.Source) ([]domain.Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	container := findContainer(doc, src.Selectors.Container)

	var elements *goquery.Selection
	if src.Selectors.Item != "" {
		elements = container.Find(src.Selectors.Item)
	} else {
		elements = fallbackItems(container, itemPatterns, 2)
	}
	if elements == nil || elements.Length() == 0 {
		return []domain.Item{}, nil
	}

	ignores := compileIgnores(src.IgnorePatterns)
	limit := src.Limit()

	items := make([]domain.Item, 0, limit)
	elements.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if len(items) >= limit {
			return false
		}
		item, ok := a.parseItem(el, src)
		if ok && !ignored(item.Title, ignores) {
			items = append(items, item)
		}
		return true
	})

	return items, nil
}

// parseItem extracts one article, items with no title are dropped
func (a *HTMLArticles) parseItem(el *goquery.Selection, src domain.Source) (domain.Item, bool) {
	sel := src.Selectors

	var titleEl *goquery.Selection
	if sel.Title != "" {
		titleEl = el.Find(sel.Title).First()
	}
	if titleEl == nil || titleEl.Length() == 0 {
		titleEl = firstMatch(el, "h1, h2, h3, h4", "[class*='title']", "a")
	}

	title := ""
	if titleEl != nil {
		title = collapse(titleEl.Text())
	}
	if title == "" {
		return domain.Item{}, false
	}

	// link: explicit selector, the title element itself when it is an anchor,
	// its nearest anchor ancestor, or the first anchor descendant
	link := ""
	if sel.Link != "" {
		link = el.Find(sel.Link).First().AttrOr("href", "")
	}
	if link == "" && titleEl != nil {
		if goquery.NodeName(titleEl) == "a" {
			link = titleEl.AttrOr("href", "")
		} else if parent := titleEl.Closest("a"); parent.Length() > 0 {
			link = parent.AttrOr("href", "")
		}
	}
	if link == "" {
		link = el.Find("a[href]").First().AttrOr("href", "")
	}
	link = resolveLink(link, src.URL)

	date := ""
	if sel.Date != "" {
		if dateEl := el.Find(sel.Date).First(); dateEl.Length() > 0 {
			date = firstNonEmpty(collapse(dateEl.Text()), dateEl.AttrOr("datetime", ""))
		}
	}
	if date == "" {
		if dateEl := firstMatch(el, "time", "[class*='date']", "[class*='time']"); dateEl != nil {
			date = firstNonEmpty(dateEl.AttrOr("datetime", ""), collapse(dateEl.Text()))
		}
	}

	id := link
	if id == "" {
		id = titleKey("title:", title)
	}

	return domain.Item{ID: id, Title: title, Link: link, Date: cleanDate(date)}, true
}

// findContainer resolves the container selector, whole document when the
// selector is empty or matches nothing
func findContainer(doc *goquery.Document, selector string) *goquery.Selection {
	if selector != "" {
		if c := doc.Find(selector).First(); c.Length() > 0 {
			return c
		}
	}
	return doc.Selection
}

// fallbackItems tries patterns in order, accepting the first one that matches
// at least min elements
func fallbackItems(container *goquery.Selection, patterns []string, min int) *goquery.Selection {
	for _, p := range patterns {
		if matches := container.Find(p); matches.Length() >= min {
			return matches
		}
	}
	return nil
}

// firstMatch returns the first element matching any of the selectors, in order
func firstMatch(el *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, s := range selectors {
		if m := el.Find(s).First(); m.Length() > 0 {
			return m
		}
	}
	return nil
}

// resolveLink makes a relative link absolute against the source's base URL
func resolveLink(link, base string) string {
	if link == "" || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return link
	}
	resolved, err := baseURL.Parse(link)
	if err != nil {
		return link
	}
	return resolved.String()
}
