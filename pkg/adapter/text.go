package adapter

import (
	"html"
	"regexp"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
)

const (
	maxSummaryLen  = 500
	maxTitleKeyLen = 100
)

// stripper removes all markup, leaving plain text only
var stripper = bluemonday.StrictPolicy()

// cleanHTML strips tags, unescapes entities and collapses whitespace
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	return collapse(html.UnescapeString(stripper.Sanitize(s)))
}

// collapse normalizes all whitespace runs to single spaces and trims
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// titleKey derives a stable item id from a title when no natural key exists
func titleKey(prefix, title string) string {
	return prefix + truncate(collapse(strings.ToLower(title)), maxTitleKeyLen)
}

// compileIgnores compiles ignore patterns, skipping invalid ones
func compileIgnores(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			lgr.Printf("[WARN] invalid ignore pattern %q skipped: %v", p, err)
			continue
		}
		res = append(res, re)
	}
	return res
}

// ignored reports if the title matches any of the ignore patterns
func ignored(title string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

// dateLabelRe matches leading labels like "Published:" or "Posted -"
var dateLabelRe = regexp.MustCompile(`(?i)^(published|posted|updated|date)[:|\s]*`)

// cleanDate strips leading labels and collapses whitespace in a date string
func cleanDate(date string) string {
	return collapse(dateLabelRe.ReplaceAllString(date, ""))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
