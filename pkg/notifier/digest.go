// Package notifier builds and delivers the consolidated change digest.
package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

const maxDigestItems = 5

// Digest is the rendered notification covering all changed sources in one run
type Digest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Count   int    `json:"count"`
}

// BuildDigest renders change records into a single human-readable digest.
// Records are grouped by organization, organizations sorted alphabetically,
// each entry marked [NEW SOURCE] or [UPDATED] with up to 5 items.
func BuildDigest(changes []domain.ChangeRecord, now time.Time) Digest {
	return Digest{
		Subject: buildSubject(changes, now),
		Body:    buildBody(changes, now),
		Count:   len(changes),
	}
}

func buildSubject(changes []domain.ChangeRecord, now time.Time) string {
	stamp := now.UTC().Format("2006-01-02 15:04 UTC")
	if len(changes) == 1 {
		return fmt.Sprintf("AI Updates: %s has new content (%s)", orgOf(changes[0]), stamp)
	}
	return fmt.Sprintf("AI Updates: %d sources have new content (%s)", len(changes), stamp)
}

func buildBody(changes []domain.ChangeRecord, now time.Time) string {
	ruler := strings.Repeat("=", 60)
	divider := strings.Repeat("-", 60)

	lines := []string{
		ruler,
		"AI/ML UPDATES DIGEST",
		ruler,
		"",
		fmt.Sprintf("Time: %s", now.UTC().Format("2006-01-02 15:04:05 UTC")),
		fmt.Sprintf("Sources with changes: %d", len(changes)),
		"",
	}

	byOrg := map[string][]domain.ChangeRecord{}
	for _, change := range changes {
		org := orgOf(change)
		byOrg[org] = append(byOrg[org], change)
	}

	orgs := make([]string, 0, len(byOrg))
	for org := range byOrg {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)

	for _, org := range orgs {
		lines = append(lines, divider, fmt.Sprintf("📢 %s", org), divider)

		for _, change := range byOrg[org] {
			status := "[UPDATED]"
			if change.IsNew {
				status = "[NEW SOURCE]"
			}
			lines = append(lines,
				fmt.Sprintf("\n%s %s", status, nameOf(change)),
				fmt.Sprintf("URL: %s", change.URL),
			)

			if len(change.Items) > 0 {
				lines = append(lines, "\nLatest items:")
				for i, item := range change.Items {
					if i >= maxDigestItems {
						break
					}
					title := item.Title
					if title == "" {
						title = "Untitled"
					}
					lines = append(lines, fmt.Sprintf("  %d. %s", i+1, title))
					if item.Link != "" {
						lines = append(lines, fmt.Sprintf("     Link: %s", item.Link))
					}
					if item.Date != "" {
						lines = append(lines, fmt.Sprintf("     Date: %s", item.Date))
					}
				}
			}

			lines = append(lines, "")
		}
	}

	lines = append(lines,
		ruler,
		"This is an automated notification from AI Updates Monitor.",
		ruler,
	)

	return strings.Join(lines, "\n")
}

func orgOf(change domain.ChangeRecord) string {
	if change.Org != "" {
		return change.Org
	}
	return "Unknown"
}

func nameOf(change domain.ChangeRecord) string {
	if change.Name != "" {
		return change.Name
	}
	if change.SourceID != "" {
		return change.SourceID
	}
	return "Unknown"
}
