package domain

import "time"

// Item is a normalized entry extracted from a source document.
// Adapters return items in document order, newest first by convention.
type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	Date    string `json:"date,omitempty"`
	Summary string `json:"summary,omitempty"`
	Tag     string `json:"tag,omitempty"` // release adapters only
}

// Key returns the stable identity of the item, id preferred over link
func (i Item) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.Link
}

// SourceState is the persisted per-source check state, keyed by source id.
// Created on first successful processing, refreshed on every completed
// fetch+extract cycle, never deleted by the monitor itself.
type SourceState struct {
	SourceID     string    `db:"source_id"`
	Fingerprint  string    `db:"fingerprint"`
	ETag         string    `db:"etag"`
	LastModified string    `db:"last_modified"`
	LastSeen     time.Time `db:"last_seen_utc"`
	LastItemKey  string    `db:"last_item_key"`
}

// ChangeRecord describes a detected change for one source
type ChangeRecord struct {
	SourceID string `json:"source_id"`
	Org      string `json:"org"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Items    []Item `json:"items"` // up to 5 newest items
	IsNew    bool   `json:"is_new"`
}

// RunSummary is the structured result of one monitoring run
type RunSummary struct {
	Status          string    `json:"status"`
	SourcesChecked  int       `json:"sources_checked"`
	ChangesDetected int       `json:"changes_detected"`
	Errors          int       `json:"errors"`
	DurationSeconds float64   `json:"duration_seconds"`
	Timestamp       time.Time `json:"timestamp"`
}
