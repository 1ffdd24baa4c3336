package domain

// AdapterType identifies the extraction strategy for a source.
type AdapterType string

// known adapter types, the set is closed and checked at config validation time
const (
	AdapterRSS            AdapterType = "rss"
	AdapterAtom           AdapterType = "atom"
	AdapterGitHubReleases AdapterType = "github_releases_atom"
	AdapterHTMLArticles   AdapterType = "html_articles"
	AdapterHTMLChangelog  AdapterType = "html_changelog"
)

// Valid reports if the adapter type is one of the known types
func (t AdapterType) Valid() bool {
	switch t {
	case AdapterRSS, AdapterAtom, AdapterGitHubReleases, AdapterHTMLArticles, AdapterHTMLChangelog:
		return true
	}
	return false
}

// Selectors holds optional CSS selectors for markup-based adapters.
// Empty selectors fall back to the adapter's generic heuristics.
type Selectors struct {
	Container string `yaml:"container" json:"container,omitempty"`
	Item      string `yaml:"item" json:"item,omitempty"`
	Entry     string `yaml:"entry" json:"entry,omitempty"`
	Title     string `yaml:"title" json:"title,omitempty"`
	Version   string `yaml:"version" json:"version,omitempty"`
	Link      string `yaml:"link" json:"link,omitempty"`
	Date      string `yaml:"date" json:"date,omitempty"`
	Content   string `yaml:"content" json:"content,omitempty"`
}

// Source defines one monitored content source, immutable for the duration of a run
type Source struct {
	ID             string
	Adapter        AdapterType
	URL            string
	Org            string
	Name           string
	MaxItems       int
	IgnorePatterns []string
	Selectors      Selectors
}

// DefaultMaxItems limits how many extracted items are retained per source
const DefaultMaxItems = 10

// Limit returns the configured per-source item cap or the default
func (s Source) Limit() int {
	if s.MaxItems > 0 {
		return s.MaxItems
	}
	return DefaultMaxItems
}

// DisplayName returns the human-readable source name, falling back to the id
func (s Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// Organization returns the display org, "Unknown" when not set
func (s Source) Organization() string {
	if s.Org != "" {
		return s.Org
	}
	return "Unknown"
}
