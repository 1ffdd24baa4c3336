// Package config loads the monitor configuration: the list of sources to
// watch plus fetcher, state, notification and scheduling settings.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Fetcher struct {
		Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Per-request timeout"`
		Concurrency int           `yaml:"concurrency" json:"concurrency" jsonschema:"default=10,description=Maximum concurrent in-flight requests"`
		UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for HTTP requests"`
	} `yaml:"fetcher" json:"fetcher" jsonschema:"description=HTTP fetcher configuration"`

	State struct {
		DSN string `yaml:"dsn" json:"dsn" jsonschema:"default=file:updates-monitor.db?cache=shared&mode=rwc,description=SQLite connection string. empty string selects the in-memory store"`
	} `yaml:"state" json:"state" jsonschema:"description=State store configuration"`

	Notify struct {
		Type       string        `yaml:"type" json:"type" jsonschema:"default=log,enum=log,enum=webhook,description=Digest delivery channel"`
		WebhookURL string        `yaml:"webhook_url" json:"webhook_url" jsonschema:"description=Webhook endpoint for type=webhook"`
		Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Webhook delivery timeout"`
	} `yaml:"notify" json:"notify" jsonschema:"description=Notification configuration"`

	Schedule struct {
		Interval    time.Duration `yaml:"interval" json:"interval" jsonschema:"default=30m,description=Check interval in daemon mode"`
		Concurrency int           `yaml:"concurrency" json:"concurrency" jsonschema:"default=10,description=Maximum concurrently processed sources"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Run scheduling configuration"`

	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP trigger server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=5m,description=HTTP server timeout, covers a full triggered run"`
	} `yaml:"server" json:"server" jsonschema:"description=HTTP trigger server configuration"`

	Sources []Source `yaml:"sources" json:"sources" jsonschema:"required,description=Monitored sources"`
}

// Source is the configuration form of one monitored source
type Source struct {
	ID             string           `yaml:"id" json:"id" jsonschema:"required,description=Unique source identifier"`
	Adapter        string           `yaml:"adapter" json:"adapter" jsonschema:"required,enum=rss,enum=atom,enum=github_releases_atom,enum=html_articles,enum=html_changelog,description=Extraction adapter type"`
	URL            string           `yaml:"url" json:"url" jsonschema:"required,description=Source URL"`
	Org            string           `yaml:"org" json:"org" jsonschema:"description=Organization for digest grouping"`
	Name           string           `yaml:"name" json:"name" jsonschema:"description=Display name"`
	MaxItems       int              `yaml:"max_items" json:"max_items" jsonschema:"default=10,description=Maximum items retained per check"`
	IgnorePatterns []string         `yaml:"ignore_patterns" json:"ignore_patterns" jsonschema:"description=Regexes filtering items by title"`
	Selectors      domain.Selectors `yaml:"selectors" json:"selectors" jsonschema:"description=CSS selectors for markup adapters"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for the fetcher
	if cfg.Fetcher.Timeout == 0 {
		cfg.Fetcher.Timeout = 20 * time.Second
	}
	if cfg.Fetcher.Concurrency == 0 {
		cfg.Fetcher.Concurrency = 10
	}

	// set defaults for notification
	if cfg.Notify.Type == "" {
		cfg.Notify.Type = "log"
	}
	if cfg.Notify.Timeout == 0 {
		cfg.Notify.Timeout = 10 * time.Second
	}

	// set defaults for scheduling
	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = 30 * time.Minute
	}
	if cfg.Schedule.Concurrency == 0 {
		cfg.Schedule.Concurrency = 10
	}

	// set defaults for the server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 5 * time.Minute
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SourceList converts configured sources into domain sources
func (c *Config) SourceList() []domain.Source {
	sources := make([]domain.Source, len(c.Sources))
	for i, s := range c.Sources {
		sources[i] = domain.Source{
			ID:             s.ID,
			Adapter:        domain.AdapterType(s.Adapter),
			URL:            s.URL,
			Org:            s.Org,
			Name:           s.Name,
			MaxItems:       s.MaxItems,
			IgnorePatterns: s.IgnorePatterns,
			Selectors:      s.Selectors,
		}
	}
	return sources
}
