package config

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// Validate checks the configuration for errors that would otherwise surface
// mid-run: unknown adapter types are rejected here, not at dispatch time
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if s.ID == "" {
			return fmt.Errorf("source #%d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("source %s: duplicate id", s.ID)
		}
		seen[s.ID] = true

		if !domain.AdapterType(s.Adapter).Valid() {
			return fmt.Errorf("source %s: unknown adapter type %q", s.ID, s.Adapter)
		}

		u, err := url.Parse(s.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("source %s: invalid url %q", s.ID, s.URL)
		}

		if s.MaxItems < 0 {
			return fmt.Errorf("source %s: max_items must not be negative", s.ID)
		}

		for _, p := range s.IgnorePatterns {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("source %s: invalid ignore pattern %q: %w", s.ID, p, err)
			}
		}
	}

	switch c.Notify.Type {
	case "log":
	case "webhook":
		if c.Notify.WebhookURL == "" {
			return fmt.Errorf("notify type webhook requires webhook_url")
		}
	default:
		return fmt.Errorf("unknown notify type %q", c.Notify.Type)
	}

	return nil
}
