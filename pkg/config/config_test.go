package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
fetcher:
  timeout: 5s
  concurrency: 3
  user_agent: "test-agent/1.0"
state:
  dsn: "file:test.db"
notify:
  type: webhook
  webhook_url: https://hooks.example.com/x
  timeout: 3s
schedule:
  interval: 15m
  concurrency: 4
server:
  listen: ":9090"
  timeout: 2m
sources:
  - id: acme-blog
    adapter: html_articles
    url: https://acme.test/blog
    org: Acme
    name: Acme Blog
    max_items: 5
    ignore_patterns:
      - "(?i)webinar"
    selectors:
      container: "main"
      item: ".post"
      title: "h2"
  - id: acme-releases
    adapter: github_releases_atom
    url: https://github.com/acme/widget/releases.atom
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, 3, cfg.Fetcher.Concurrency)
	assert.Equal(t, "test-agent/1.0", cfg.Fetcher.UserAgent)
	assert.Equal(t, "file:test.db", cfg.State.DSN)
	assert.Equal(t, "webhook", cfg.Notify.Type)
	assert.Equal(t, 15*time.Minute, cfg.Schedule.Interval)
	assert.Equal(t, ":9090", cfg.Server.Listen)

	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "acme-blog", cfg.Sources[0].ID)
	assert.Equal(t, 5, cfg.Sources[0].MaxItems)
	assert.Equal(t, "main", cfg.Sources[0].Selectors.Container)
	assert.Equal(t, []string{"(?i)webinar"}, cfg.Sources[0].IgnorePatterns)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
sources:
  - id: s1
    adapter: rss
    url: https://example.com/feed
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, 10, cfg.Fetcher.Concurrency)
	assert.Equal(t, "log", cfg.Notify.Type)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Schedule.Interval)
	assert.Equal(t, 10, cfg.Schedule.Concurrency)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 5*time.Minute, cfg.Server.Timeout)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("HOOK_URL", "https://hooks.example.com/secret")
	path := writeConfig(t, `
notify:
  type: webhook
  webhook_url: ${HOOK_URL}
sources:
  - id: s1
    adapter: rss
    url: https://example.com/feed
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/secret", cfg.Notify.WebhookURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "sources: [\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestSourceList(t *testing.T) {
	path := writeConfig(t, `
sources:
  - id: s1
    adapter: html_changelog
    url: https://example.com/changelog
    org: Example
    selectors:
      entry: ".release"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	sources := cfg.SourceList()
	require.Len(t, sources, 1)
	assert.Equal(t, domain.AdapterHTMLChangelog, sources[0].Adapter)
	assert.Equal(t, "Example", sources[0].Org)
	assert.Equal(t, ".release", sources[0].Selectors.Entry)
	assert.Equal(t, 10, sources[0].Limit(), "unset max_items falls back to the default")
}
