package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpus-tech/ai-updates-monitor/pkg/config"
	"github.com/kpus-tech/ai-updates-monitor/pkg/notifier"
	"github.com/kpus-tech/ai-updates-monitor/pkg/state"
)

const testFeed = `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>
<item><title>first post</title><link>https://example.com/1</link><guid>1</guid></item>
</channel></rss>`

func writeTestConfig(t *testing.T, feedURL string) string {
	t.Helper()
	content := `
state:
  dsn: ""
sources:
  - id: test-feed
    adapter: rss
    url: ` + feedURL + `
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_runSingleShot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer ts.Close()

	setupLog(true)
	opts := Opts{Config: writeTestConfig(t, ts.URL)}
	require.NoError(t, run(context.Background(), opts))
}

func Test_runBadConfig(t *testing.T) {
	opts := Opts{Config: "/nonexistent/config.yml"}
	err := run(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func Test_runDaemonStopsOnCancel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testFeed))
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	opts := Opts{Config: writeTestConfig(t, ts.URL), Daemon: true}
	done := make(chan error, 1)
	go func() { done <- run(ctx, opts) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("daemon mode did not stop on context cancellation")
	}
}

func Test_makeStore(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	store, closeStore, err := makeStore(ctx, cfg)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &state.MemoryStore{}, store)

	cfg.State.DSN = "file:" + filepath.Join(t.TempDir(), "state.db")
	store, closeStore, err = makeStore(ctx, cfg)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &state.SQLiteStore{}, store)
}

func Test_makeNotifier(t *testing.T) {
	cfg := &config.Config{}
	cfg.Notify.Type = "log"
	assert.IsType(t, &notifier.LogNotifier{}, makeNotifier(cfg))

	cfg.Notify.Type = "webhook"
	cfg.Notify.WebhookURL = "https://hooks.example.com/x"
	assert.IsType(t, &notifier.WebhookNotifier{}, makeNotifier(cfg))
}

func Test_setupLog(t *testing.T) {
	setupLog(false)
	setupLog(true)
	setupLog(true, "secret")
}
