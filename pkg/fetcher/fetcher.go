package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent identifies the monitor to upstream servers
const DefaultUserAgent = "ai-updates-monitor/1.0 (+https://github.com/kpus-tech/ai-updates-monitor)"

const (
	defaultConcurrency = 10
	defaultTimeout     = 20 * time.Second
)

// Result is the discriminated outcome of a conditional fetch. Exactly one of
// the three states holds: a successful fetch with body and validators, a 304
// not-modified response, or a failure with a human-readable message. Transport
// failures are folded into the error state, callers never see a Go error for a
// single request.
type Result struct {
	NotModified  bool
	Body         string
	ETag         string
	LastModified string
	ContentType  string
	Err          string
}

// OK reports if the fetch produced usable content
func (r Result) OK() bool { return !r.NotModified && r.Err == "" }

// errResult builds a failed Result
func errResult(format string, args ...any) Result {
	return Result{Err: fmt.Sprintf(format, args...)}
}

// Fetcher performs HTTP GETs with caching validators, a shared connection pool,
// bounded concurrency and a per-request timeout
type Fetcher struct {
	client    *http.Client
	userAgent string
	sem       chan struct{}
}

// Opts configures a Fetcher, zero values fall back to defaults
type Opts struct {
	Concurrency int
	Timeout     time.Duration
	UserAgent   string
}

// New creates a fetcher with a pooled transport
func New(opts Opts) *Fetcher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: opts.UserAgent,
		sem:       make(chan struct{}, opts.Concurrency),
	}
}

// Fetch retrieves url with a conditional GET. Prior validators are sent as
// If-None-Match / If-Modified-Since when present. The call blocks while the
// global in-flight limit is saturated.
func (f *Fetcher) Fetch(ctx context.Context, url, etag, lastModified string) Result {
	select {
	case f.sem <- struct{}{}:
		defer func() { <-f.sem }()
	case <-ctx.Done():
		return errResult("fetch canceled: %v", ctx.Err())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return errResult("create request: %v", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastModified != "" {
		req.Header.Set("If-Modified-Since", lastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return errResult("fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return Result{NotModified: true}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return errResult("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errResult("read body from %s: %v", url, err)
	}

	return Result{
		Body:         string(body),
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
		ContentType:  resp.Header.Get("Content-Type"),
	}
}

// Close releases pooled connections, must be called when the run completes
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
}
