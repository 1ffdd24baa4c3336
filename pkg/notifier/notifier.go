package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// LogNotifier writes the digest to the application log, the default sink
type LogNotifier struct{}

// SendDigest logs the digest subject and body
func (n *LogNotifier) SendDigest(_ context.Context, changes []domain.ChangeRecord) error {
	if len(changes) == 0 {
		return nil
	}
	digest := BuildDigest(changes, time.Now())
	lgr.Printf("[INFO] %s", digest.Subject)
	lgr.Printf("[INFO] digest:\n%s", digest.Body)
	return nil
}

// WebhookNotifier POSTs the digest as JSON to a configured endpoint
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier with its own bounded client
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// webhookPayload is the wire format of the digest delivery
type webhookPayload struct {
	Digest
	Changes []domain.ChangeRecord `json:"changes"`
}

// SendDigest delivers the digest, a non-2xx response is an error
func (n *WebhookNotifier) SendDigest(ctx context.Context, changes []domain.ChangeRecord) error {
	if len(changes) == 0 {
		return nil
	}

	payload := webhookPayload{
		Digest:  BuildDigest(changes, time.Now()),
		Changes: changes,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal digest: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post digest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	lgr.Printf("[INFO] sent digest with %d changes to webhook", len(changes))
	return nil
}
