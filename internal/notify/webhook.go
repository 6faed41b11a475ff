// Package notify delivers scan-completion notifications.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/scansec/scansec/models"
)

// Webhook posts a JSON summary of each finished scan to a configured HTTP
// endpoint.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a Webhook notifier. An empty URL disables it.
func NewWebhook(url string) *Webhook {
	return &Webhook{url: url, client: &http.Client{Timeout: 5 * time.Second}}
}

// Configured reports whether a target URL is set.
func (w *Webhook) Configured() bool {
	return w.url != ""
}

// ScanCompleted sends the summary payload for a terminal scan result.
// Delivery failures are logged, never propagated: notification is
// best-effort and must not affect the stored result.
func (w *Webhook) ScanCompleted(ctx context.Context, res *models.ScanResult) {
	if !w.Configured() || res == nil {
		return
	}
	if err := w.send(ctx, res); err != nil {
		slog.Warn("Webhook notification failed",
			"scan_id", res.ScanID, "url", w.url, "error", err)
	}
}

func (w *Webhook) send(ctx context.Context, res *models.ScanResult) error {
	counts := res.SeverityCounts()
	payload := map[string]any{
		"event":                 "scan.completed",
		"scan_id":               res.ScanID,
		"repo_url":              res.RepoURL,
		"status":                res.Status,
		"total_vulnerabilities": res.Summary.TotalVulnerabilities,
		"critical":              counts[models.SeverityCritical],
		"high":                  counts[models.SeverityHigh],
		"medium":                counts[models.SeverityMedium],
		"low":                   counts[models.SeverityLow],
		"ts":                    time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
