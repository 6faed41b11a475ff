package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scansec/scansec/models"
)

func terminalResult() *models.ScanResult {
	return &models.ScanResult{
		RepoURL: "https://github.com/acme/shop",
		ScanID:  "scan_feed0001",
		Status:  models.StatusCompleted,
		Summary: models.ScanSummary{TotalVulnerabilities: 2},
		Vulnerabilities: []models.Vulnerability{
			{Severity: models.SeverityCritical},
			{Severity: models.SeverityMedium},
		},
	}
}

func TestScanCompletedDeliversPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL)
	if !w.Configured() {
		t.Fatalf("webhook with URL must be configured")
	}
	w.ScanCompleted(context.Background(), terminalResult())

	if got["event"] != "scan.completed" || got["scan_id"] != "scan_feed0001" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got["critical"] != float64(1) || got["medium"] != float64(1) || got["high"] != float64(0) {
		t.Fatalf("severity counts wrong: %+v", got)
	}
	if got["total_vulnerabilities"] != float64(2) {
		t.Fatalf("total wrong: %+v", got)
	}
}

func TestScanCompletedUnconfiguredIsNoop(t *testing.T) {
	w := NewWebhook("")
	if w.Configured() {
		t.Fatalf("empty URL must disable the webhook")
	}
	// Must not panic or attempt delivery.
	w.ScanCompleted(context.Background(), terminalResult())
	w.ScanCompleted(context.Background(), nil)
}

func TestScanCompletedSwallowsDeliveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL)
	// A failing endpoint is logged, never propagated.
	w.ScanCompleted(context.Background(), terminalResult())
}
