package server

import (
	"context"
	"sync"
	"testing"

	"github.com/scansec/scansec/models"
)

func TestSchedulerDisabledWithoutConfig(t *testing.T) {
	s := newScheduler("", nil, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("empty schedule must be a no-op: %v", err)
	}
	s.Stop()

	s = newScheduler("@hourly", nil, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("schedule without repos must be a no-op: %v", err)
	}
	s.Stop()
}

func TestSchedulerRejectsInvalidExpression(t *testing.T) {
	s := newScheduler("not a cron expr", []string{"https://github.com/acme/shop"},
		func(context.Context, string) *models.ScanResult { return nil })
	if err := s.Start(); err == nil {
		t.Fatalf("invalid cron expression must fail startup")
	}
}

func TestSchedulerFireScansWatchlist(t *testing.T) {
	var (
		mu      sync.Mutex
		scanned []string
	)
	repos := []string{"repo-a", "repo-b"}
	s := newScheduler("@daily", repos, func(_ context.Context, repoURL string) *models.ScanResult {
		mu.Lock()
		scanned = append(scanned, repoURL)
		mu.Unlock()
		return &models.ScanResult{ScanID: "scan_test0001", Status: models.StatusCompleted}
	})

	s.fire()

	mu.Lock()
	defer mu.Unlock()
	if len(scanned) != 2 || scanned[0] != "repo-a" || scanned[1] != "repo-b" {
		t.Fatalf("expected watchlist scanned in order, got %v", scanned)
	}
}
