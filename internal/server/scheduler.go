package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/scansec/scansec/models"
)

// Scheduler rescans a fixed watchlist of repositories on a cron schedule
// while the daemon runs. An empty expression disables it.
type Scheduler struct {
	expr  string
	repos []string
	runFn func(ctx context.Context, repoURL string) *models.ScanResult
	cron  *cron.Cron
}

func newScheduler(expr string, repos []string, runFn func(context.Context, string) *models.ScanResult) *Scheduler {
	return &Scheduler{
		expr:  expr,
		repos: repos,
		runFn: runFn,
		cron:  cron.New(),
	}
}

// Start registers the watchlist job and starts the cron runner. An invalid
// expression is a startup error, not a silent skip.
func (s *Scheduler) Start() error {
	if s.expr == "" || len(s.repos) == 0 {
		return nil
	}

	_, err := s.cron.AddFunc(s.expr, s.fire)
	if err != nil {
		return fmt.Errorf("invalid schedule expression %q: %w", s.expr, err)
	}

	s.cron.Start()
	slog.Info("Schedule registered", "expr", s.expr, "repos", len(s.repos))
	return nil
}

// Stop halts the cron runner.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) fire() {
	slog.Info("Scheduled rescan firing", "repos", len(s.repos))
	for _, repoURL := range s.repos {
		res := s.runFn(context.Background(), repoURL)
		slog.Info("Scheduled scan finished",
			"repo", repoURL,
			"scan_id", res.ScanID,
			"status", res.Status,
			"findings", res.Summary.TotalVulnerabilities,
		)
	}
}
