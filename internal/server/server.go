// Package server exposes the scan engine over HTTP: scan submission, history
// browsing, report export, plus cron-scheduled rescans of a watchlist.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/scansec/scansec/internal/config"
	"github.com/scansec/scansec/internal/history"
	"github.com/scansec/scansec/internal/notify"
	"github.com/scansec/scansec/internal/repository"
	"github.com/scansec/scansec/internal/scanner"
	"github.com/scansec/scansec/models"
)

// Server is the long-running daemon combining the scan engine, the history
// store, and the schedule runner.
type Server struct {
	cfg       *config.Config
	engine    *scanner.Engine
	store     history.Store
	webhook   *notify.Webhook
	scheduler *Scheduler

	mu        sync.Mutex
	scanning  bool
	startedAt time.Time
}

// New creates a Server. Call Start to begin serving.
func New(cfg *config.Config, engine *scanner.Engine, store history.Store) *Server {
	s := &Server{
		cfg:       cfg,
		engine:    engine,
		store:     store,
		webhook:   notify.NewWebhook(cfg.Notify.WebhookURL),
		startedAt: time.Now(),
	}
	s.scheduler = newScheduler(cfg.Server.ScheduleCron, cfg.Server.ScheduleRepos, s.runScan)
	return s
}

// Start runs the scheduler and the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	port := s.cfg.Server.Port
	if port == 0 {
		port = 8480
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	if err := s.scheduler.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: buildHandler(s),
	}

	go func() {
		<-ctx.Done()
		s.scheduler.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// runScan is the one scan path shared by API triggers and schedule firings:
// materialise, scan, persist, notify. Ingestion failures produce a terminal
// failed result without ever invoking the engine.
func (s *Server) runScan(ctx context.Context, repoURL string) *models.ScanResult {
	s.mu.Lock()
	s.scanning = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	token := tokenFor(s.cfg, repoURL)
	mat := repository.NewMaterializer(s.cfg.CloneTimeout(), token)

	cloneStart := time.Now()
	checkout, err := mat.Materialize(ctx, repoURL, "")
	if err != nil {
		slog.Error("Repository materialisation failed", "repo", repoURL, "error", err)
		res := scanner.FailedResult(repoURL, err.Error())
		s.persist(ctx, res)
		return res
	}
	defer mat.Cleanup(checkout)

	metadata := repository.Describe(ctx, repoURL, token)
	if checkout.Commit != "" {
		metadata["commit"] = checkout.Commit
		metadata["branch"] = checkout.Branch
		metadata["clone_duration"] = time.Since(cloneStart).Round(time.Millisecond).String()
	}

	res, err := s.engine.Scan(ctx, repoURL, checkout.Path, metadata)
	if err != nil {
		slog.Error("Scan failed", "repo", repoURL, "error", err)
	}
	s.persist(ctx, res)
	s.webhook.ScanCompleted(ctx, res)
	return res
}

func (s *Server) persist(ctx context.Context, res *models.ScanResult) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, res); err != nil {
		slog.Warn("Failed to persist scan result", "scan_id", res.ScanID, "error", err)
	}
}

// tokenFor picks the configured credential for the URL's hosting provider.
func tokenFor(cfg *config.Config, repoURL string) string {
	switch repository.DetectProvider(repoURL) {
	case repository.ProviderGitHub:
		return cfg.Git.GitHubToken
	case repository.ProviderGitLab:
		return cfg.Git.GitLabToken
	default:
		return ""
	}
}
