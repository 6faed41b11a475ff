package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/scansec/scansec/internal/config"
	"github.com/scansec/scansec/internal/history"
	"github.com/scansec/scansec/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API daemon",
	Long: `Runs the scan API on localhost until interrupted.

Endpoints:
  POST   /api/v1/scan                 Scan a repository, returns the full result
  GET    /api/v1/scans                List stored scans
  GET    /api/v1/scans/{id}           Fetch one stored result
  GET    /api/v1/scans/{id}/export    Download as ?format=json|csv
  DELETE /api/v1/scans/{id}           Delete a stored result
  GET    /api/v1/health               Liveness and backend status

When server.schedule_cron and server.schedule_repos are configured, the
daemon also rescans the listed repositories on that schedule.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	store, err := history.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return server.New(cfg, engine, store).Start(ctx)
}
