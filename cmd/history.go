package cmd

import (
	"context"
	"fmt"

	"github.com/scansec/scansec/internal/config"
	"github.com/scansec/scansec/internal/history"
	"github.com/scansec/scansec/internal/report"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse stored scan results",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored scans, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <scan-id>",
	Short: "Print one stored scan result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <scan-id>",
	Short: "Delete a stored scan result",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of scans to list")
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd)
}

func openStore(ctx context.Context) (history.Store, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := history.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return store, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No scans stored yet.")
		return nil
	}

	fmt.Printf("%-14s %-44s %-10s %6s %5s %5s %5s %5s\n",
		"SCAN ID", "REPOSITORY", "STATUS", "TOTAL", "CRIT", "HIGH", "MED", "LOW")
	for _, e := range entries {
		repo := e.RepoURL
		if len(repo) > 44 {
			repo = repo[:41] + "..."
		}
		fmt.Printf("%-14s %-44s %-10s %6d %5d %5d %5d %5d\n",
			e.ScanID, repo, e.Status, e.TotalVulnerabilities,
			e.CriticalCount, e.HighCount, e.MediumCount, e.LowCount)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := store.Get(ctx, args[0])
	if err != nil {
		return err
	}
	data, err := report.ExportJSON(res)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
