package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/scansec/scansec/internal/report"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <scan-id>",
	Short: "Re-export a stored scan result",
	Long: `Renders a previously stored scan result as JSON or CSV.

Examples:
  scansec export scan_1a2b3c4d --format csv --output findings.csv
  scansec export scan_1a2b3c4d --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json|csv")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

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

	data, err := report.Export(res, format)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Printf("Exported %s to %s\n", args[0], exportOutput)
	return nil
}
