package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/scansec/scansec/internal/classifier"
	"github.com/scansec/scansec/internal/config"
	"github.com/scansec/scansec/internal/history"
	"github.com/scansec/scansec/internal/report"
	"github.com/scansec/scansec/internal/repository"
	"github.com/scansec/scansec/internal/scanner"
	"github.com/scansec/scansec/models"
	"github.com/spf13/cobra"
)

var (
	scanRepoURL string
	scanBranch  string
	scanFormat  string
	scanOutput  string
	scanNoStore bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a repository for insecure code idioms",
	Long: `Clones a repository (or reads a local directory) and matches every
supported source file against the active rule registry.

Examples:
  scansec scan --repo https://github.com/example/myapp
  scansec scan --repo ./checkout --format csv --output findings.csv
  scansec scan --repo https://gitlab.com/example/lib --branch develop`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanRepoURL, "repo", "", "Repository URL or local directory to scan (required)")
	scanCmd.Flags().StringVar(&scanBranch, "branch", "", "Branch to scan (default: repo default branch)")
	scanCmd.Flags().StringVar(&scanFormat, "format", "json", "Report format: json|csv")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Write the report to a file instead of only printing the summary")
	scanCmd.Flags().BoolVar(&scanNoStore, "no-store", false, "Do not persist the result to scan history")
	_ = scanCmd.MarkFlagRequired("repo")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	format, err := report.ParseFormat(scanFormat)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	token := tokenForURL(cfg, scanRepoURL)
	mat := repository.NewMaterializer(cfg.CloneTimeout(), token)
	cloneStart := time.Now()
	checkout, err := mat.Materialize(ctx, scanRepoURL, scanBranch)
	if err != nil {
		return fmt.Errorf("materialising repository: %w", err)
	}
	defer mat.Cleanup(checkout)

	metadata := repository.Describe(ctx, scanRepoURL, token)
	metadata["scanner_version"] = Version
	if checkout.Commit != "" {
		metadata["commit"] = checkout.Commit
		metadata["branch"] = checkout.Branch
		metadata["clone_duration"] = time.Since(cloneStart).Round(time.Millisecond).String()
	}

	res, err := engine.Scan(ctx, scanRepoURL, checkout.Path, metadata)
	if err != nil {
		return err
	}

	printSummary(res)

	if scanOutput != "" {
		data, err := report.Export(res, format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(scanOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("\nReport written to %s\n", scanOutput)
	}

	if !scanNoStore {
		store, err := history.New(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening history store: %w", err)
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		if err := store.Save(ctx, res); err != nil {
			return fmt.Errorf("storing scan result: %w", err)
		}
		fmt.Printf("\nStored as %s. Run 'scansec history show %s' to review.\n",
			res.ScanID, res.ScanID)
	}
	return nil
}

// buildEngine assembles the classifier and engine from config. Rule
// compilation failures abort here, before anything is cloned.
func buildEngine(cfg *config.Config) (*scanner.Engine, error) {
	reg, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}

	var extensions map[string]models.Language
	if len(cfg.Engine.Extensions) > 0 {
		extensions = make(map[string]models.Language, len(cfg.Engine.Extensions))
		for ext, lang := range cfg.Engine.Extensions {
			extensions[ext] = models.Language(lang)
		}
	}

	cls := classifier.New(classifier.Options{
		SizeLimit:         cfg.Engine.SizeLimitBytes,
		ExtraExcludedDirs: cfg.Engine.ExcludedDirs,
		Extensions:        extensions,
	})
	return scanner.New(reg, cls, cfg.Engine.Workers), nil
}

func tokenForURL(cfg *config.Config, repoURL string) string {
	switch repository.DetectProvider(repoURL) {
	case repository.ProviderGitHub:
		return cfg.Git.GitHubToken
	case repository.ProviderGitLab:
		return cfg.Git.GitLabToken
	default:
		return ""
	}
}

// printSummary renders the severity-ranked scan summary to the terminal.
func printSummary(res *models.ScanResult) {
	fmt.Println(titleStyle.Render("Scan " + res.ScanID))
	fmt.Printf("Repository: %s\nStatus: %s\n\n", res.RepoURL, res.Status)

	fmt.Printf("Files scanned: %d   Findings: %d   Duration: %.2fs\n",
		res.Summary.TotalFilesScanned,
		res.Summary.TotalVulnerabilities,
		res.Summary.ScanDurationSeconds,
	)

	counts := res.SeverityCounts()
	fmt.Printf("%s %d   %s %d   %s %d   %s %d\n\n",
		criticalStyle.Render("Critical:"), counts[models.SeverityCritical],
		highStyle.Render("High:"), counts[models.SeverityHigh],
		mediumStyle.Render("Medium:"), counts[models.SeverityMedium],
		lowStyle.Render("Low:"), counts[models.SeverityLow],
	)

	if len(res.Summary.LanguageBreakdown) > 0 {
		langs := make([]string, 0, len(res.Summary.LanguageBreakdown))
		for l := range res.Summary.LanguageBreakdown {
			langs = append(langs, l)
		}
		sort.Strings(langs)
		for _, l := range langs {
			fmt.Printf("  %-12s %d files\n", l, res.Summary.LanguageBreakdown[l])
		}
		fmt.Println()
	}

	// Show the most severe findings first, capped for terminal output.
	ordered := make([]models.Vulnerability, len(res.Vulnerabilities))
	copy(ordered, res.Vulnerabilities)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Severity.Weight() > ordered[j].Severity.Weight()
	})
	const maxShown = 20
	for i, v := range ordered {
		if i == maxShown {
			fmt.Printf("  ... and %d more (export the report for the full list)\n", len(ordered)-maxShown)
			break
		}
		fmt.Printf("  %s %s:%d %s\n",
			severityStyle(v.Severity).Render(fmt.Sprintf("[%s]", v.Severity)),
			v.FilePath, v.LineNumber, v.Type)
	}
}
