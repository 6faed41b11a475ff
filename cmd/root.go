package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/scansec/scansec/internal/config"
	"github.com/scansec/scansec/internal/rules"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scansec",
	Short: "Audit source repositories for insecure code idioms",
	Long: `scansec clones a repository (or reads a local tree), matches every
supported source file against per-language security rules, and produces a
severity-ranked vulnerability report.

Get started:
  scansec scan      Scan a repository or local directory
  scansec serve     Start the HTTP API daemon
  scansec history   Browse stored scan results
  scansec export    Re-export a stored scan as JSON or CSV
  scansec rules     List the active detection rules`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.scansec/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose/debug output")

	rootCmd.Version = Version
	rootCmd.AddCommand(
		scanCmd,
		serveCmd,
		historyCmd,
		exportCmd,
		rulesCmd,
	)
}

func initLogging() {
	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		slog.Debug("Verbose logging enabled")
	}
}

// loadRegistry builds the rule registry from builtins plus any custom YAML
// rules under cfg.Engine.RulesDir. A broken rule refuses startup.
func loadRegistry(cfg *config.Config) (*rules.Registry, error) {
	custom, err := rules.LoadDir(cfg.Engine.RulesDir)
	if err != nil {
		return nil, fmt.Errorf("loading custom rules: %w", err)
	}
	reg, err := rules.Default(custom...)
	if err != nil {
		return nil, fmt.Errorf("compiling rules: %w", err)
	}
	return reg, nil
}
