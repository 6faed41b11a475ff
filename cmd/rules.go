package cmd

import (
	"fmt"

	"github.com/scansec/scansec/internal/config"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active detection rules",
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%-24s %-12s %-24s %-8s\n", "ID", "LANGUAGE", "CATEGORY", "SEVERITY")
	for _, r := range reg.All() {
		fmt.Printf("%-24s %-12s %-24s %s\n",
			r.ID, r.Language,
			r.Category,
			severityStyle(r.Severity).Render(r.Severity.String()))
	}
	fmt.Printf("\n%d rules registered.\n", reg.Len())
	return nil
}
