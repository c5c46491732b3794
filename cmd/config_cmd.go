// Package cmd implements the horizon CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default plan:   %s\n", cfg.General.DefaultPlan)
	fmt.Printf("    Horizon years:  %d\n", cfg.General.HorizonYears)
	fmt.Printf("    Store:          %s\n", config.StorePath(cfg))
	fmt.Printf("    Plan directory: %s\n", config.PlanDir(cfg))
	fmt.Println()

	fmt.Println("  [Projection]")
	fmt.Printf("    Inflation rate: %s\n", cli.FormatPercent(cfg.Projection.InflationRate))
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Currency:   %s (e.g. %s)\n", cfg.Display.Currency, cli.FormatMoney(1234567.89))
	fmt.Printf("    Show cents: %v\n", cfg.Display.ShowCents)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Serve]")
	fmt.Printf("    Address:       %s\n", cfg.Serve.Addr)
	fmt.Printf("    Poll interval: %s\n", cfg.Serve.PollInterval)
	fmt.Printf("    Log format:    %s\n", cfg.Serve.LogFormat)
	fmt.Println()

	fmt.Println("  Run `horizon setup` to reconfigure.")
	return nil
}
