package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/config"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/planfile"
	"github.com/theirongolddev/horizon/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagPlan      string
	flagFile      string
	flagStore     string
	flagQuiet     bool
	flagFrom      int
	flagTo        int
	flagInflation float64
)

// appConfig is loaded once before any command runs.
var appConfig = config.DefaultConfig()

// stderr receives progress and warning output.
var stderr io.Writer = os.Stderr

var rootCmd = &cobra.Command{
	Use:   "horizon",
	Short: "Long-range personal finance projections",
	Long: "Project income, expenses, debt, investments and assets year by year\n" +
		"and see where your net worth is heading.",
	PersistentPreRunE: loadAppConfig,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// runSummary reaches rootCmd through loadPlan, so setting it in the
	// literal is an initialization cycle.
	rootCmd.RunE = runSummary

	rootCmd.PersistentFlags().StringVarP(&flagPlan, "plan", "p", "", "Stored plan name (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Read the plan from a TOML file instead of the store")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Plan database path")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	addOverrideFlags(rootCmd.PersistentFlags())
}

func addOverrideFlags(flags *pflag.FlagSet) {
	flags.IntVar(&flagFrom, "from", 0, "Override the first projected year")
	flags.IntVar(&flagTo, "to", 0, "Override the last projected year")
	flags.Float64Var(&flagInflation, "inflation", 0, "Override the inflation rate (e.g. 0.025)")
}

func loadAppConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		warnf("  Config unreadable, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	appConfig = cfg

	if err := cli.SetCurrency(cfg.Display.Currency, cfg.Display.ShowCents); err != nil {
		warnf("  %v, falling back to USD\n", err)
		_ = cli.SetCurrency("USD", cfg.Display.ShowCents)
	}
	return nil
}

func warnf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(stderr, format, args...)
}

func planName() string {
	if flagPlan != "" {
		return flagPlan
	}
	return appConfig.General.DefaultPlan
}

func storePath() string {
	if flagStore != "" {
		return flagStore
	}
	return config.StorePath(appConfig)
}

func openStore() (*store.Store, error) {
	return store.Open(storePath())
}

// loadPlan is the shared plan loading path used by all read-only commands.
// A --file plan wins over the store; horizon overrides apply to either.
func loadPlan() (model.Plan, error) {
	var (
		plan model.Plan
		err  error
	)

	if flagFile != "" {
		warnf("  Reading %s\n", flagFile)
		plan, err = planfile.ReadFile(flagFile)
		if err != nil {
			return model.Plan{}, err
		}
	} else {
		st, err := openStore()
		if err != nil {
			return model.Plan{}, err
		}
		defer st.Close()

		plan, err = st.LoadPlan(planName())
		if errors.Is(err, store.ErrPlanNotFound) {
			return model.Plan{}, fmt.Errorf("no plan named %q; create one with `horizon plan init` or pass --file", planName())
		}
		if err != nil {
			return model.Plan{}, err
		}
	}

	return applyOverrides(rootCmd.PersistentFlags(), plan), nil
}

// applyOverrides replaces the horizon fields that were set on the command line.
func applyOverrides(flags *pflag.FlagSet, plan model.Plan) model.Plan {
	if flags.Changed("from") {
		plan.StartYear = flagFrom
	}
	if flags.Changed("to") {
		plan.EndYear = flagTo
	}
	if flags.Changed("inflation") {
		plan.InflationRate = flagInflation
	}
	if plan.EndYear < plan.StartYear {
		warnf("  Horizon %d-%d is empty\n", plan.StartYear, plan.EndYear)
	}
	return plan
}
