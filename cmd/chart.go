package cmd

import (
	"fmt"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/projection"

	"github.com/spf13/cobra"
)

var flagChartMetric string

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Bar chart of one projected series",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&flagChartMetric, "metric", "m", string(projection.MetricNetWorth),
		"Series to chart: net-income, expenses, cash-flow, net-worth, investments, assets")
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	metric, err := projection.ParseMetric(flagChartMetric)
	if err != nil {
		return err
	}

	plan, err := loadPlan()
	if err != nil {
		return err
	}

	years := projection.Project(plan)
	if len(years) == 0 {
		fmt.Println("\n  Nothing to project: the horizon is empty.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", planTitle(plan), metric.Label())))
	fmt.Println()
	fmt.Print(cli.RenderBarChart(projection.YearLabels(years), projection.Series(years, metric), 40))

	fmt.Println()
	for _, m := range projection.Metrics {
		fmt.Printf("  %-17s %s\n", m.Label(), cli.RenderSparkline(projection.Series(years, m)))
	}
	return nil
}
