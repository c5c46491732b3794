package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/projection"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Horizon-wide totals for the plan",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}

	years := projection.Project(plan)
	if len(years) == 0 {
		fmt.Println("\n  Nothing to project: the horizon is empty.")
		return nil
	}
	sum := projection.Summarize(years)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", planTitle(plan), cli.FormatYearSpan(sum.StartYear, sum.EndYear))))
	fmt.Println()

	debtFree := "never"
	if sum.DebtFreeYear != 0 {
		debtFree = strconv.Itoa(sum.DebtFreeYear)
	}

	rows := [][]string{
		{"Elements", strconv.Itoa(plan.Elements.Len())},
		{"Inflation", cli.FormatPercent(plan.InflationRate)},
		{"---"},
		{"Gross Income", cli.FormatMoney(sum.GrossIncome)},
		{"Taxes", cli.FormatMoney(sum.Taxes)},
		{"Net Income", cli.FormatMoney(sum.NetIncome)},
		{"Expenses", cli.FormatMoney(sum.Expenses)},
		{"Debt Payments", cli.FormatMoney(sum.DebtPayments)},
		{"  of which interest", cli.FormatMoney(sum.InterestPaid)},
		{"Contributions", cli.FormatMoney(sum.Contributions)},
		{"Investment Returns", cli.FormatMoney(sum.Returns)},
		{"Net Cash Flow", cli.FormatMoney(sum.NetCashFlow)},
		{"---"},
		{"Final Investments", cli.FormatMoney(sum.FinalInvestmentValue)},
		{"Final Assets", cli.FormatMoney(sum.FinalAssetValue)},
		{"Final Net Worth", cli.FormatMoney(sum.FinalNetWorth)},
		{"Peak Net Worth", fmt.Sprintf("%s (%d)", cli.FormatMoney(sum.PeakNetWorth), sum.PeakNetWorthYear)},
		{"Debt Free", debtFree},
		{"Negative Years", strconv.Itoa(sum.NegativeCashFlowYears)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Printf("  Net worth  %s\n", cli.RenderSparkline(projection.Series(years, projection.MetricNetWorth)))
	return nil
}

func planTitle(plan model.Plan) string {
	if plan.Name == "" {
		return "PLAN"
	}
	return "PLAN " + plan.Name
}
