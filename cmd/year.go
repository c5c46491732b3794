package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/projection"

	"github.com/spf13/cobra"
)

var yearCmd = &cobra.Command{
	Use:   "year <YYYY>",
	Short: "Detailed figures for a single year",
	Args:  cobra.ExactArgs(1),
	RunE:  runYear,
}

func init() {
	rootCmd.AddCommand(yearCmd)
}

func runYear(_ *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[0])
	}

	plan, err := loadPlan()
	if err != nil {
		return err
	}

	snap, ok := projection.Find(projection.Project(plan), year)
	if !ok {
		return fmt.Errorf("year %d is outside the horizon %s", year, cli.FormatYearSpan(plan.StartYear, plan.EndYear))
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %d", planTitle(plan), year)))
	fmt.Println()
	printYearDetail(snap)
	return nil
}

func printYearDetail(y model.YearlySnapshot) {
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Year", strconv.Itoa(y.Year)},
		{"Gross income", cli.FormatMoney(y.Income.Gross)},
		{"Taxes", cli.FormatMoney(y.Income.Taxes)},
		{"Net income", cli.FormatMoney(y.Income.Net)},
		{"Expenses", cli.FormatMoney(y.Expenses.Total)},
		{"Debt payments", cli.FormatMoney(y.Debt.TotalPayment)},
		{"Contributions", cli.FormatMoney(y.Investments.Contributions)},
		{"Net cash flow", cli.FormatMoney(y.NetCashFlow)},
		{"Net worth", cli.FormatMoney(y.CumulativeNetWorth)},
	}))

	if len(y.Income.Streams)+len(y.Income.OneTime) > 0 {
		rows := make([][]string, 0, len(y.Income.Streams)+len(y.Income.OneTime))
		for _, s := range y.Income.Streams {
			rows = append(rows, []string{s.ID, cli.FormatMoney(s.Gross), fmt.Sprintf("x%.3f", s.GrowthMultiplier),
				cli.FormatMoney(s.Taxes), cli.FormatMoney(s.Net)})
		}
		for _, o := range y.Income.OneTime {
			rows = append(rows, []string{o.ID, cli.FormatMoney(o.Amount), "one-time",
				cli.FormatMoney(o.Taxes), cli.FormatMoney(o.Net)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Income",
			Headers: []string{"Source", "Gross", "Growth", "Taxes", "Net"},
			Rows:    rows,
		}))
	}

	if len(y.Expenses.Details) > 0 {
		rows := make([][]string, 0, len(y.Expenses.Details))
		for _, d := range y.Expenses.Details {
			rows = append(rows, []string{d.ID, d.Category, cli.FormatMoney(d.BaseAmount),
				fmt.Sprintf("x%.3f", d.InflationMultiplier), cli.FormatMoney(d.Amount)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Expenses",
			Headers: []string{"Expense", "Category", "Base", "Inflation", "Amount"},
			Rows:    rows,
		}))
	}

	if len(y.Debt.Payments) > 0 {
		rows := make([][]string, 0, len(y.Debt.Payments))
		for _, p := range y.Debt.Payments {
			rows = append(rows, []string{p.ID, cli.FormatMoney(p.StartingPrincipal), cli.FormatMoney(p.InterestPortion),
				cli.FormatMoney(p.PrincipalPortion), cli.FormatMoney(p.RemainingPrincipal)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Debt",
			Headers: []string{"Debt", "Balance", "Interest", "Principal", "Remaining"},
			Rows:    rows,
		}))
	}

	if len(y.Investments.Details) > 0 {
		rows := make([][]string, 0, len(y.Investments.Details)+2)
		for _, d := range y.Investments.Details {
			rows = append(rows, []string{d.ID, cli.FormatMoney(d.StartingValue), cli.FormatMoney(d.Contribution),
				cli.FormatMoney(d.Growth), cli.FormatMoney(d.EndingValue)})
		}
		rows = append(rows, []string{"---"}, []string{"All investments", "", "", "", cli.FormatMoney(y.Investments.Value)})
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Investments",
			Headers: []string{"Investment", "Start", "Contribution", "Growth", "End"},
			Rows:    rows,
		}))
	}

	if len(y.Assets.Details) > 0 {
		rows := make([][]string, 0, len(y.Assets.Details))
		for _, d := range y.Assets.Details {
			status := "held"
			if d.SoldThisYear {
				status = "sold"
			}
			rows = append(rows, []string{d.ID, cli.FormatMoney(d.StartingValue), cli.FormatMoney(d.Appreciation),
				cli.FormatMoney(d.EndingValue), status})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Assets",
			Headers: []string{"Asset", "Start", "Appreciation", "End", "Status"},
			Rows:    rows,
		}))
	}
}
