package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/projection"

	"github.com/spf13/cobra"
)

var flagTableDetail bool

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Year-by-year projection table",
	RunE:  runTable,
}

func init() {
	tableCmd.Flags().BoolVar(&flagTableDetail, "detail", false, "Print per-element breakdowns for every year")
	rootCmd.AddCommand(tableCmd)
}

func runTable(_ *cobra.Command, _ []string) error {
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
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", planTitle(plan),
		cli.FormatYearSpan(years[0].Year, years[len(years)-1].Year))))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Year", "Net Income", "Expenses", "Debt", "Invested", "Returns",
			"Investments", "Assets", "Cash Flow", "Net Worth"},
		Rows: yearRows(years),
	}))

	if flagTableDetail {
		for _, y := range years {
			fmt.Println()
			printYearDetail(y)
		}
	}
	return nil
}

func yearRows(years []model.YearlySnapshot) [][]string {
	rows := make([][]string, 0, len(years))
	for _, y := range years {
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			cli.FormatMoney(y.Income.Net),
			cli.FormatMoney(y.Expenses.Total),
			cli.FormatMoney(y.Debt.TotalPayment),
			cli.FormatMoney(y.Investments.Contributions),
			cli.FormatMoney(y.Investments.Returns),
			cli.FormatMoney(y.Investments.Value),
			cli.FormatMoney(y.Assets.Value),
			cli.FormatMoney(y.NetCashFlow),
			cli.FormatMoney(y.CumulativeNetWorth),
		})
	}
	return rows
}
