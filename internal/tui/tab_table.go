package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/tui/components"
	"github.com/theirongolddev/horizon/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var yearColumns = []table.Column{
	{Title: "Year", Width: 6},
	{Title: "Net Income", Width: 12},
	{Title: "Expenses", Width: 12},
	{Title: "Debt", Width: 11},
	{Title: "Invested", Width: 11},
	{Title: "Cash Flow", Width: 12},
	{Title: "Net Worth", Width: 13},
}

func newYearTable() table.Model {
	return table.New(
		table.WithColumns(yearColumns),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(tableStyles()),
	)
}

func tableStyles() table.Styles {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(t.Accent).
		Background(t.Surface).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary).Background(t.Surface)
	s.Selected = s.Selected.Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	return s
}

func yearRows(years []model.YearlySnapshot) []table.Row {
	rows := make([]table.Row, 0, len(years))
	for _, y := range years {
		rows = append(rows, table.Row{
			strconv.Itoa(y.Year),
			cli.FormatMoneyCompact(y.Income.Net),
			cli.FormatMoneyCompact(y.Expenses.Total),
			cli.FormatMoneyCompact(y.Debt.TotalPayment),
			cli.FormatMoneyCompact(y.Investments.Contributions),
			cli.FormatMoneyCompact(y.NetCashFlow),
			cli.FormatMoneyCompact(y.CumulativeNetWorth),
		})
	}
	return rows
}

// tableHeight leaves room for the tab bar, status bar, card borders and
// the detail card below the table.
func (a App) tableHeight() int {
	return max(a.height-2-4-detailLines-4, 5)
}

const detailLines = 7

func (a App) selectedYear() (model.YearlySnapshot, bool) {
	i := a.yearTable.Cursor()
	if i < 0 || i >= len(a.years) {
		return model.YearlySnapshot{}, false
	}
	return a.years[i], true
}

func (a App) renderTableTab(cw int) string {
	if len(a.years) == 0 {
		return components.ContentCard("Projection", "No years to show.", cw)
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Projection %s", cli.FormatYearSpan(a.years[0].Year, a.years[len(a.years)-1].Year)),
		a.yearTable.View(), cw))
	b.WriteString("\n")

	if y, ok := a.selectedYear(); ok {
		b.WriteString(components.ContentCard(strconv.Itoa(y.Year), a.renderYearDetail(y, cw), cw))
	}
	return b.String()
}

// renderYearDetail lays out the selected year's figures in two columns,
// with its expense categories on the right.
func (a App) renderYearDetail(y model.YearlySnapshot, cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	row := func(label string, v float64, signed bool) string {
		style := valueStyle
		if signed {
			style = style.Foreground(t.Signed(v))
		}
		return labelStyle.Render(fmt.Sprintf("%-16s", label)) + style.Render(fmt.Sprintf("%14s", cli.FormatMoney(v)))
	}

	left := []string{
		row("Gross income", y.Income.Gross, false),
		row("Taxes", y.Income.Taxes, false),
		row("Net income", y.Income.Net, false),
		row("Interest", y.Debt.Interest, false),
		row("Investment gain", y.Investments.Returns, true),
		row("Asset value", y.Assets.Value, false),
		row("Net cash flow", y.NetCashFlow, true),
	}

	right := make([]string, 0, detailLines)
	for i, c := range y.Expenses.Breakdown {
		if i == detailLines {
			break
		}
		right = append(right, labelStyle.Render(fmt.Sprintf("%-16s", truncStr(c.Category, 16)))+
			valueStyle.Render(fmt.Sprintf("%14s", cli.FormatMoney(c.Amount))))
	}

	inner := components.CardInnerWidth(cw)
	leftBlock := strings.Join(left, "\n")
	if len(right) == 0 || inner < 2*lipgloss.Width(left[0])+4 {
		return leftBlock
	}
	gap := spaceStyle.Render("    ")
	return lipgloss.JoinHorizontal(lipgloss.Top, leftBlock, gap, strings.Join(right, "\n"))
}
