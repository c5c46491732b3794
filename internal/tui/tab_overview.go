package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/projection"
	"github.com/theirongolddev/horizon/internal/tui/components"
	"github.com/theirongolddev/horizon/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary

	if len(a.years) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Overview",
			muted.Render(fmt.Sprintf("The horizon %d-%d is empty. Press s to open settings or edit the plan file.",
				a.plan.StartYear, a.plan.EndYear)), cw)
	}

	var b strings.Builder

	peakNote := ""
	if s.PeakNetWorthYear != 0 {
		peakNote = "in " + strconv.Itoa(s.PeakNetWorthYear)
	}
	debtFree := "never"
	debtNote := "debt outlives the horizon"
	if s.DebtFreeYear != 0 {
		debtFree = strconv.Itoa(s.DebtFreeYear)
		debtNote = "all balances cleared"
	}
	negTone := components.ToneNeutral
	if s.NegativeCashFlowYears > 0 {
		negTone = components.ToneNegative
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Final Net Worth", Value: cli.FormatMoneyCompact(s.FinalNetWorth),
			Note: "by " + strconv.Itoa(s.EndYear), Tone: components.ToneOf(s.FinalNetWorth)},
		{Label: "Peak Net Worth", Value: cli.FormatMoneyCompact(s.PeakNetWorth), Note: peakNote},
		{Label: "Debt Free", Value: debtFree, Note: debtNote},
		{Label: "Negative Years", Value: strconv.Itoa(s.NegativeCashFlowYears),
			Note: fmt.Sprintf("of %d", s.Years), Tone: negTone},
	}, cw))
	b.WriteString("\n")

	labels := projection.YearLabels(a.years)
	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}

	if a.isCompactLayout() {
		inner := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard("Net Worth",
			components.BarChart(projection.Series(a.years, projection.MetricNetWorth), labels, t.Accent, inner, chartH), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Cash Flow",
			components.BarChart(projection.Series(a.years, projection.MetricNetCashFlow), labels, t.Blue, inner, chartH), cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		nw := components.ContentCard("Net Worth",
			components.BarChart(projection.Series(a.years, projection.MetricNetWorth), labels, t.Accent,
				components.CardInnerWidth(widths[0]), chartH), widths[0])
		cf := components.ContentCard("Cash Flow",
			components.BarChart(projection.Series(a.years, projection.MetricNetCashFlow), labels, t.Blue,
				components.CardInnerWidth(widths[1]), chartH), widths[1])
		b.WriteString(components.CardRow([]string{nw, cf}))
	}
	b.WriteString("\n")

	trends := a.renderTrends()
	if len(a.plan.Elements.Debts) > 0 && !a.isCompactLayout() {
		widths := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Trends", trends, widths[0]),
			components.ContentCard("Debt Payoff", a.renderPayoff(widths[1]), widths[1]),
		}))
	} else {
		payoff := a.renderPayoff(cw)
		b.WriteString(components.ContentCard("Trends", trends, cw))
		if payoff != "" {
			b.WriteString("\n")
			b.WriteString(components.ContentCard("Debt Payoff", payoff, cw))
		}
	}

	return b.String()
}

// renderTrends draws one sparkline per metric with its final value.
func (a App) renderTrends() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, m := range projection.Metrics {
		series := projection.Series(a.years, m)
		final := series[len(series)-1]
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", m.Label())))
		b.WriteString(spaceStyle.Render(" "))
		b.WriteString(components.Sparkline(sampleTo(series, 40), t.Signed(final)))
		b.WriteString(spaceStyle.Render(" "))
		b.WriteString(valueStyle.Render(cli.FormatMoneyCompact(final)))
		if i < len(projection.Metrics)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderPayoff shows how much of each debt is repaid by the final year.
func (a App) renderPayoff(outer int) string {
	debts := a.plan.Elements.Debts
	if len(debts) == 0 || len(a.years) == 0 {
		return ""
	}

	last := a.years[len(a.years)-1]
	remaining := make(map[string]float64, len(last.Debt.Payments))
	for _, p := range last.Debt.Payments {
		remaining[p.ID] = p.RemainingPrincipal
	}

	inner := components.CardInnerWidth(outer)
	labelW := 16
	barW := max(inner-labelW-20, 10)

	var lines []string
	for _, d := range debts {
		if d.Principal <= 0 {
			continue
		}
		rest, ok := remaining[d.ID]
		if !ok {
			rest = debtRemainingBefore(d, last.Year)
		}
		paid := 1 - rest/d.Principal
		lines = append(lines, components.PayoffBar(d.Label(), paid, cli.FormatMoneyCompact(rest)+" left", labelW, barW))
	}
	return strings.Join(lines, "\n")
}

// debtRemainingBefore covers debts absent from the final year's payments:
// either not started yet (full principal) or already cleared.
func debtRemainingBefore(d model.Debt, year int) float64 {
	if d.StartYear > year {
		return d.Principal
	}
	return 0
}

// sampleTo thins a series to at most limit points, keeping the last one.
func sampleTo(values []float64, limit int) []float64 {
	if len(values) <= limit || limit < 2 {
		return values
	}
	out := make([]float64, limit)
	step := float64(len(values)-1) / float64(limit-1)
	for i := range out {
		out[i] = values[int(float64(i)*step+0.5)]
	}
	return out
}
