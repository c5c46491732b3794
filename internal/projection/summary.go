package projection

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/horizon/internal/model"
)

// Summarize computes horizon-wide totals from a projection.
func Summarize(snapshots []model.YearlySnapshot) model.Summary {
	var sum model.Summary
	if len(snapshots) == 0 {
		return sum
	}

	first, last := snapshots[0], snapshots[len(snapshots)-1]
	sum.StartYear = first.Year
	sum.EndYear = last.Year
	sum.Years = len(snapshots)
	sum.PeakNetWorth = first.CumulativeNetWorth
	sum.PeakNetWorthYear = first.Year

	for _, s := range snapshots {
		sum.GrossIncome += s.Income.Gross
		sum.Taxes += s.Income.Taxes
		sum.NetIncome += s.Income.Net
		sum.Expenses += s.Expenses.Total
		sum.DebtPayments += s.Debt.TotalPayment
		sum.InterestPaid += s.Debt.Interest
		sum.Contributions += s.Investments.Contributions
		sum.Returns += s.Investments.Returns
		sum.NetCashFlow += s.NetCashFlow

		if s.NetCashFlow < 0 {
			sum.NegativeCashFlowYears++
		}
		if s.CumulativeNetWorth > sum.PeakNetWorth {
			sum.PeakNetWorth = s.CumulativeNetWorth
			sum.PeakNetWorthYear = s.Year
		}
		if sum.DebtFreeYear == 0 && debtFree(s.Debt) {
			sum.DebtFreeYear = s.Year
		}
	}

	sum.FinalInvestmentValue = last.Investments.Value
	sum.FinalAssetValue = last.Assets.Value
	sum.FinalNetWorth = last.CumulativeNetWorth

	return sum
}

func debtFree(d model.YearlyDebt) bool {
	if len(d.Payments) == 0 {
		return false
	}
	for _, p := range d.Payments {
		if p.RemainingPrincipal > 0 {
			return false
		}
	}
	return true
}

// Metric selects one plotted series of a projection.
type Metric string

const (
	MetricNetIncome       Metric = "net-income"
	MetricExpenses        Metric = "expenses"
	MetricNetCashFlow     Metric = "cash-flow"
	MetricNetWorth        Metric = "net-worth"
	MetricInvestmentValue Metric = "investments"
	MetricAssetValue      Metric = "assets"
)

// Metrics lists every chartable series in display order.
var Metrics = []Metric{
	MetricNetIncome,
	MetricExpenses,
	MetricNetCashFlow,
	MetricNetWorth,
	MetricInvestmentValue,
	MetricAssetValue,
}

// Label returns the display name of a metric.
func (m Metric) Label() string {
	switch m {
	case MetricNetIncome:
		return "Net Income"
	case MetricExpenses:
		return "Expenses"
	case MetricNetCashFlow:
		return "Net Cash Flow"
	case MetricNetWorth:
		return "Net Worth"
	case MetricInvestmentValue:
		return "Investment Value"
	case MetricAssetValue:
		return "Asset Value"
	}
	return string(m)
}

// ParseMetric resolves a metric name.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Series extracts one value per snapshot for the given metric.
func Series(snapshots []model.YearlySnapshot, m Metric) []float64 {
	out := make([]float64, len(snapshots))
	for i, s := range snapshots {
		switch m {
		case MetricNetIncome:
			out[i] = s.Income.Net
		case MetricExpenses:
			out[i] = s.Expenses.Total
		case MetricNetCashFlow:
			out[i] = s.NetCashFlow
		case MetricNetWorth:
			out[i] = s.CumulativeNetWorth
		case MetricInvestmentValue:
			out[i] = s.Investments.Value
		case MetricAssetValue:
			out[i] = s.Assets.Value
		}
	}
	return out
}

// YearLabels returns the years of a projection as strings, for chart axes.
func YearLabels(snapshots []model.YearlySnapshot) []string {
	out := make([]string, len(snapshots))
	for i, s := range snapshots {
		out[i] = fmt.Sprintf("%d", s.Year)
	}
	return out
}
