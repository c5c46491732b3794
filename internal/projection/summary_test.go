package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/horizon/internal/model"
)

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, model.Summary{}, Summarize(nil))
}

func TestSummarize_Totals(t *testing.T) {
	plan := planWith(2025, 2027, model.Collections{
		IncomeStreams: []model.IncomeStream{{ID: "job", StartYear: 2025, EndYear: 2027, GrossAmount: 10000}},
		Debts:         []model.Debt{{ID: "loan", StartYear: 2025, Principal: 1000, InterestRate: 0, MonthlyPayment: 50}},
	})
	snaps := Project(plan)
	sum := Summarize(snaps)

	assert.Equal(t, 2025, sum.StartYear)
	assert.Equal(t, 2027, sum.EndYear)
	assert.Equal(t, 3, sum.Years)
	assert.InDelta(t, 30000, sum.GrossIncome, eps)
	assert.InDelta(t, 1000, sum.DebtPayments, eps)
	// 600 in 2025, 400 in 2026, then the balance is zero.
	assert.Equal(t, 2026, sum.DebtFreeYear)
	assert.Equal(t, 0, sum.NegativeCashFlowYears)
	assert.Equal(t, 2027, sum.PeakNetWorthYear)
	assert.InDelta(t, snaps[2].CumulativeNetWorth, sum.FinalNetWorth, eps)
	assert.InDelta(t, 29000, sum.NetCashFlow, eps)
}

func TestSummarize_NegativeYearsAndPeak(t *testing.T) {
	plan := planWith(2025, 2027, model.Collections{
		IncomeStreams:   []model.IncomeStream{{ID: "job", StartYear: 2025, EndYear: 2025, GrossAmount: 5000}},
		OneTimeExpenses: []model.OneTimeExpense{{ID: "trip", Year: 2026, Amount: 1000}},
	})
	sum := Summarize(Project(plan))

	assert.Equal(t, 1, sum.NegativeCashFlowYears)
	assert.Equal(t, 2025, sum.PeakNetWorthYear)
	assert.InDelta(t, 5000, sum.PeakNetWorth, eps)
	assert.Zero(t, sum.DebtFreeYear)
}

func TestSeries(t *testing.T) {
	snaps := Project(model.SamplePlan())

	for _, m := range Metrics {
		s := Series(snaps, m)
		require.Len(t, s, len(snaps), "metric %s", m)
	}

	nw := Series(snaps, MetricNetWorth)
	assert.Equal(t, snaps[10].CumulativeNetWorth, nw[10])

	labels := YearLabels(snaps)
	assert.Equal(t, "2025", labels[0])
	assert.Equal(t, "2060", labels[len(labels)-1])
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric(" Net-Worth ")
	require.NoError(t, err)
	assert.Equal(t, MetricNetWorth, m)
	assert.Equal(t, "Net Worth", m.Label())

	_, err = ParseMetric("profit")
	assert.Error(t, err)
}
