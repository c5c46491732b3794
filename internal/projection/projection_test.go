package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/horizon/internal/model"
)

const eps = 1e-6

func planWith(start, end int, el model.Collections) model.Plan {
	return model.Plan{StartYear: start, EndYear: end, InflationRate: 0.03, Elements: el}
}

func TestProject_SingleIncomeStream(t *testing.T) {
	plan := planWith(2025, 2026, model.Collections{
		IncomeStreams: []model.IncomeStream{{
			ID: "salary", StartYear: 2025, EndYear: 2055,
			GrossAmount: 80000, AnnualGrowthRate: 0.03, EffectiveTaxRate: 0.25,
		}},
	})

	snaps := Project(plan)
	require.Len(t, snaps, 2)

	y1 := snaps[0]
	assert.Equal(t, 2025, y1.Year)
	assert.Equal(t, 1.0, y1.Income.Streams[0].GrowthMultiplier)
	assert.InDelta(t, 80000, y1.Income.Gross, eps)
	assert.InDelta(t, 20000, y1.Income.Taxes, eps)
	assert.InDelta(t, 60000, y1.Income.Net, eps)
	assert.InDelta(t, 60000, y1.NetCashFlow, eps)
	assert.InDelta(t, 60000, y1.CumulativeNetWorth, eps)

	y2 := snaps[1]
	assert.InDelta(t, 1.03, y2.Income.Streams[0].GrowthMultiplier, eps)
	assert.InDelta(t, 82400, y2.Income.Gross, eps)
	assert.InDelta(t, 20600, y2.Income.Taxes, eps)
	assert.InDelta(t, 61800, y2.Income.Net, eps)
	assert.InDelta(t, 61800, y2.NetCashFlow, eps)
	assert.InDelta(t, 121800, y2.CumulativeNetWorth, eps)
}

func TestProject_DebtAmortization(t *testing.T) {
	debt := model.Debt{ID: "loan", StartYear: 2025, Principal: 30000, InterestRate: 0.06, MonthlyPayment: 350}
	plan := planWith(2025, 2026, model.Collections{Debts: []model.Debt{debt}})

	snaps := Project(plan)
	require.Len(t, snaps, 2)

	p1 := snaps[0].Debt.Payments[0]
	assert.InDelta(t, 30000, p1.StartingPrincipal, eps)
	assert.InDelta(t, 1800, p1.InterestPortion, eps)
	assert.InDelta(t, 2400, p1.PrincipalPortion, eps)
	assert.InDelta(t, 27600, p1.RemainingPrincipal, eps)
	assert.InDelta(t, 4200, snaps[0].Debt.TotalPayment, eps)

	p2 := snaps[1].Debt.Payments[0]
	assert.InDelta(t, 27600, p2.StartingPrincipal, eps)
	assert.InDelta(t, 1656, p2.InterestPortion, eps)
	assert.InDelta(t, 2544, p2.PrincipalPortion, eps)
	assert.InDelta(t, 25056, p2.RemainingPrincipal, eps)

	assert.InDelta(t, -4200, snaps[0].NetCashFlow, eps)
}

func TestProject_DoesNotMutatePlan(t *testing.T) {
	plan := model.SamplePlan()
	before := plan.Clone()

	_ = Project(plan)

	assert.Equal(t, before, plan)
	assert.Equal(t, 30000.0, plan.Elements.Debts[0].Principal)
}

func TestProject_RepeatedRunsAreIndependent(t *testing.T) {
	plan := model.SamplePlan()

	first := Project(plan)
	second := Project(plan)

	require.Len(t, first, 36)
	assert.Equal(t, first, second)
	for i, s := range first {
		assert.Equal(t, plan.StartYear+i, s.Year)
	}
}

func TestProject_InvertedHorizonIsEmpty(t *testing.T) {
	snaps := Project(planWith(2030, 2025, model.SampleCollections()))
	assert.NotNil(t, snaps)
	assert.Empty(t, snaps)
}

func TestProject_SingleYearHorizon(t *testing.T) {
	snaps := Project(planWith(2025, 2025, model.SampleCollections()))
	require.Len(t, snaps, 1)
	assert.Equal(t, 2025, snaps[0].Year)
}

func TestProject_InvestmentStockCountedEveryYear(t *testing.T) {
	plan := planWith(2025, 2028, model.Collections{
		IncomeStreams: []model.IncomeStream{{ID: "job", StartYear: 2025, EndYear: 2028, GrossAmount: 100000}},
		Investments: []model.Investment{{
			ID: "fund", StartYear: 2025, EndYear: 2026,
			PercentageOfAvailableIncome: 0.1, AnnualReturnRate: 0.05,
		}},
	})

	snaps := Project(plan)
	require.Len(t, snaps, 4)

	assert.InDelta(t, 10000, snaps[0].Investments.Contributions, eps)
	assert.InDelta(t, 500, snaps[0].Investments.Returns, eps)
	assert.InDelta(t, 10500, snaps[0].Investments.Value, eps)
	assert.InDelta(t, 90000, snaps[0].NetCashFlow, eps)
	assert.InDelta(t, 100500, snaps[0].CumulativeNetWorth, eps)

	assert.InDelta(t, 21525, snaps[1].Investments.Value, eps)
	assert.InDelta(t, 212025, snaps[1].CumulativeNetWorth, eps)

	// Window closed: no contribution, no growth, value frozen but still counted.
	for _, s := range snaps[2:] {
		assert.Empty(t, s.Investments.Details)
		assert.Zero(t, s.Investments.Contributions)
		assert.Zero(t, s.Investments.Returns)
		assert.InDelta(t, 21525, s.Investments.Value, eps)
		assert.InDelta(t, 100000, s.NetCashFlow, eps)
	}
	assert.InDelta(t, 212025+100000+21525, snaps[2].CumulativeNetWorth, eps)
	assert.InDelta(t, 212025+2*(100000+21525), snaps[3].CumulativeNetWorth, eps)
}

func TestProject_InvestmentUsesSameYearNetIncome(t *testing.T) {
	plan := planWith(2025, 2025, model.Collections{
		IncomeStreams:  []model.IncomeStream{{ID: "job", StartYear: 2025, EndYear: 2030, GrossAmount: 50000, EffectiveTaxRate: 0.2}},
		OneTimeIncomes: []model.OneTimeIncome{{ID: "bonus", Year: 2025, Amount: 10000, EffectiveTaxRate: 0.5}},
		Investments:    []model.Investment{{ID: "ira", StartYear: 2025, EndYear: 2030, PercentageOfAvailableIncome: 0.5}},
	})

	snaps := Project(plan)
	require.Len(t, snaps, 1)
	assert.InDelta(t, 45000, snaps[0].Income.Net, eps)
	assert.InDelta(t, 22500, snaps[0].Investments.Contributions, eps)
}

func TestProject_AssetSaleCreditsNetWorthOnce(t *testing.T) {
	sell := 2027
	plan := planWith(2025, 2028, model.Collections{
		Assets: []model.Asset{{
			ID: "house", PurchaseYear: 2025, SellYear: &sell,
			InitialValue: 100000, AnnualAppreciationRate: 0.1,
		}},
	})

	snaps := Project(plan)
	require.Len(t, snaps, 4)

	assert.InDelta(t, 110000, snaps[0].Assets.Value, eps)
	assert.InDelta(t, 110000, snaps[0].CumulativeNetWorth, eps)
	assert.InDelta(t, 121000, snaps[1].Assets.Value, eps)
	assert.InDelta(t, 231000, snaps[1].CumulativeNetWorth, eps)

	sale := snaps[2]
	require.Len(t, sale.Assets.Details, 1)
	assert.True(t, sale.Assets.Details[0].SoldThisYear)
	assert.InDelta(t, 133100, sale.Assets.Details[0].EndingValue, eps)
	assert.Zero(t, sale.Assets.Value)
	assert.InDelta(t, 231000+133100, sale.CumulativeNetWorth, eps)

	after := snaps[3]
	assert.Empty(t, after.Assets.Details)
	assert.Zero(t, after.Assets.Value)
	assert.InDelta(t, 364100, after.CumulativeNetWorth, eps)
}

func TestProject_AssetAppreciationFieldMirrorsValue(t *testing.T) {
	plan := planWith(2025, 2026, model.Collections{
		Assets: []model.Asset{{ID: "car", PurchaseYear: 2025, InitialValue: 20000, AnnualAppreciationRate: -0.1}},
	})

	snaps := Project(plan)
	require.Len(t, snaps, 2)

	for _, s := range snaps {
		assert.Equal(t, s.Assets.Value, s.Assets.Appreciation)
	}
	assert.InDelta(t, -2000, snaps[0].Assets.Details[0].Appreciation, eps)
	assert.InDelta(t, 18000, snaps[0].Assets.Appreciation, eps)
}

func TestProject_AssetBoughtAndSoldSameYear(t *testing.T) {
	sell := 2025
	plan := planWith(2025, 2026, model.Collections{
		Assets: []model.Asset{{ID: "flip", PurchaseYear: 2025, SellYear: &sell, InitialValue: 50000, AnnualAppreciationRate: 0.2}},
	})

	snaps := Project(plan)
	require.Len(t, snaps, 2)

	require.Len(t, snaps[0].Assets.Details, 1)
	assert.True(t, snaps[0].Assets.Details[0].SoldThisYear)
	assert.Zero(t, snaps[0].Assets.Value)
	assert.InDelta(t, 60000, snaps[0].CumulativeNetWorth, eps)
	assert.InDelta(t, 60000, snaps[1].CumulativeNetWorth, eps)
}

func TestProject_SaleWithoutPurchaseInHorizonIsIgnored(t *testing.T) {
	sell := 2026
	plan := planWith(2025, 2027, model.Collections{
		Assets: []model.Asset{{ID: "old", PurchaseYear: 2020, SellYear: &sell, InitialValue: 1000}},
	})

	for _, s := range Project(plan) {
		assert.Empty(t, s.Assets.Details)
		assert.Zero(t, s.CumulativeNetWorth)
	}
}

func TestProject_SampleSanity(t *testing.T) {
	snaps := Project(model.SamplePlan())

	y2028, ok := Find(snaps, 2028)
	require.True(t, ok)
	// Down payment lands in 2028 alongside rent.
	assert.Len(t, y2028.Expenses.Details, 2)
	require.Len(t, y2028.Assets.Details, 1)
	assert.InDelta(t, 257500, y2028.Assets.Details[0].EndingValue, eps)

	y2048, ok := Find(snaps, 2048)
	require.True(t, ok)
	require.Len(t, y2048.Assets.Details, 1)
	assert.True(t, y2048.Assets.Details[0].SoldThisYear)
	assert.Zero(t, y2048.Assets.Value)

	// The debt keeps producing rows after it is repaid.
	last := snaps[len(snaps)-1]
	require.Len(t, last.Debt.Payments, 1)
	assert.Zero(t, last.Debt.Payments[0].RemainingPrincipal)
}

func TestFind(t *testing.T) {
	snaps := Project(planWith(2025, 2027, model.Collections{}))

	s, ok := Find(snaps, 2026)
	require.True(t, ok)
	assert.Equal(t, 2026, s.Year)

	_, ok = Find(snaps, 2024)
	assert.False(t, ok)
	_, ok = Find(snaps, 2028)
	assert.False(t, ok)
	_, ok = Find(nil, 2025)
	assert.False(t, ok)
}
