// Package projection turns a plan into a year-by-year sequence of financial
// snapshots. Everything here is pure computation: no I/O, no goroutines, no
// package-level mutable state.
package projection

import "github.com/theirongolddev/horizon/internal/model"

// State is the carried state of one projection run: running balances for
// debts, investments and assets, plus cumulative net worth. A State belongs
// to a single run and must not be shared between runs.
type State struct {
	debts       *ledger
	investments *ledger
	assets      *ledger
	netWorth    float64
}

// NewState returns an empty state for a fresh run.
func NewState() *State {
	return &State{
		debts:       newLedger(),
		investments: newLedger(),
		assets:      newLedger(),
	}
}

// NetWorth returns the cumulative net worth accumulated so far.
func (s *State) NetWorth() float64 {
	return s.netWorth
}

// DebtBalance returns the running balance of a debt and whether it has
// been serviced yet.
func (s *State) DebtBalance(id string) (float64, bool) {
	return s.debts.get(id)
}

// InvestmentValue returns the running value of an investment.
func (s *State) InvestmentValue(id string) (float64, bool) {
	return s.investments.get(id)
}

// AssetValue returns the running value of a held asset.
func (s *State) AssetValue(id string) (float64, bool) {
	return s.assets.get(id)
}

// Step computes the snapshot for year and advances the state. Income runs
// before investments because contributions are a share of that year's net
// income; assets run before the rollup because sales credit net worth.
func (s *State) Step(plan model.Plan, year int) model.YearlySnapshot {
	el := plan.Elements

	income := IncomeForYear(year, el.IncomeStreams, el.OneTimeIncomes)
	expenses := ExpensesForYear(year, el.RecurringExpenses, el.OneTimeExpenses, plan.InflationRate)
	debt := s.DebtForYear(year, el.Debts)
	investments := s.InvestmentsForYear(year, el.Investments, income.Net)
	assets := s.AssetsForYear(year, el.Assets)

	netCashFlow := income.Net - expenses.Total - debt.TotalPayment - investments.Contributions

	// The full outstanding stock of investments and assets is added every
	// year, not just the year's change.
	s.netWorth += netCashFlow + investments.Value + assets.Value

	return model.YearlySnapshot{
		Year:               year,
		Income:             income,
		Expenses:           expenses,
		Debt:               debt,
		Investments:        investments,
		Assets:             assets,
		NetCashFlow:        netCashFlow,
		CumulativeNetWorth: s.netWorth,
	}
}

// Project runs the plan over its inclusive horizon and returns one snapshot
// per year in ascending order. An inverted horizon yields an empty slice.
func Project(plan model.Plan) []model.YearlySnapshot {
	snapshots := make([]model.YearlySnapshot, 0, plan.Years())
	state := NewState()
	for year := plan.StartYear; year <= plan.EndYear; year++ {
		snapshots = append(snapshots, state.Step(plan, year))
	}
	return snapshots
}

// Find returns the snapshot for year, if the projection covers it.
func Find(snapshots []model.YearlySnapshot, year int) (model.YearlySnapshot, bool) {
	if len(snapshots) == 0 {
		return model.YearlySnapshot{}, false
	}
	idx := year - snapshots[0].Year
	if idx < 0 || idx >= len(snapshots) {
		return model.YearlySnapshot{}, false
	}
	return snapshots[idx], true
}
