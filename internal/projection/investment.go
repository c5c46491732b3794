package projection

import "github.com/theirongolddev/horizon/internal/model"

// InvestmentsForYear contributes a share of netIncome to each investment
// active in year and compounds it. netIncome must be the same year's income
// from IncomeForYear.
//
// Value totals every balance in the ledger, so an investment whose window
// has closed keeps counting at its frozen value.
func (s *State) InvestmentsForYear(year int, investments []model.Investment, netIncome float64) model.YearlyInvestments {
	var out model.YearlyInvestments

	for _, inv := range investments {
		if year < inv.StartYear || year > inv.EndYear {
			continue
		}
		starting, _ := s.investments.get(inv.ID)
		contribution := netIncome * inv.PercentageOfAvailableIncome
		afterContribution := starting + contribution
		growth := afterContribution * inv.AnnualReturnRate
		ending := afterContribution + growth
		s.investments.set(inv.ID, ending)

		out.Details = append(out.Details, model.InvestmentDetail{
			ID:            inv.ID,
			StartingValue: starting,
			Contribution:  contribution,
			Growth:        growth,
			EndingValue:   ending,
		})
	}

	for _, d := range out.Details {
		out.Contributions += d.Contribution
		out.Returns += d.Growth
	}
	out.Value = s.investments.sum()

	return out
}
