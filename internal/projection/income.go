package projection

import (
	"math"

	"github.com/theirongolddev/horizon/internal/model"
)

// IncomeForYear computes gross, taxes and net income for a year from the
// streams active in it and the one-time incomes dated to it.
func IncomeForYear(year int, streams []model.IncomeStream, oneTimes []model.OneTimeIncome) model.YearlyIncome {
	var out model.YearlyIncome

	for _, s := range streams {
		if year < s.StartYear || year > s.EndYear {
			continue
		}
		yearsFromStart := year - s.StartYear
		growth := math.Pow(1+s.AnnualGrowthRate, float64(yearsFromStart))
		gross := s.GrossAmount * growth
		taxes := gross * s.EffectiveTaxRate

		out.Streams = append(out.Streams, model.IncomeStreamDetail{
			ID:               s.ID,
			BaseAmount:       s.GrossAmount,
			YearsFromStart:   yearsFromStart,
			GrowthMultiplier: growth,
			Gross:            gross,
			Taxes:            taxes,
			Net:              gross - taxes,
		})
	}

	for _, o := range oneTimes {
		if o.Year != year {
			continue
		}
		taxes := o.Amount * o.EffectiveTaxRate
		out.OneTime = append(out.OneTime, model.OneTimeIncomeDetail{
			ID:     o.ID,
			Amount: o.Amount,
			Taxes:  taxes,
			Net:    o.Amount - taxes,
		})
	}

	for _, d := range out.Streams {
		out.Gross += d.Gross
		out.Taxes += d.Taxes
		out.Breakdown = append(out.Breakdown, model.IncomeSource{Source: d.ID, Amount: d.Net})
	}
	for _, d := range out.OneTime {
		out.Gross += d.Amount
		out.Taxes += d.Taxes
		out.Breakdown = append(out.Breakdown, model.IncomeSource{Source: d.ID, Amount: d.Net})
	}
	out.Net = out.Gross - out.Taxes

	return out
}
