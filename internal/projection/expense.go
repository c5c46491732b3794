package projection

import (
	"math"

	"github.com/theirongolddev/horizon/internal/model"
)

// ExpensesForYear computes the year's spending. Recurring expenses flagged as
// inflation-adjusted grow by inflationRate per year since their start;
// one-time expenses are taken at face value.
func ExpensesForYear(year int, recurring []model.RecurringExpense, oneTimes []model.OneTimeExpense, inflationRate float64) model.YearlyExpenses {
	var out model.YearlyExpenses

	for _, e := range recurring {
		if year < e.StartYear || year > e.EndYear {
			continue
		}
		multiplier := 1.0
		if e.InflationAdjusted {
			multiplier = math.Pow(1+inflationRate, float64(year-e.StartYear))
		}
		out.Details = append(out.Details, model.ExpenseDetail{
			ID:                  e.ID,
			Category:            e.Category,
			BaseAmount:          e.AnnualAmount,
			InflationMultiplier: multiplier,
			Amount:              e.AnnualAmount * multiplier,
		})
	}

	for _, o := range oneTimes {
		if o.Year != year {
			continue
		}
		out.Details = append(out.Details, model.ExpenseDetail{
			ID:                  o.ID,
			Category:            o.Category,
			BaseAmount:          o.Amount,
			InflationMultiplier: 1,
			Amount:              o.Amount,
		})
	}

	for _, d := range out.Details {
		out.Total += d.Amount
		out.Breakdown = append(out.Breakdown, model.ExpenseCategory{Category: d.Category, Amount: d.Amount})
	}

	return out
}
