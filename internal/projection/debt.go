package projection

import (
	"math"

	"github.com/theirongolddev/horizon/internal/model"
)

// DebtForYear services every debt that has started by year. The outstanding
// balance of each debt is read from and written back to the state's debt
// ledger, seeded from the element's principal on first use; the caller's
// Debt values are never modified.
//
// Interest is a flat rate on the current balance. The principal portion is
// capped at the balance but not floored, so a payment smaller than the
// interest due yields a negative portion. The balance itself never drops
// below zero.
func (s *State) DebtForYear(year int, debts []model.Debt) model.YearlyDebt {
	var out model.YearlyDebt

	for _, d := range debts {
		if year < d.StartYear {
			continue
		}
		current, ok := s.debts.get(d.ID)
		if !ok {
			current = d.Principal
		}

		interest := current * d.InterestRate
		principal := math.Min(d.MonthlyPayment*12-interest, current)
		remaining := math.Max(current-principal, 0)
		s.debts.set(d.ID, remaining)

		out.Payments = append(out.Payments, model.DebtPaymentDetail{
			ID:                 d.ID,
			StartingPrincipal:  current,
			InterestPortion:    interest,
			PrincipalPortion:   principal,
			RemainingPrincipal: remaining,
		})
	}

	for _, p := range out.Payments {
		out.TotalPayment += p.InterestPortion + p.PrincipalPortion
		out.Interest += p.InterestPortion
		out.PrincipalPaid += p.PrincipalPortion
	}

	return out
}
