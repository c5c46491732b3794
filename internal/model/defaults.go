package model

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultCurrency is the currency label given to new elements.
const DefaultCurrency = "USD"

// NewElement returns a zero-valued element of the given kind starting in
// year, identified by a fresh UUID. Ranged kinds span ten years.
func NewElement(kind Kind, year int) (Element, error) {
	id := uuid.NewString()

	switch kind {
	case KindIncomeStream:
		return IncomeStream{ID: id, StartYear: year, EndYear: year + 10,
			TaxTreatment: "standard", Currency: DefaultCurrency}, nil
	case KindRecurringExpense:
		return RecurringExpense{ID: id, StartYear: year, EndYear: year + 10,
			InflationAdjusted: true, Currency: DefaultCurrency}, nil
	case KindOneTimeExpense:
		return OneTimeExpense{ID: id, Year: year, Currency: DefaultCurrency}, nil
	case KindOneTimeIncome:
		return OneTimeIncome{ID: id, Year: year, TaxTreatment: "standard", Currency: DefaultCurrency}, nil
	case KindDebt:
		return Debt{ID: id, StartYear: year, Currency: DefaultCurrency}, nil
	case KindInvestment:
		return Investment{ID: id, StartYear: year, EndYear: year + 10, Currency: DefaultCurrency}, nil
	case KindAsset:
		return Asset{ID: id, PurchaseYear: year, Currency: DefaultCurrency}, nil
	}
	return nil, fmt.Errorf("unknown element kind %q", kind)
}

// SamplePlan returns the built-in example plan covering 2025 through 2060.
func SamplePlan() Plan {
	return Plan{
		Name:          "sample",
		StartYear:     2025,
		EndYear:       2060,
		InflationRate: DefaultInflationRate,
		Elements:      SampleCollections(),
	}
}

// SampleCollections returns a small but complete set of example elements.
func SampleCollections() Collections {
	sell := 2048
	return Collections{
		IncomeStreams: []IncomeStream{
			{
				ID: "income1", StartYear: 2025, EndYear: 2055,
				GrossAmount: 80000, AnnualGrowthRate: 0.03,
				TaxTreatment: "Regular W2", EffectiveTaxRate: 0.25,
				Description: "Software Engineer at TechCorp", Currency: "USD", Location: "San Francisco",
			},
			{
				ID: "income2", StartYear: 2030, EndYear: 2045,
				GrossAmount: 120000, AnnualGrowthRate: 0.04,
				TaxTreatment: "Regular W2", EffectiveTaxRate: 0.28,
				Description: "Senior Engineer Role", Currency: "USD", Location: "San Francisco",
			},
		},
		RecurringExpenses: []RecurringExpense{
			{
				ID: "expense1", StartYear: 2025, EndYear: 2035,
				AnnualAmount: 36000, Category: "Housing", InflationAdjusted: true,
				Description: "Apartment Rent", Currency: "USD",
			},
		},
		OneTimeExpenses: []OneTimeExpense{
			{
				ID: "onetime1", Year: 2028, Amount: 50000, Category: "Housing",
				Description: "House Down Payment", Currency: "USD",
			},
		},
		OneTimeIncomes: []OneTimeIncome{
			{
				ID: "onetimeincome1", Year: 2027, Amount: 25000,
				TaxTreatment: "Capital gains", EffectiveTaxRate: 0.15,
				Description: "Stock Vesting", Currency: "USD",
			},
		},
		Debts: []Debt{
			{
				ID: "debt1", StartYear: 2025, Principal: 30000, InterestRate: 0.06,
				MonthlyPayment: 350, Description: "Student Loan", Currency: "USD",
			},
		},
		Investments: []Investment{
			{
				ID: "investment1", StartYear: 2025, EndYear: 2065,
				PercentageOfAvailableIncome: 0.15, AnnualReturnRate: 0.07,
				Description: "401k Retirement", Currency: "USD",
			},
		},
		Assets: []Asset{
			{
				ID: "asset1", PurchaseYear: 2028, SellYear: &sell,
				PurchaseExpenseID: "onetime1", AnnualAppreciationRate: 0.03,
				InitialValue: 250000, Description: "Primary Residence", Currency: "USD",
			},
		},
	}
}
