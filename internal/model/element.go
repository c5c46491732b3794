// Package model defines the financial plan elements and the projection output types.
package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// ErrInvalidElement is returned when an element fails validation.
var ErrInvalidElement = errors.New("invalid element")

// Kind identifies one of the seven element variants.
type Kind string

const (
	KindIncomeStream     Kind = "income_stream"
	KindRecurringExpense Kind = "recurring_expense"
	KindOneTimeExpense   Kind = "one_time_expense"
	KindOneTimeIncome    Kind = "one_time_income"
	KindDebt             Kind = "debt"
	KindInvestment       Kind = "investment"
	KindAsset            Kind = "asset"
)

// Kinds lists every variant in timeline group order.
var Kinds = []Kind{
	KindIncomeStream,
	KindRecurringExpense,
	KindOneTimeExpense,
	KindOneTimeIncome,
	KindDebt,
	KindInvestment,
	KindAsset,
}

// ParseKind maps a user-supplied name onto a Kind. Dashes are accepted in place
// of underscores so "one-time-income" works on the command line.
func ParseKind(s string) (Kind, error) {
	norm := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, k := range Kinds {
		if k == norm {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown element kind %q", s)
}

// Element is one declarative financial fact. The set of implementations is
// closed: switch on the concrete type, never on which fields happen to be set.
type Element interface {
	ElementID() string
	Kind() Kind
	Label() string
	Validate() error
	element()
}

// IncomeStream is recurring gross income over an inclusive year range.
type IncomeStream struct {
	ID               string  `toml:"id" json:"id"`
	StartYear        int     `toml:"start_year" json:"start_year"`
	EndYear          int     `toml:"end_year" json:"end_year"`
	GrossAmount      float64 `toml:"gross_amount" json:"gross_amount"`
	AnnualGrowthRate float64 `toml:"annual_growth_rate" json:"annual_growth_rate"`
	TaxTreatment     string  `toml:"tax_treatment,omitempty" json:"tax_treatment,omitempty"`
	EffectiveTaxRate float64 `toml:"effective_tax_rate" json:"effective_tax_rate"`
	Description      string  `toml:"description,omitempty" json:"description,omitempty"`
	Currency         string  `toml:"currency,omitempty" json:"currency,omitempty"`
	Location         string  `toml:"location,omitempty" json:"location,omitempty"`
}

// RecurringExpense is a yearly cost over an inclusive year range.
type RecurringExpense struct {
	ID                string  `toml:"id" json:"id"`
	StartYear         int     `toml:"start_year" json:"start_year"`
	EndYear           int     `toml:"end_year" json:"end_year"`
	AnnualAmount      float64 `toml:"annual_amount" json:"annual_amount"`
	Category          string  `toml:"category,omitempty" json:"category,omitempty"`
	InflationAdjusted bool    `toml:"inflation_adjusted" json:"inflation_adjusted"`
	Description       string  `toml:"description,omitempty" json:"description,omitempty"`
	Currency          string  `toml:"currency,omitempty" json:"currency,omitempty"`
}

// OneTimeExpense is a single payment in one year. No inflation is applied.
type OneTimeExpense struct {
	ID          string  `toml:"id" json:"id"`
	Year        int     `toml:"year" json:"year"`
	Amount      float64 `toml:"amount" json:"amount"`
	Category    string  `toml:"category,omitempty" json:"category,omitempty"`
	Description string  `toml:"description,omitempty" json:"description,omitempty"`
	Currency    string  `toml:"currency,omitempty" json:"currency,omitempty"`
}

// OneTimeIncome is a single taxed receipt in one year.
type OneTimeIncome struct {
	ID               string  `toml:"id" json:"id"`
	Year             int     `toml:"year" json:"year"`
	Amount           float64 `toml:"amount" json:"amount"`
	TaxTreatment     string  `toml:"tax_treatment,omitempty" json:"tax_treatment,omitempty"`
	EffectiveTaxRate float64 `toml:"effective_tax_rate" json:"effective_tax_rate"`
	Description      string  `toml:"description,omitempty" json:"description,omitempty"`
	Currency         string  `toml:"currency,omitempty" json:"currency,omitempty"`
}

// Debt is a loan repaid from StartYear onward with no end year.
type Debt struct {
	ID             string  `toml:"id" json:"id"`
	StartYear      int     `toml:"start_year" json:"start_year"`
	Principal      float64 `toml:"principal" json:"principal"`
	InterestRate   float64 `toml:"interest_rate" json:"interest_rate"`
	MonthlyPayment float64 `toml:"monthly_payment" json:"monthly_payment"`
	Description    string  `toml:"description,omitempty" json:"description,omitempty"`
	Currency       string  `toml:"currency,omitempty" json:"currency,omitempty"`
}

// Investment receives a share of each active year's net income and compounds.
type Investment struct {
	ID                          string  `toml:"id" json:"id"`
	StartYear                   int     `toml:"start_year" json:"start_year"`
	EndYear                     int     `toml:"end_year" json:"end_year"`
	PercentageOfAvailableIncome float64 `toml:"percentage_of_available_income" json:"percentage_of_available_income"`
	AnnualReturnRate            float64 `toml:"annual_return_rate" json:"annual_return_rate"`
	Description                 string  `toml:"description,omitempty" json:"description,omitempty"`
	Currency                    string  `toml:"currency,omitempty" json:"currency,omitempty"`
}

// Asset is held from PurchaseYear and optionally sold in SellYear.
// PurchaseExpenseID and FinancingDebtID are informational links only.
type Asset struct {
	ID                     string  `toml:"id" json:"id"`
	PurchaseYear           int     `toml:"purchase_year" json:"purchase_year"`
	SellYear               *int    `toml:"sell_year,omitempty" json:"sell_year,omitempty"`
	PurchaseExpenseID      string  `toml:"purchase_expense_id,omitempty" json:"purchase_expense_id,omitempty"`
	FinancingDebtID        string  `toml:"financing_debt_id,omitempty" json:"financing_debt_id,omitempty"`
	AnnualAppreciationRate float64 `toml:"annual_appreciation_rate" json:"annual_appreciation_rate"`
	InitialValue           float64 `toml:"initial_value" json:"initial_value"`
	Description            string  `toml:"description,omitempty" json:"description,omitempty"`
	Currency               string  `toml:"currency,omitempty" json:"currency,omitempty"`
}

// SoldIn reports whether the asset is sold in the given year.
func (a Asset) SoldIn(year int) bool {
	return a.SellYear != nil && *a.SellYear == year
}

func (IncomeStream) element()     {}
func (RecurringExpense) element() {}
func (OneTimeExpense) element()   {}
func (OneTimeIncome) element()    {}
func (Debt) element()             {}
func (Investment) element()       {}
func (Asset) element()            {}

func (e IncomeStream) ElementID() string     { return e.ID }
func (e RecurringExpense) ElementID() string { return e.ID }
func (e OneTimeExpense) ElementID() string   { return e.ID }
func (e OneTimeIncome) ElementID() string    { return e.ID }
func (e Debt) ElementID() string             { return e.ID }
func (e Investment) ElementID() string       { return e.ID }
func (e Asset) ElementID() string            { return e.ID }

func (IncomeStream) Kind() Kind     { return KindIncomeStream }
func (RecurringExpense) Kind() Kind { return KindRecurringExpense }
func (OneTimeExpense) Kind() Kind   { return KindOneTimeExpense }
func (OneTimeIncome) Kind() Kind    { return KindOneTimeIncome }
func (Debt) Kind() Kind             { return KindDebt }
func (Investment) Kind() Kind       { return KindInvestment }
func (Asset) Kind() Kind            { return KindAsset }

func (e IncomeStream) Label() string     { return labelOr(e.Description, e.ID) }
func (e RecurringExpense) Label() string { return labelOr(e.Description, e.ID) }
func (e OneTimeExpense) Label() string   { return labelOr(e.Description, e.ID) }
func (e OneTimeIncome) Label() string    { return labelOr(e.Description, e.ID) }
func (e Debt) Label() string             { return labelOr(e.Description, e.ID) }
func (e Investment) Label() string       { return labelOr(e.Description, e.ID) }
func (e Asset) Label() string            { return labelOr(e.Description, e.ID) }

func labelOr(desc, id string) string {
	if desc != "" {
		return desc
	}
	return id
}

// Validate checks id, currency and the start <= end window.
func (e IncomeStream) Validate() error {
	if err := validateCommon(e.Kind(), e.ID, e.Currency); err != nil {
		return err
	}
	return validateRange(e.Kind(), e.ID, e.StartYear, e.EndYear)
}

// Validate checks id, currency and the start <= end window.
func (e RecurringExpense) Validate() error {
	if err := validateCommon(e.Kind(), e.ID, e.Currency); err != nil {
		return err
	}
	return validateRange(e.Kind(), e.ID, e.StartYear, e.EndYear)
}

func (e OneTimeExpense) Validate() error { return validateCommon(e.Kind(), e.ID, e.Currency) }
func (e OneTimeIncome) Validate() error  { return validateCommon(e.Kind(), e.ID, e.Currency) }
func (e Debt) Validate() error           { return validateCommon(e.Kind(), e.ID, e.Currency) }

// Validate checks id, currency and the start <= end window.
func (e Investment) Validate() error {
	if err := validateCommon(e.Kind(), e.ID, e.Currency); err != nil {
		return err
	}
	return validateRange(e.Kind(), e.ID, e.StartYear, e.EndYear)
}

// Validate checks id, currency and that a sale does not precede the purchase.
func (e Asset) Validate() error {
	if err := validateCommon(e.Kind(), e.ID, e.Currency); err != nil {
		return err
	}
	if e.SellYear != nil {
		return validateRange(e.Kind(), e.ID, e.PurchaseYear, *e.SellYear)
	}
	return nil
}

func validateCommon(kind Kind, id, cur string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s has an empty id", ErrInvalidElement, kind)
	}
	if cur != "" {
		if _, err := currency.ParseISO(cur); err != nil {
			return fmt.Errorf("%w: %s %q has unknown currency %q", ErrInvalidElement, kind, id, cur)
		}
	}
	return nil
}

func validateRange(kind Kind, id string, start, end int) error {
	if start > end {
		return fmt.Errorf("%w: %s %q ends (%d) before it starts (%d)", ErrInvalidElement, kind, id, end, start)
	}
	return nil
}
