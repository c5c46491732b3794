package model

// IncomeStreamDetail traces one income stream's contribution to a year.
type IncomeStreamDetail struct {
	ID               string  `json:"id"`
	BaseAmount       float64 `json:"base_amount"`
	YearsFromStart   int     `json:"years_from_start"`
	GrowthMultiplier float64 `json:"growth_multiplier"`
	Gross            float64 `json:"gross"`
	Taxes            float64 `json:"taxes"`
	Net              float64 `json:"net"`
}

// OneTimeIncomeDetail traces one one-time income recognized in a year.
type OneTimeIncomeDetail struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Taxes  float64 `json:"taxes"`
	Net    float64 `json:"net"`
}

// IncomeSource is a net contribution keyed by element id.
type IncomeSource struct {
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
}

// YearlyIncome holds income totals for one year.
type YearlyIncome struct {
	Gross     float64               `json:"gross"`
	Taxes     float64               `json:"taxes"`
	Net       float64               `json:"net"`
	Breakdown []IncomeSource        `json:"breakdown"`
	Streams   []IncomeStreamDetail  `json:"streams"`
	OneTime   []OneTimeIncomeDetail `json:"one_time"`
}

// ExpenseDetail traces one expense's contribution to a year.
type ExpenseDetail struct {
	ID                  string  `json:"id"`
	Category            string  `json:"category"`
	BaseAmount          float64 `json:"base_amount"`
	InflationMultiplier float64 `json:"inflation_multiplier"`
	Amount              float64 `json:"amount"`
}

// ExpenseCategory is an amount attributed to a category.
type ExpenseCategory struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// YearlyExpenses holds expense totals for one year.
type YearlyExpenses struct {
	Total     float64           `json:"total"`
	Breakdown []ExpenseCategory `json:"breakdown"`
	Details   []ExpenseDetail   `json:"details"`
}

// DebtPaymentDetail traces one debt's payment in a year.
type DebtPaymentDetail struct {
	ID                 string  `json:"id"`
	StartingPrincipal  float64 `json:"starting_principal"`
	InterestPortion    float64 `json:"interest_portion"`
	PrincipalPortion   float64 `json:"principal_portion"`
	RemainingPrincipal float64 `json:"remaining_principal"`
}

// YearlyDebt holds debt service totals for one year.
type YearlyDebt struct {
	TotalPayment  float64             `json:"total_payment"`
	Interest      float64             `json:"interest"`
	PrincipalPaid float64             `json:"principal_paid"`
	Payments      []DebtPaymentDetail `json:"payments"`
}

// InvestmentDetail traces one active investment in a year.
type InvestmentDetail struct {
	ID            string  `json:"id"`
	StartingValue float64 `json:"starting_value"`
	Contribution  float64 `json:"contribution"`
	Growth        float64 `json:"growth"`
	EndingValue   float64 `json:"ending_value"`
}

// YearlyInvestments holds investment totals for one year. Value covers every
// investment ever funded, including ones whose window has closed.
type YearlyInvestments struct {
	Contributions float64            `json:"contributions"`
	Returns       float64            `json:"returns"`
	Value         float64            `json:"value"`
	Details       []InvestmentDetail `json:"details"`
}

// AssetDetail traces one held asset in a year.
type AssetDetail struct {
	ID            string  `json:"id"`
	StartingValue float64 `json:"starting_value"`
	Appreciation  float64 `json:"appreciation"`
	EndingValue   float64 `json:"ending_value"`
	SoldThisYear  bool    `json:"sold_this_year"`
}

// YearlyAssets holds asset totals for one year. Appreciation reports the
// total held value, not the appreciation earned during the year; per-asset
// appreciation is in Details.
type YearlyAssets struct {
	Appreciation float64       `json:"appreciation"`
	Value        float64       `json:"value"`
	Details      []AssetDetail `json:"details"`
}

// YearlySnapshot is the full set of figures computed for one year.
type YearlySnapshot struct {
	Year               int               `json:"year"`
	Income             YearlyIncome      `json:"income"`
	Expenses           YearlyExpenses    `json:"expenses"`
	Debt               YearlyDebt        `json:"debt"`
	Investments        YearlyInvestments `json:"investments"`
	Assets             YearlyAssets      `json:"assets"`
	NetCashFlow        float64           `json:"net_cash_flow"`
	CumulativeNetWorth float64           `json:"cumulative_net_worth"`
}

// Summary holds horizon-wide totals derived from a projection.
type Summary struct {
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`
	Years     int `json:"years"`

	GrossIncome   float64 `json:"gross_income"`
	Taxes         float64 `json:"taxes"`
	NetIncome     float64 `json:"net_income"`
	Expenses      float64 `json:"expenses"`
	DebtPayments  float64 `json:"debt_payments"`
	InterestPaid  float64 `json:"interest_paid"`
	Contributions float64 `json:"contributions"`
	Returns       float64 `json:"returns"`
	NetCashFlow   float64 `json:"net_cash_flow"`

	FinalInvestmentValue float64 `json:"final_investment_value"`
	FinalAssetValue      float64 `json:"final_asset_value"`
	FinalNetWorth        float64 `json:"final_net_worth"`
	PeakNetWorth         float64 `json:"peak_net_worth"`
	PeakNetWorthYear     int     `json:"peak_net_worth_year"`

	// DebtFreeYear is the first year every started debt has a zero balance,
	// or 0 if that never happens within the horizon.
	DebtFreeYear int `json:"debt_free_year,omitempty"`
	// NegativeCashFlowYears counts years whose net cash flow is below zero.
	NegativeCashFlowYears int `json:"negative_cash_flow_years"`
}
