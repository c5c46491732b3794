package model

// OpenEndedYear is the timeline end used for elements without an end year.
const OpenEndedYear = 2070

// Handle selects which end of an element's timeline span is being moved.
type Handle int

const (
	HandleStart Handle = iota
	HandleEnd
)

// StartYear returns the first year an element is shown on the timeline.
func StartYear(e Element) int {
	switch v := e.(type) {
	case IncomeStream:
		return v.StartYear
	case RecurringExpense:
		return v.StartYear
	case OneTimeExpense:
		return v.Year
	case OneTimeIncome:
		return v.Year
	case Debt:
		return v.StartYear
	case Investment:
		return v.StartYear
	case Asset:
		return v.PurchaseYear
	}
	return 0
}

// EndYear returns the last year an element is shown on the timeline.
// Debts and unsold assets are open-ended.
func EndYear(e Element) int {
	switch v := e.(type) {
	case IncomeStream:
		return v.EndYear
	case RecurringExpense:
		return v.EndYear
	case OneTimeExpense:
		return v.Year
	case OneTimeIncome:
		return v.Year
	case Debt:
		return OpenEndedYear
	case Investment:
		return v.EndYear
	case Asset:
		if v.SellYear != nil {
			return *v.SellYear
		}
		return OpenEndedYear
	}
	return 0
}

// IsOneTime reports whether the element occupies a single year.
func IsOneTime(e Element) bool {
	switch e.(type) {
	case OneTimeExpense, OneTimeIncome:
		return true
	}
	return false
}

// MoveHandle returns a copy of e with one end of its span moved to year,
// clamped to [minYear, maxYear]. Ranged elements keep at least one year
// between start and end. One-time elements move as a whole. A debt has no
// end handle and is returned unchanged when asked to move it.
func MoveHandle(e Element, h Handle, year, minYear, maxYear int) Element {
	year = max(minYear, min(maxYear, year))

	switch v := e.(type) {
	case IncomeStream:
		v.StartYear, v.EndYear = moveRange(h, year, v.StartYear, v.EndYear)
		return v
	case RecurringExpense:
		v.StartYear, v.EndYear = moveRange(h, year, v.StartYear, v.EndYear)
		return v
	case Investment:
		v.StartYear, v.EndYear = moveRange(h, year, v.StartYear, v.EndYear)
		return v
	case OneTimeExpense:
		v.Year = year
		return v
	case OneTimeIncome:
		v.Year = year
		return v
	case Debt:
		if h == HandleStart {
			v.StartYear = year
		}
		return v
	case Asset:
		if h == HandleStart {
			v.PurchaseYear = year
			return v
		}
		sell := max(year, v.PurchaseYear+1)
		v.SellYear = &sell
		return v
	}
	return e
}

func moveRange(h Handle, year, start, end int) (int, int) {
	if h == HandleStart {
		return min(year, end-1), end
	}
	return start, max(year, start+1)
}

// Group describes how a kind of element is presented on a timeline.
type Group struct {
	Key     string
	Kind    Kind
	Label   string
	Tooltip string
	Color   string
}

// Groups lists the timeline groups in display order.
var Groups = []Group{
	{Key: "incomeStreams", Kind: KindIncomeStream, Label: "Income Streams",
		Tooltip: "Sources of income you get regularly, like salary or rent from tenants.", Color: "#10b981"},
	{Key: "recurringExpenses", Kind: KindRecurringExpense, Label: "Recurring Expenses",
		Tooltip: "Ongoing costs you pay regularly each year, such as rent, utilities, or subscriptions.", Color: "#ef4444"},
	{Key: "oneTimeExpenses", Kind: KindOneTimeExpense, Label: "One-time Expenses",
		Tooltip: "Single large payments, like buying a car, vacation costs, or repairs.", Color: "#f97316"},
	{Key: "oneTimeIncomes", Kind: KindOneTimeIncome, Label: "One-time Incomes",
		Tooltip: "Occasional earnings such as bonuses, gifts, or asset sales.", Color: "#84cc16"},
	{Key: "debts", Kind: KindDebt, Label: "Debts",
		Tooltip: "Money you owe, including loans, credit card balances, or mortgages.", Color: "#dc2626"},
	{Key: "investments", Kind: KindInvestment, Label: "Investments",
		Tooltip: "Money put into stocks, funds, or other assets, with a known or predicted growth rate.", Color: "#3b82f6"},
	{Key: "assets", Kind: KindAsset, Label: "Assets",
		Tooltip: "Things you own, like property or vehicles, with an appreciating or depreciating value.", Color: "#8b5cf6"},
}

// GroupFor returns the group descriptor for a kind.
func GroupFor(kind Kind) Group {
	for _, g := range Groups {
		if g.Kind == kind {
			return g
		}
	}
	return Group{Kind: kind, Label: string(kind)}
}
