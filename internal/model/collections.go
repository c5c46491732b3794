package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateID is returned when an id already exists in its collection.
	ErrDuplicateID = errors.New("duplicate element id")
	// ErrNotFound is returned when no element carries the requested id.
	ErrNotFound = errors.New("element not found")
)

// Collections holds the seven element lists of a plan.
type Collections struct {
	IncomeStreams     []IncomeStream     `toml:"income_stream,omitempty" json:"income_streams"`
	RecurringExpenses []RecurringExpense `toml:"recurring_expense,omitempty" json:"recurring_expenses"`
	OneTimeExpenses   []OneTimeExpense   `toml:"one_time_expense,omitempty" json:"one_time_expenses"`
	OneTimeIncomes    []OneTimeIncome    `toml:"one_time_income,omitempty" json:"one_time_incomes"`
	Debts             []Debt             `toml:"debt,omitempty" json:"debts"`
	Investments       []Investment       `toml:"investment,omitempty" json:"investments"`
	Assets            []Asset            `toml:"asset,omitempty" json:"assets"`
}

// Clone returns a deep copy so callers never share backing arrays.
func (c Collections) Clone() Collections {
	out := Collections{
		IncomeStreams:     slices.Clone(c.IncomeStreams),
		RecurringExpenses: slices.Clone(c.RecurringExpenses),
		OneTimeExpenses:   slices.Clone(c.OneTimeExpenses),
		OneTimeIncomes:    slices.Clone(c.OneTimeIncomes),
		Debts:             slices.Clone(c.Debts),
		Investments:       slices.Clone(c.Investments),
		Assets:            slices.Clone(c.Assets),
	}
	for i, a := range out.Assets {
		if a.SellYear != nil {
			y := *a.SellYear
			out.Assets[i].SellYear = &y
		}
	}
	return out
}

// Len returns the total number of elements across all collections.
func (c Collections) Len() int {
	return len(c.IncomeStreams) + len(c.RecurringExpenses) + len(c.OneTimeExpenses) +
		len(c.OneTimeIncomes) + len(c.Debts) + len(c.Investments) + len(c.Assets)
}

// All returns every element in group order.
func (c Collections) All() []Element {
	out := make([]Element, 0, c.Len())
	for _, e := range c.IncomeStreams {
		out = append(out, e)
	}
	for _, e := range c.RecurringExpenses {
		out = append(out, e)
	}
	for _, e := range c.OneTimeExpenses {
		out = append(out, e)
	}
	for _, e := range c.OneTimeIncomes {
		out = append(out, e)
	}
	for _, e := range c.Debts {
		out = append(out, e)
	}
	for _, e := range c.Investments {
		out = append(out, e)
	}
	for _, e := range c.Assets {
		out = append(out, e)
	}
	return out
}

// OfKind returns the elements of a single variant.
func (c Collections) OfKind(kind Kind) []Element {
	var out []Element
	for _, e := range c.All() {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the first element with the given id in group order.
func (c Collections) Find(id string) (Element, bool) {
	for _, e := range c.All() {
		if e.ElementID() == id {
			return e, true
		}
	}
	return nil, false
}

// Add validates e and appends it to its collection.
func (c *Collections) Add(e Element) error {
	if err := e.Validate(); err != nil {
		return err
	}
	switch v := e.(type) {
	case IncomeStream:
		if indexOf(c.IncomeStreams, v.ID) >= 0 {
			return duplicate(v)
		}
		c.IncomeStreams = append(c.IncomeStreams, v)
	case RecurringExpense:
		if indexOf(c.RecurringExpenses, v.ID) >= 0 {
			return duplicate(v)
		}
		c.RecurringExpenses = append(c.RecurringExpenses, v)
	case OneTimeExpense:
		if indexOf(c.OneTimeExpenses, v.ID) >= 0 {
			return duplicate(v)
		}
		c.OneTimeExpenses = append(c.OneTimeExpenses, v)
	case OneTimeIncome:
		if indexOf(c.OneTimeIncomes, v.ID) >= 0 {
			return duplicate(v)
		}
		c.OneTimeIncomes = append(c.OneTimeIncomes, v)
	case Debt:
		if indexOf(c.Debts, v.ID) >= 0 {
			return duplicate(v)
		}
		c.Debts = append(c.Debts, v)
	case Investment:
		if indexOf(c.Investments, v.ID) >= 0 {
			return duplicate(v)
		}
		c.Investments = append(c.Investments, v)
	case Asset:
		if indexOf(c.Assets, v.ID) >= 0 {
			return duplicate(v)
		}
		c.Assets = append(c.Assets, v)
	default:
		return fmt.Errorf("unsupported element type %T", e)
	}
	return nil
}

// Replace swaps the element carrying e's id within e's collection.
func (c *Collections) Replace(e Element) error {
	if err := e.Validate(); err != nil {
		return err
	}
	var ok bool
	switch v := e.(type) {
	case IncomeStream:
		ok = replaceByID(c.IncomeStreams, v)
	case RecurringExpense:
		ok = replaceByID(c.RecurringExpenses, v)
	case OneTimeExpense:
		ok = replaceByID(c.OneTimeExpenses, v)
	case OneTimeIncome:
		ok = replaceByID(c.OneTimeIncomes, v)
	case Debt:
		ok = replaceByID(c.Debts, v)
	case Investment:
		ok = replaceByID(c.Investments, v)
	case Asset:
		ok = replaceByID(c.Assets, v)
	default:
		return fmt.Errorf("unsupported element type %T", e)
	}
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrNotFound, e.Kind(), e.ElementID())
	}
	return nil
}

// Delete removes every element with the given id and reports whether any
// was removed.
func (c *Collections) Delete(id string) bool {
	before := c.Len()
	c.IncomeStreams = deleteByID(c.IncomeStreams, id)
	c.RecurringExpenses = deleteByID(c.RecurringExpenses, id)
	c.OneTimeExpenses = deleteByID(c.OneTimeExpenses, id)
	c.OneTimeIncomes = deleteByID(c.OneTimeIncomes, id)
	c.Debts = deleteByID(c.Debts, id)
	c.Investments = deleteByID(c.Investments, id)
	c.Assets = deleteByID(c.Assets, id)
	return c.Len() != before
}

// Validate checks every element and id uniqueness within each collection.
func (c Collections) Validate() error {
	seen := make(map[Kind]map[string]struct{}, len(Kinds))
	for _, e := range c.All() {
		if err := e.Validate(); err != nil {
			return err
		}
		ids, ok := seen[e.Kind()]
		if !ok {
			ids = make(map[string]struct{})
			seen[e.Kind()] = ids
		}
		if _, dup := ids[e.ElementID()]; dup {
			return duplicate(e)
		}
		ids[e.ElementID()] = struct{}{}
	}
	return nil
}

func duplicate(e Element) error {
	return fmt.Errorf("%w: %s %q", ErrDuplicateID, e.Kind(), e.ElementID())
}

func indexOf[E Element](list []E, id string) int {
	return slices.IndexFunc(list, func(e E) bool { return e.ElementID() == id })
}

func replaceByID[E Element](list []E, v E) bool {
	i := indexOf(list, v.ElementID())
	if i < 0 {
		return false
	}
	list[i] = v
	return true
}

func deleteByID[E Element](list []E, id string) []E {
	return slices.DeleteFunc(list, func(e E) bool { return e.ElementID() == id })
}
