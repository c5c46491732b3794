package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollections_AddAndFind(t *testing.T) {
	var c Collections
	require.NoError(t, c.Add(IncomeStream{ID: "job", StartYear: 2025, EndYear: 2030, GrossAmount: 1}))
	require.NoError(t, c.Add(Debt{ID: "loan", StartYear: 2025}))

	assert.Equal(t, 2, c.Len())

	e, ok := c.Find("loan")
	require.True(t, ok)
	assert.Equal(t, KindDebt, e.Kind())

	_, ok = c.Find("nope")
	assert.False(t, ok)
}

func TestCollections_AddDuplicate(t *testing.T) {
	var c Collections
	require.NoError(t, c.Add(OneTimeExpense{ID: "x", Year: 2025}))

	err := c.Add(OneTimeExpense{ID: "x", Year: 2026})
	assert.ErrorIs(t, err, ErrDuplicateID)

	// Uniqueness is per collection.
	assert.NoError(t, c.Add(OneTimeIncome{ID: "x", Year: 2026}))
}

func TestCollections_AddRejectsInvalid(t *testing.T) {
	var c Collections

	tests := []struct {
		name string
		el   Element
	}{
		{"empty id", Debt{}},
		{"inverted income", IncomeStream{ID: "a", StartYear: 2030, EndYear: 2029}},
		{"inverted expense", RecurringExpense{ID: "b", StartYear: 2030, EndYear: 2020}},
		{"inverted investment", Investment{ID: "c", StartYear: 2030, EndYear: 2025}},
		{"sale before purchase", Asset{ID: "d", PurchaseYear: 2030, SellYear: ptr(2029)}},
		{"bad currency", OneTimeIncome{ID: "e", Currency: "ZZZ"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Add(tt.el)
			if !errors.Is(err, ErrInvalidElement) {
				t.Fatalf("Add(%+v) = %v, want ErrInvalidElement", tt.el, err)
			}
		})
	}
	assert.Zero(t, c.Len())
}

func TestCollections_Replace(t *testing.T) {
	c := SampleCollections()

	updated := c.Debts[0]
	updated.MonthlyPayment = 999
	require.NoError(t, c.Replace(updated))
	assert.Equal(t, 999.0, c.Debts[0].MonthlyPayment)

	err := c.Replace(Debt{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	bad := c.IncomeStreams[0]
	bad.EndYear = bad.StartYear - 1
	assert.ErrorIs(t, c.Replace(bad), ErrInvalidElement)
}

func TestCollections_Delete(t *testing.T) {
	c := SampleCollections()
	n := c.Len()

	assert.True(t, c.Delete("expense1"))
	assert.Equal(t, n-1, c.Len())
	assert.False(t, c.Delete("expense1"))
}

func TestCollections_CloneIsDeep(t *testing.T) {
	c := SampleCollections()
	cp := c.Clone()

	cp.IncomeStreams[0].GrossAmount = 1
	*cp.Assets[0].SellYear = 1999

	assert.Equal(t, 80000.0, c.IncomeStreams[0].GrossAmount)
	assert.Equal(t, 2048, *c.Assets[0].SellYear)
}

func TestCollections_AllInGroupOrder(t *testing.T) {
	c := SampleCollections()
	all := c.All()
	require.Len(t, all, c.Len())

	last := -1
	for _, e := range all {
		idx := -1
		for i, k := range Kinds {
			if k == e.Kind() {
				idx = i
			}
		}
		if idx < last {
			t.Fatalf("element %s out of group order", e.ElementID())
		}
		last = idx
	}
	assert.Len(t, c.OfKind(KindIncomeStream), 2)
}

func TestCollections_ValidateDuplicates(t *testing.T) {
	c := Collections{Debts: []Debt{{ID: "a"}, {ID: "a"}}}
	assert.ErrorIs(t, c.Validate(), ErrDuplicateID)

	p := Plan{Name: "x", Elements: c}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `plan "x"`)

	assert.NoError(t, SamplePlan().Validate())
}

func TestPlan_Years(t *testing.T) {
	assert.Equal(t, 36, SamplePlan().Years())
	assert.Equal(t, 1, Plan{StartYear: 2025, EndYear: 2025}.Years())
	assert.Equal(t, 0, Plan{StartYear: 2026, EndYear: 2025}.Years())
}

func ptr(v int) *int { return &v }
