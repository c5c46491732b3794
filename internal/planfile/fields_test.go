package planfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/horizon/internal/model"
)

func TestSetFields(t *testing.T) {
	orig := model.IncomeStream{ID: "job", StartYear: 2025, EndYear: 2030, GrossAmount: 1000}

	got, err := SetFields(orig, []string{
		"gross_amount=80000",
		"effective_tax_rate = 0.25",
		"description=Senior Engineer",
		"location=",
	})
	require.NoError(t, err)

	inc, ok := got.(model.IncomeStream)
	require.True(t, ok)
	assert.Equal(t, 80000.0, inc.GrossAmount)
	assert.Equal(t, 0.25, inc.EffectiveTaxRate)
	assert.Equal(t, "Senior Engineer", inc.Description)
	assert.Equal(t, 2025, inc.StartYear)
	assert.Equal(t, 1000.0, orig.GrossAmount)
}

func TestSetFields_StringFieldsStayText(t *testing.T) {
	orig := model.OneTimeExpense{ID: "roof", Year: 2030, Amount: 12000}

	got, err := SetFields(orig, []string{
		"description=2025",
		"category=true",
	})
	require.NoError(t, err)

	exp, ok := got.(model.OneTimeExpense)
	require.True(t, ok)
	assert.Equal(t, "2025", exp.Description)
	assert.Equal(t, "true", exp.Category)

	got, err = SetFields(orig, []string{`description="Roof, 2031"`, "amount=15000"})
	require.NoError(t, err)
	exp = got.(model.OneTimeExpense)
	assert.Equal(t, "Roof, 2031", exp.Description)
	assert.Equal(t, 15000.0, exp.Amount)
}

func TestSetFields_AssetSellYear(t *testing.T) {
	sell := 2040
	orig := model.Asset{ID: "house", PurchaseYear: 2030, SellYear: &sell}

	got, err := SetFields(orig, []string{"sell_year=2045", "inflation_adjusted=true"})
	require.Error(t, err)
	assert.Nil(t, got)

	got, err = SetFields(orig, []string{"sell_year=2045"})
	require.NoError(t, err)
	assert.Equal(t, 2045, *got.(model.Asset).SellYear)
	assert.Equal(t, 2040, sell)
}

func TestSetFields_Errors(t *testing.T) {
	d := model.Debt{ID: "loan", StartYear: 2025}

	_, err := SetFields(d, []string{"principal"})
	assert.Error(t, err)

	_, err = SetFields(d, []string{"id=other"})
	assert.Error(t, err)

	_, err = SetFields(d, []string{"nonsense=1"})
	assert.ErrorContains(t, err, "nonsense")

	_, err = SetFields(d, []string{"principal=lots"})
	assert.Error(t, err)

	inv := model.Investment{ID: "i", StartYear: 2025, EndYear: 2030}
	_, err = SetFields(inv, []string{"end_year=2020"})
	assert.ErrorIs(t, err, model.ErrInvalidElement)
}
