package forms

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/horizon/internal/config"
	"github.com/theirongolddev/horizon/internal/model"
)

func field(t *testing.T, fields []*Field, key string) *Field {
	t.Helper()
	for _, f := range fields {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("no field %q", key)
	return nil
}

func TestFieldsFor_IncomeStream(t *testing.T) {
	inc := model.SamplePlan().Elements.IncomeStreams[0]
	fields := FieldsFor(inc)

	for _, f := range fields {
		assert.NotEqual(t, "id", f.Key)
	}
	assert.Equal(t, "start_year", fields[0].Key)
	assert.Equal(t, "Start year", fields[0].Title)

	gross := field(t, fields, "gross_amount")
	assert.Equal(t, reflect.Float64, gross.Kind)
	assert.Equal(t, "80000", gross.Value)
	assert.Equal(t, "0.25", field(t, fields, "effective_tax_rate").Value)
	assert.Equal(t, "2025", field(t, fields, "start_year").Value)
}

func TestFieldsFor_BoolAndOptional(t *testing.T) {
	exp := model.RecurringExpense{ID: "rent", StartYear: 2025, EndYear: 2030, InflationAdjusted: true}
	adj := field(t, FieldsFor(exp), "inflation_adjusted")
	assert.Equal(t, reflect.Bool, adj.Kind)
	assert.True(t, adj.Bool)

	sell := 2040
	fields := FieldsFor(model.Asset{ID: "car", PurchaseYear: 2030, SellYear: &sell})
	sy := field(t, fields, "sell_year")
	assert.True(t, sy.Optional)
	assert.Equal(t, reflect.Int, sy.Kind)
	assert.Equal(t, "2040", sy.Value)

	fields = FieldsFor(model.Asset{ID: "car", PurchaseYear: 2030})
	assert.Equal(t, "", field(t, fields, "sell_year").Value)
}

func TestApply(t *testing.T) {
	inc := model.IncomeStream{ID: "job", StartYear: 2025, EndYear: 2030, GrossAmount: 1000}
	fields := FieldsFor(inc)
	field(t, fields, "gross_amount").Value = "90000"
	field(t, fields, "description").Value = "2025"
	field(t, fields, "end_year").Value = " 2040 "

	got, err := Apply(inc, fields)
	require.NoError(t, err)
	out := got.(model.IncomeStream)
	assert.Equal(t, 90000.0, out.GrossAmount)
	assert.Equal(t, "2025", out.Description)
	assert.Equal(t, 2040, out.EndYear)
	assert.Equal(t, "job", out.ID)
}

func TestApply_ClearsSellYear(t *testing.T) {
	sell := 2040
	a := model.Asset{ID: "car", PurchaseYear: 2030, SellYear: &sell, InitialValue: 100}
	fields := FieldsFor(a)
	field(t, fields, "sell_year").Value = ""

	got, err := Apply(a, fields)
	require.NoError(t, err)
	assert.Nil(t, got.(model.Asset).SellYear)
	assert.Equal(t, 2040, sell)
}

func TestApply_Invalid(t *testing.T) {
	inv := model.Investment{ID: "i", StartYear: 2025, EndYear: 2030}
	fields := FieldsFor(inv)

	field(t, fields, "annual_return_rate").Value = "lots"
	_, err := Apply(inv, fields)
	assert.Error(t, err)

	field(t, fields, "annual_return_rate").Value = "0.05"
	field(t, fields, "end_year").Value = "2020"
	_, err = Apply(inv, fields)
	assert.ErrorIs(t, err, model.ErrInvalidElement)
}

func TestFieldValidate(t *testing.T) {
	year := &Field{Title: "Year", Kind: reflect.Int}
	assert.NoError(t, year.Validate("2030"))
	assert.Error(t, year.Validate("soon"))
	assert.Error(t, year.Validate(""))

	opt := &Field{Title: "Sell year", Kind: reflect.Int, Optional: true}
	assert.NoError(t, opt.Validate(""))

	text := &Field{Title: "Description", Kind: reflect.String}
	assert.NoError(t, text.Validate(""))
}

func TestSetupValues_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := SetupValuesFrom(cfg)
	assert.Equal(t, "3", vals.InflationRate)
	assert.Equal(t, "36", vals.HorizonYears)

	vals.Currency = "eur"
	vals.InflationRate = "2.5"
	vals.HorizonYears = "40"
	vals.DefaultPlan = " retirement "
	vals.Theme = "tokyo-night"
	require.NoError(t, vals.ApplyTo(&cfg))

	assert.Equal(t, "EUR", cfg.Display.Currency)
	assert.InDelta(t, 0.025, cfg.Projection.InflationRate, 1e-12)
	assert.Equal(t, 40, cfg.General.HorizonYears)
	assert.Equal(t, "retirement", cfg.General.DefaultPlan)
	assert.Equal(t, "tokyo-night", cfg.Appearance.Theme)

	vals.HorizonYears = "forever"
	assert.Error(t, vals.ApplyTo(&cfg))
}

func TestSetupValidators(t *testing.T) {
	assert.NoError(t, validCurrency("GBP"))
	assert.Error(t, validCurrency("XYZW"))
	assert.NoError(t, validYears("36"))
	assert.Error(t, validYears("0"))
	assert.NoError(t, validPercent("2.5"))
	assert.Error(t, validPercent("two"))
	assert.Error(t, notBlank("name")("  "))
}
