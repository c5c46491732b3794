package planfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/horizon/internal/model"
)

const doc = `
name = "household"
start_year = 2025
end_year = 2030

[[elements.income_stream]]
id = "salary"
start_year = 2025
end_year = 2055
gross_amount = 80000
annual_growth_rate = 0.03
effective_tax_rate = 0.25

[[elements.asset]]
id = "house"
purchase_year = 2026
sell_year = 2029
initial_value = 250000
annual_appreciation_rate = 0.03
`

func TestParse(t *testing.T) {
	plan, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "household", plan.Name)
	assert.Equal(t, 6, plan.Years())
	assert.Equal(t, model.DefaultInflationRate, plan.InflationRate)
	require.Len(t, plan.Elements.IncomeStreams, 1)
	assert.Equal(t, 80000.0, plan.Elements.IncomeStreams[0].GrossAmount)
	require.Len(t, plan.Elements.Assets, 1)
	require.NotNil(t, plan.Elements.Assets[0].SellYear)
	assert.Equal(t, 2029, *plan.Elements.Assets[0].SellYear)
}

func TestParse_ExplicitZeroInflation(t *testing.T) {
	plan, err := Parse([]byte("start_year = 2025\nend_year = 2026\ninflation_rate = 0.0\n"))
	require.NoError(t, err)
	assert.Zero(t, plan.InflationRate)
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := Parse([]byte("start_year = 2025\nend_year = 2026\n\n[[elements.pension]]\nid = \"p\"\n"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParse_UnknownField(t *testing.T) {
	misspelled := "start_year = 2025\nend_year = 2026\n\n[[elements.income_stream]]\nid = \"salary\"\nstart_year = 2025\nend_year = 2026\ngros_amount = 80000\n"
	_, err := Parse([]byte(misspelled))
	require.ErrorIs(t, err, ErrUnknownField)
	assert.Contains(t, err.Error(), "gros_amount")

	_, err = Parse([]byte("start_year = 2025\nend_year = 2026\ninflaton_rate = 0.02\n"))
	require.ErrorIs(t, err, ErrUnknownField)
	assert.Contains(t, err.Error(), "inflaton_rate")
}

func TestParse_InvalidElement(t *testing.T) {
	bad := "start_year = 2025\nend_year = 2026\n\n[[elements.investment]]\nid = \"i\"\nstart_year = 2030\nend_year = 2020\n"
	_, err := Parse([]byte(bad))
	assert.ErrorIs(t, err, model.ErrInvalidElement)

	dup := "start_year = 2025\nend_year = 2026\n\n[[elements.debt]]\nid = \"d\"\n\n[[elements.debt]]\nid = \"d\"\n"
	_, err = Parse([]byte(dup))
	assert.ErrorIs(t, err, model.ErrDuplicateID)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("start_year = "))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnknownKind))
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans", "sample.toml")
	want := model.SamplePlan()

	require.NoError(t, WriteFile(path, want))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadFile_NameFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retirement.toml")
	require.NoError(t, os.WriteFile(path, []byte("start_year = 2025\nend_year = 2026\n"), 0o600))

	plan, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "retirement", plan.Name)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.toml", "a.toml", ".hidden.toml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "c.toml"), []byte("x"), 0o600))

	files, err := ScanDir(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestScanDir_Missing(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "absent"))
	assert.NoError(t, err)
	assert.Nil(t, files)
}

func TestStat_ChangesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	require.NoError(t, WriteFile(path, model.Plan{StartYear: 2025, EndYear: 2026}))
	before, err := Stat(path)
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, model.SamplePlan()))
	after, err := Stat(path)
	require.NoError(t, err)

	assert.NotEqual(t, before.Size, after.Size)
}
