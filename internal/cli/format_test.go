package cli

import (
	"strings"
	"testing"
)

func withCurrency(t *testing.T, code string, cents bool) {
	t.Helper()
	prev := money
	if err := SetCurrency(code, cents); err != nil {
		t.Fatalf("SetCurrency(%q): %v", code, err)
	}
	t.Cleanup(func() { money = prev })
}

func TestFormatMoney(t *testing.T) {
	withCurrency(t, "USD", false)

	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{42, "$42"},
		{1234567.891, "$1,234,568"},
		{-27600, "-$27,600"},
		{-0.4, "$0"},
		{999.5, "$1,000"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney_Cents(t *testing.T) {
	withCurrency(t, "EUR", true)
	if got := FormatMoney(1234.5); got != "€1,234.50" {
		t.Errorf("got %q, want €1,234.50", got)
	}

	withCurrency(t, "JPY", true)
	if got := FormatMoney(1234.5); got != "¥1,235" {
		t.Errorf("got %q, want ¥1,235", got)
	}

	withCurrency(t, "SEK", false)
	if got := FormatMoney(10); got != "SEK 10" {
		t.Errorf("got %q, want SEK 10", got)
	}
}

func TestSetCurrency_Invalid(t *testing.T) {
	prev := money
	defer func() { money = prev }()

	if err := SetCurrency("dollars", false); err == nil {
		t.Error("expected error for invalid code")
	}
	if money != prev {
		t.Error("failed SetCurrency changed the formatter")
	}
}

func TestFormatMoneyCompact(t *testing.T) {
	withCurrency(t, "USD", false)

	tests := []struct {
		in   float64
		want string
	}{
		{950, "$950"},
		{1234, "$1.2K"},
		{2_500_000, "$2.5M"},
		{-3_100_000_000, "-$3.1B"},
		{-0.2, "$0"},
	}
	for _, tt := range tests {
		if got := FormatMoneyCompact(tt.in); got != tt.want {
			t.Errorf("FormatMoneyCompact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	withCurrency(t, "USD", false)
	if got := FormatDelta(1500, 1000); got != "+$500" {
		t.Errorf("got %q", got)
	}
	if got := FormatDelta(1000, 1500); got != "-$500" {
		t.Errorf("got %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	for in, want := range map[int64]string{0: "0", 999: "999", 1000: "1,000", -1234567: "-1,234,567"} {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercentAndSpan(t *testing.T) {
	if got := FormatPercent(0.035); got != "3.5%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatYearSpan(2025, 2025); got != "2025" {
		t.Errorf("single year = %q", got)
	}
	if got := FormatYearSpan(2025, 2030); got != "2025-2030" {
		t.Errorf("span = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{-10, 0, 10})
	if got != "▁▄█" {
		t.Errorf("sparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty series should render nothing")
	}
	if flat := RenderSparkline([]float64{5, 5}); flat != "▁▁" {
		t.Errorf("flat sparkline = %q", flat)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Years",
		Headers: []string{"Year", "Net"},
		Rows:    [][]string{{"2025", "$60,000"}, {"---"}, {"Total", "€1"}},
	})
	for _, want := range []string{"Years", "Year", "2025", "$60,000", "Total", "├"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderBarChart(t *testing.T) {
	withCurrency(t, "USD", false)
	out := RenderBarChart([]string{"2025", "2026"}, []float64{100, -50}, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if strings.Count(lines[0], "█") != 10 || strings.Count(lines[1], "▒") != 5 {
		t.Errorf("bars wrong:\n%s", out)
	}
}
