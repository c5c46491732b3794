package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/horizon/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup: short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("padding line %d has no styling: %q", i, lines[i])
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Net worth", Value: "$1.2M", Tone: TonePositive},
		{Label: "Cash flow", Value: "-$3K", Tone: ToneNegative},
		{Label: "Debt free", Value: "2031"},
	}, 61)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 61 {
			t.Errorf("line %d width = %d, want 61", i, w)
		}
	}
}

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	if got[0] != 4 || got[1] != 3 || got[2] != 3 {
		t.Errorf("LayoutRow(10, 3) = %v", got)
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestToneOf(t *testing.T) {
	if ToneOf(5) != TonePositive || ToneOf(-5) != ToneNegative || ToneOf(0) != ToneNeutral {
		t.Error("unexpected tone mapping")
	}
}

func TestBarChart_SignedSeries(t *testing.T) {
	theme.SetActive("terminal")
	values := []float64{-20000, -5000, 10000, 40000, 80000}
	labels := []string{"2025", "2026", "2027", "2028", "2029"}

	plain := BarChart(values, labels, theme.Active.Blue, 60, 8)

	if !strings.Contains(plain, "▒") {
		t.Error("negative bars should be drawn")
	}
	if !strings.Contains(plain, "█") {
		t.Error("positive bars should be drawn")
	}
	if !strings.Contains(plain, "2025") || !strings.Contains(plain, "2029") {
		t.Error("first and last year labels should be present")
	}
	if !strings.Contains(plain, "100k") || !strings.Contains(plain, "-20k") {
		t.Errorf("axis should span -20k to 100k:\n%s", plain)
	}
}

func TestBarChart_NarrowFallsBackToSparkline(t *testing.T) {
	out := BarChart([]float64{1, 2, 3}, nil, theme.Active.Blue, 10, 8)
	if strings.Contains(out, "\n") {
		t.Errorf("narrow chart should be a single sparkline line: %q", out)
	}
}

func TestSampleSeries(t *testing.T) {
	values := make([]float64, 36)
	labels := make([]string, 36)
	for i := range values {
		values[i] = float64(i)
		labels[i] = string(rune('a' + i%26))
	}
	got, gotLabels := sampleSeries(values, labels, 10)
	if len(got) != 10 || len(gotLabels) != 10 {
		t.Fatalf("sampled to %d points", len(got))
	}
	if got[0] != 0 || got[9] != 35 {
		t.Errorf("sampling must keep the endpoints: %v", got)
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		500:       "500",
		20000:     "20k",
		1500000:   "1.5M",
		-20000:    "-20k",
		2e9:       "2B",
		125000000: "125M",
	}
	for in, want := range tests {
		if got := formatChartLabel(in); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestNiceCeil(t *testing.T) {
	tests := map[float64]float64{80000: 100000, 15000: 20000, 3: 5, 1: 1, 0: 0}
	for in, want := range tests {
		if got := niceCeil(in); got != want {
			t.Errorf("niceCeil(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('e') != 2 {
		t.Errorf("'e' should select Elements")
	}
	if TabIdxByKey('z') != -1 {
		t.Errorf("'z' should not select a tab")
	}
	for i, tab := range Tabs {
		if TabVisualWidth(tab, true) != len(tab.Name)+2 {
			t.Errorf("tab %d active width = %d", i, TabVisualWidth(tab, true))
		}
		if TabVisualWidth(tab, false) != len(tab.Name)+2 {
			t.Errorf("tab %d inactive width = %d", i, TabVisualWidth(tab, false))
		}
	}
}

func TestRenderStatusBarWidth(t *testing.T) {
	bar := RenderStatusBar(80, "", "sample 2025-2060", false)
	if w := lipgloss.Width(bar); w != 80 {
		t.Errorf("status bar width = %d, want 80", w)
	}
}
