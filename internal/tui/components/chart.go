package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/horizon/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline scaled between the series extremes.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := seriesRange(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		buf.WriteRune(blocks[max(0, min(idx, len(blocks)-1))])
	}
	return style.Render(buf.String())
}

func seriesRange(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// BarChart renders a vertical bar chart of a yearly series. The value axis
// always includes zero; bars below it are drawn in the theme's red.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	lo, hi := seriesRange(values)
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	if hi == lo {
		hi = 1
	}

	top := niceCeil(hi)
	bottom := -niceCeil(-lo)
	span := top - bottom

	yLabels := []string{formatChartLabel(top), formatChartLabel(bottom), "0"}
	yLabelW := 0
	for _, l := range yLabels {
		yLabelW = max(yLabelW, len(l))
	}
	yLabelW++

	chartW := max(width-yLabelW-1, 5)
	values, labels = sampleSeries(values, labels, (chartW+1)/2)
	n := len(values)

	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := max(1, min(6, (chartW-(n-1)*gap)/n))
	axisLen := n*barW + max(0, n-1)*gap

	// Row r covers the value band [bandLow(r), bandLow(r)+step).
	step := span / float64(height)
	zeroRow := int(math.Round(-bottom / step))

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	posStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	negStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := height - 1; row >= 0; row-- {
		bandLow := bottom + float64(row)*step
		bandHigh := bandLow + step

		label := ""
		switch row {
		case height - 1:
			label = formatChartLabel(top)
		case zeroRow:
			label = "0"
		case 0:
			if bottom < 0 {
				label = formatChartLabel(bottom)
			}
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			cell := strings.Repeat(" ", barW)
			style := blank
			switch {
			case v > 0 && bandLow >= 0 && v > bandLow:
				cell = strings.Repeat(fillFor(v, bandLow, bandHigh), barW)
				style = posStyle
			case v < 0 && bandHigh <= 0 && v < bandHigh:
				cell = strings.Repeat("▒", barW)
				style = negStyle
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW)))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n && n > 0 {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(axisLabels(labels, barW, gap, axisLen)))
	}
	return b.String()
}

// fillFor picks a partial block for the top cell of a positive bar.
func fillFor(v, bandLow, bandHigh float64) string {
	if v >= bandHigh {
		return "█"
	}
	blocks := []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	idx := int((v - bandLow) / (bandHigh - bandLow) * float64(len(blocks)))
	return blocks[max(0, min(idx, len(blocks)-1))]
}

// sampleSeries thins a series to at most limit points, keeping the first and last.
func sampleSeries(values []float64, labels []string, limit int) ([]float64, []string) {
	n := len(values)
	if limit < 2 || n <= limit {
		return values, labels
	}
	sampled := make([]float64, limit)
	var sampledLabels []string
	if len(labels) == n {
		sampledLabels = make([]string, limit)
	}
	for i := range sampled {
		src := i * (n - 1) / (limit - 1)
		sampled[i] = values[src]
		if sampledLabels != nil {
			sampledLabels[i] = labels[src]
		}
	}
	return sampled, sampledLabels
}

// axisLabels spreads labels under the bars without overlaps.
func axisLabels(labels []string, barW, gap, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		pos := i * (barW + gap)
		if i == len(labels)-1 && pos+len(lbl) > axisLen {
			pos = axisLen - len(lbl)
		}
		end := pos + len(lbl)
		if pos <= lastEnd || pos < 0 || end > axisLen {
			continue
		}
		copy(buf[pos:end], lbl)
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

// niceCeil rounds v up to 1, 2 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 0
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*exp >= v {
			return m * exp
		}
	}
	return 10 * exp
}

func formatChartLabel(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	var s string
	switch {
	case v >= 1e9:
		s = trimZero(fmt.Sprintf("%.1f", v/1e9)) + "B"
	case v >= 1e6:
		s = trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		s = trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	default:
		s = fmt.Sprintf("%.0f", v)
	}
	return sign + s
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
