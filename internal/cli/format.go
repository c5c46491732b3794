// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type moneyFormat struct {
	symbol string
	scale  int32
}

var money = moneyFormat{symbol: "$"}

var symbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"CHF": "CHF ",
}

// SetCurrency selects the currency label used by the money formatters. With
// cents enabled, amounts are printed to the currency's standard minor unit.
func SetCurrency(code string, cents bool) error {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Errorf("currency %q: %w", code, err)
	}

	f := moneyFormat{symbol: unit.String() + " "}
	if s, ok := symbols[unit.String()]; ok {
		f.symbol = s
	}
	if cents {
		scale, _ := currency.Standard.Rounding(unit)
		f.scale = int32(scale)
	}
	money = f
	return nil
}

// FormatMoney formats an amount with thousands separators.
// e.g., 1234567.891 -> "$1,234,568", -42 -> "-$42"
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(money.scale)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole := FormatNumber(d.Truncate(0).IntPart())
	if money.scale > 0 {
		fixed := d.StringFixed(money.scale)
		whole += fixed[strings.IndexByte(fixed, '.'):]
	}
	return sign + money.symbol + whole
}

// FormatMoneyCompact formats an amount with a magnitude suffix.
// e.g., 1234 -> "$1.2K", 2500000 -> "$2.5M", -950 -> "-$950"
func FormatMoneyCompact(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	var s string
	switch {
	case v >= 1_000_000_000:
		s = fmt.Sprintf("%.1fB", v/1_000_000_000)
	case v >= 1_000_000:
		s = fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		s = fmt.Sprintf("%.1fK", v/1_000)
	default:
		s = strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	if s == "0" {
		sign = ""
	}
	return sign + money.symbol + s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats the change between two amounts with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return FormatMoney(delta)
}

// FormatYearSpan formats an inclusive year range, collapsing single years.
func FormatYearSpan(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
