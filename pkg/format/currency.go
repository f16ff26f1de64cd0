// Package format renders currency and percentage values for display.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return WholeCurrency(amount)
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	return sign + formatted
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}

// Percent returns a whole-number percentage such as "870%". Non-finite
// values, which only occur when monthly costs are zero, render as "∞%",
// "-∞%" or "n/a".
func Percent(value float64) string {
	switch {
	case math.IsNaN(value):
		return "n/a"
	case math.IsInf(value, 1):
		return "∞%"
	case math.IsInf(value, -1):
		return "-∞%"
	}
	return fmt.Sprintf("%.0f%%", value)
}

// WholeCurrency rounds to the nearest whole currency unit and formats it with
// thousands separators and no decimals (e.g., "$18,600").
func WholeCurrency(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "n/a"
	case math.IsInf(amount, 1):
		return "$∞"
	case math.IsInf(amount, -1):
		return "-$∞"
	}
	formatted := Currency(math.Round(amount))
	return strings.TrimSuffix(formatted, ".00")
}
