// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/streaming-roi/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for display and logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundHalfUp rounds to the nearest whole number with halves going toward
// positive infinity, so RoundHalfUp(-2.5) is -2. NaN and infinities are
// returned unchanged.
func RoundHalfUp(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	r := math.Floor(val)
	if val-r >= 0.5 {
		r++
	}
	return r
}

// FloorToInt floors val and converts it to an int. The conversion saturates:
// NaN becomes 0 and values beyond the int range clamp to math.MaxInt or
// math.MinInt.
func FloorToInt(val float64) int {
	f := math.Floor(val)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
