package helper

import (
	"time"

	"github.com/shopspring/decimal"
)

// Now13 returns a millisecond Unix timestamp (13 digits)
func Now13() int64 {
	return time.Now().UnixNano() / 1e6
}

// NormalizeDouble rounds a number to the given fractional digits, half away from zero
func NormalizeDouble(number float64, digits int64) float64 {
	n, _ := decimal.NewFromFloat(number).Round(int32(digits)).Float64()
	return n
}
