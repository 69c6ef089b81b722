package helper

import (
	"math"
	"strconv"
)

// DollarsToCents converts a decimal amount to the smallest currency unit.
func DollarsToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FloatToAmount renders an amount without trailing zeros, e.g. 37 -> "37".
func FloatToAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
