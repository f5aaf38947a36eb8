// Package currency converts between decimal amounts and the minor units
// (pence for GBP) the payment provider's API requires. Amounts cross the
// provider boundary only as minor units; decimals are for display.
package currency

import (
	"fmt"
	"math"
	"strings"
)

// ToMinorUnits converts a decimal amount to the smallest currency unit,
// e.g. 89.00 -> 8900.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts back to a decimal amount for display.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}

// Format renders a decimal amount for user-facing output, e.g. "£89.00".
func Format(amount float64, currency string) string {
	symbol := "£"
	switch strings.ToLower(currency) {
	case "gbp", "":
	case "eur":
		symbol = "€"
	case "usd":
		symbol = "$"
	default:
		symbol = strings.ToUpper(currency) + " "
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
