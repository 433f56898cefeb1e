package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	QuoteDecimals = 6 // USDC quote amounts cross the API boundary at 10^6
	StockDecimals = 8 // instrument amounts cross the API boundary at 10^8
)

// QuoteToUnits converts a quote-asset decimal string to integer units without float precision loss
func QuoteToUnits(amount string) (uint64, error) {
	return parseWithDecimals(amount, QuoteDecimals)
}

// UnitsToQuote converts quote-asset integer units to a decimal string without float precision loss
func UnitsToQuote(units uint64) string {
	return formatWithDecimals(units, QuoteDecimals)
}

// StockToUnits converts an instrument decimal string to integer units without float precision loss
func StockToUnits(amount string) (uint64, error) {
	return parseWithDecimals(amount, StockDecimals)
}

// UnitsToStock converts instrument integer units to a decimal string without float precision loss
func UnitsToStock(units uint64) string {
	return formatWithDecimals(units, StockDecimals)
}

// ClampUnits caps requested at available. The order API is only ever asked
// for what the wallet can spend; server-side validation still applies.
func ClampUnits(requested, available uint64) uint64 {
	if requested > available {
		return available
	}
	return requested
}

// UnitsString renders integer units as the decimal-string integer the order
// API expects. Never pass floats across that boundary.
func UnitsString(units uint64) string {
	return strconv.FormatUint(units, 10)
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 6) = "24.981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("24.981836", 6) = 24981836
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		// No decimal point - multiply by 10^decimals
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, err
		}
		for i := 0; i < decimals; i++ {
			n *= 10
		}
		return n, nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	// Combine and parse
	combined := whole + frac
	return strconv.ParseUint(combined, 10, 64)
}
