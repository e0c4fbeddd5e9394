package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PKR amount formatting for user-facing strings, matching the en-PK locale:
// "Rs" symbol, comma digit grouping, 2 decimal places for balances/amounts
// and 0 decimal places in print output.

const pkrSymbol = "Rs"

// FormatPKR renders an amount as a PKR currency string with 2 decimal places.
// Example: 1234567.5 -> "Rs 1,234,567.50".
func FormatPKR(amount decimal.Decimal) string {
	return pkrSymbol + " " + FormatAmount(amount, 2)
}

// FormatPKRPrint renders an amount for print templates: 0 decimal places.
// Example: 1234567.5 -> "Rs 1,234,568".
func FormatPKRPrint(amount decimal.Decimal) string {
	return pkrSymbol + " " + FormatAmount(amount, 0)
}

// FormatAmount renders an amount with comma grouping and the given precision,
// without a currency symbol.
func FormatAmount(amount decimal.Decimal, precision int32) string {
	s := amount.StringFixed(precision)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteString(fracPart)
	return b.String()
}
