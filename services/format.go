package services

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// CurrencySuffix follows every formatted amount.
const CurrencySuffix = " kr"

// VATNotice is printed under every total.
const VATNotice = "Alla priser exklusive moms"

// FormatSEK renders amount in whole kronor with a space between thousands,
// e.g. 1234567.5 → "1 234 568 kr". Halves round away from zero, so 0.5 is
// "1 kr" and -0.5 is "-1 kr".
func FormatSEK(amount decimal.Decimal) string {
	return strings.ReplaceAll(humanize.Comma(RoundKronor(amount)), ",", " ") + CurrencySuffix
}

// FormatSEKFloat is FormatSEK for plain float amounts.
func FormatSEKFloat(amount float64) string {
	return FormatSEK(decimal.NewFromFloat(amount))
}

// RoundKronor rounds to the nearest whole krona, halves away from zero.
func RoundKronor(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}

// FormatUnitPrice shows a unit price without trailing zeros: 2280, 3.6.
func FormatUnitPrice(price decimal.Decimal) string {
	return price.String() + CurrencySuffix
}
