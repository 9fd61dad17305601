package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var currencySymbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	INR: "₹",
	JPY: "¥",
}

// Symbol returns the display symbol of c, or its code when there is none.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return string(c)
}

// FormatKRW formats a KRW amount as a whole number with thousands separators
// (e.g., ₩1,234,567).
func FormatKRW(amount decimal.Decimal) string {
	r := roundKRW(amount)
	result := "₩" + printer.Sprintf("%d", r.Abs().IntPart())
	if r.IsNegative() {
		result = "-" + result
	}
	return result
}

// FormatForeign formats a foreign amount with two decimals and the symbol of
// c (e.g., $1,234.50).
func FormatForeign(amount decimal.Decimal, c Currency) string {
	r := roundForeign(amount)
	result := c.Symbol() + groupDecimal(r.Abs(), foreignPlaces)
	if r.IsNegative() {
		result = "-" + result
	}
	return result
}

// FormatPercent formats a nullable percentage; an empty value renders as "-".
func FormatPercent(p decimal.NullDecimal) string {
	if !p.Valid {
		return "-"
	}
	return roundPercent(p.Decimal).StringFixed(percentPlaces) + "%"
}

// FormatQty formats a quantity without trailing zeros.
func FormatQty(q decimal.Decimal) string {
	if q.Equal(q.Truncate(0)) {
		return printer.Sprintf("%d", q.IntPart())
	}
	return groupDecimal(q, 3)
}

// groupDecimal applies thousands grouping to the integer part of a
// non-negative value and keeps places fraction digits.
func groupDecimal(d decimal.Decimal, places int32) string {
	fixed := d.StringFixed(places)
	intPart, frac, _ := strings.Cut(fixed, ".")
	grouped := printer.Sprintf("%d", decimal.RequireFromString(intPart).IntPart())
	if frac == "" {
		return grouped
	}
	if places == 3 {
		frac = strings.TrimRight(frac, "0")
	}
	return grouped + "." + frac
}
