// Package services holds the pricing engine shared by every trading document
// (invoice, offer, logistics packing list, complex inquiry) together with the
// persistence and export code built on top of it.
package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Currency is the foreign (non-KRW) currency of a document.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	INR Currency = "INR"
	JPY Currency = "JPY"
)

// SupportedCurrencies lists the foreign currencies a document may carry.
var SupportedCurrencies = []Currency{USD, EUR, INR, JPY}

// ReferenceRates maps a currency to the fixed KRW rate used to normalise
// profit. It is deliberately separate from a document's editable exchange rate.
type ReferenceRates map[Currency]decimal.Decimal

// DefaultReferenceRates are used when the configuration does not override them.
func DefaultReferenceRates() ReferenceRates {
	return ReferenceRates{
		USD: decimal.NewFromInt(1400),
		EUR: decimal.NewFromInt(1500),
		INR: decimal.NewFromInt(17),
		JPY: decimal.RequireFromString("9.5"),
	}
}

// Rate returns the reference rate for c, or false if none is configured.
func (r ReferenceRates) Rate(c Currency) (decimal.Decimal, bool) {
	rate, ok := r[c]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}

// ParseCurrency validates a currency label. The label must be a valid ISO 4217
// code and one of the supported document currencies.
func ParseCurrency(s string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if _, err := currency.ParseISO(code); err != nil {
		return "", fmt.Errorf("%w: %q is not an ISO 4217 code", ErrUnknownCurrency, s)
	}
	for _, c := range SupportedCurrencies {
		if string(c) == code {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s is not supported", ErrUnknownCurrency, code)
}

// Rounding table. KRW has no decimal subunit; foreign currencies and
// percentages keep two decimals.
const (
	krwPlaces     int32 = 0
	foreignPlaces int32 = 2
	percentPlaces int32 = 2
)

var hundred = decimal.NewFromInt(100)

func roundKRW(d decimal.Decimal) decimal.Decimal     { return d.Round(krwPlaces) }
func roundForeign(d decimal.Decimal) decimal.Decimal { return d.Round(foreignPlaces) }
func roundPercent(d decimal.Decimal) decimal.Decimal { return d.Round(percentPlaces) }

// ToForeign converts a KRW value into the foreign currency at rate (KRW per
// one foreign unit). A non-positive rate yields zero.
func ToForeign(krw, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return roundForeign(krw.Div(rate))
}

// ToKRW converts a foreign-currency value into KRW at rate.
func ToKRW(foreign, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return roundKRW(foreign.Mul(rate))
}

// applyPercent returns base × (1 + pct/100).
func applyPercent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Add(pct.Div(hundred)))
}

// percentOf returns round2(part / whole × 100), or an empty value when whole
// is zero.
func percentOf(part, whole decimal.Decimal) decimal.NullDecimal {
	if whole.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(roundPercent(part.Div(whole).Mul(hundred)))
}
