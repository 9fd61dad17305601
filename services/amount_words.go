package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencyNames = map[Currency][2]string{
	USD: {"US Dollars", "Cents"},
	EUR: {"Euros", "Cents"},
	INR: {"Indian Rupees", "Paise"},
	JPY: {"Japanese Yen", "Sen"},
}

// AmountToWords spells out a foreign amount for the grand total line of an
// exported document.
// Example: 1234.50 USD → "US Dollars One Thousand Two Hundred and Thirty Four and Cents Fifty Only"
func AmountToWords(amount decimal.Decimal, c Currency) string {
	if amount.IsNegative() {
		return "Negative " + AmountToWords(amount.Neg(), c)
	}
	names, ok := currencyNames[c]
	if !ok {
		names = [2]string{string(c), "Cents"}
	}

	r := roundForeign(amount)
	whole := r.IntPart()
	cents := r.Sub(decimal.NewFromInt(whole)).Mul(hundred).IntPart()

	words := convertToWords(whole)
	if words == "" {
		words = "Zero"
	}
	result := names[0] + " " + words
	if cents > 0 {
		result += " and " + names[1] + " " + convertUnder100(cents)
	}
	return result + " Only"
}

// KRWToWords spells out a KRW amount.
// Example: 95000 → "Korean Won Ninety Five Thousand Only"
func KRWToWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "Negative " + KRWToWords(amount.Neg())
	}
	words := convertToWords(roundKRW(amount).IntPart())
	if words == "" {
		words = "Zero"
	}
	return "Korean Won " + words + " Only"
}

var scales = []struct {
	value int64
	name  string
}{
	{1_000_000_000_000, "Trillion"},
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
}

func convertToWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string
	for _, s := range scales {
		if n >= s.value {
			parts = append(parts, convertUnder1000(n/s.value)+" "+s.name)
			n %= s.value
		}
	}

	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}

	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+convertUnder100(n))
		} else {
			parts = append(parts, convertUnder100(n))
		}
	}

	return strings.Join(parts, " ")
}

func convertUnder1000(n int64) string {
	if n < 100 {
		return convertUnder100(n)
	}
	result := ones[n/100] + " Hundred"
	if n%100 != 0 {
		result += " " + convertUnder100(n%100)
	}
	return result
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
