package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency Currency
		expect   string
	}{
		{"zero", "0", USD, "US Dollars Zero Only"},
		{"cents only", "0.05", USD, "US Dollars Zero and Cents Five Only"},
		{"simple", "9.23", USD, "US Dollars Nine and Cents Twenty Three Only"},
		{"thousands", "1234.50", USD, "US Dollars One Thousand Two Hundred and Thirty Four and Cents Fifty Only"},
		{"millions", "2500000", EUR, "Euros Two Million Five Hundred Thousand Only"},
		{"rupees", "115", INR, "Indian Rupees One Hundred and Fifteen Only"},
		{"negative", "-12", JPY, "Negative Japanese Yen Twelve Only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, AmountToWords(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestKRWToWords(t *testing.T) {
	assert.Equal(t, "Korean Won Ninety Five Thousand Only", KRWToWords(decimal.NewFromInt(95000)))
	assert.Equal(t, "Korean Won One Million Two Hundred Thousand Only", KRWToWords(decimal.NewFromInt(1200000)))
	assert.Equal(t, "Korean Won Zero Only", KRWToWords(decimal.Zero))
}
