package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatKRW_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"zero", "0", "₩0"},
		{"small", "5", "₩5"},
		{"rounds half up", "999.5", "₩1,000"},
		{"thousands", "1234", "₩1,234"},
		{"millions", "12345678", "₩12,345,678"},
		{"negative", "-250000", "-₩250,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, FormatKRW(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestFormatForeign_Values(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		currency Currency
		expect   string
	}{
		{"zero", "0", USD, "$0.00"},
		{"cents", "9.23", USD, "$9.23"},
		{"thousands", "1234.5", EUR, "€1,234.50"},
		{"rounded", "0.925", USD, "$0.93"},
		{"yen", "1000000", JPY, "¥1,000,000.00"},
		{"negative", "-42.1", INR, "-₹42.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, FormatForeign(decimal.RequireFromString(tt.input), tt.currency))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "-", FormatPercent(decimal.NullDecimal{}))
	assert.Equal(t, "20.00%", FormatPercent(decimal.NewNullDecimal(decimal.NewFromInt(20))))
	assert.Equal(t, "12.35%", FormatPercent(decimal.NewNullDecimal(decimal.RequireFromString("12.345"))))
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "10", FormatQty(decimal.NewFromInt(10)))
	assert.Equal(t, "1,500", FormatQty(decimal.NewFromInt(1500)))
	assert.Equal(t, "2.5", FormatQty(decimal.RequireFromString("2.5")))
}
