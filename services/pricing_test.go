package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rate1000 = decimal.NewFromInt(1000)

// pricedItem returns a qty-1 KRW row with the given purchase and sales prices.
func pricedItem(purchase, sales string, rate decimal.Decimal) LineItem {
	return applyAll(NewLineItem(), rate,
		SetQty{Value: dec("1")},
		SetPurchaseKRW{Value: dec(purchase)},
		SetSalesKRW{Value: dec(sales)},
	)
}

func TestAggregate_DiscountScenario(t *testing.T) {
	in := Input{
		Items:    []LineItem{pricedItem("80000", "100000", rate1000)},
		Discount: DiscountInfo{Percent: decimal.NewNullDecimal(dec("10"))},
		Rate:     rate1000,
		Currency: USD,
	}

	res, err := Aggregate(in, DefaultReferenceRates())
	require.NoError(t, err)

	assertDec(t, "100000", res.Totals.SalesUnDcKRW, "totalSalesUnDcKRW")
	assertDec(t, "10000", res.Discount.KRW, "dcKrw")
	assertDec(t, "10000", res.Totals.DiscountKRW, "totalDiscountKRW")
	assertDec(t, "90000", res.Totals.SalesKRW, "totalSalesKRW")
	assertDec(t, "90", res.Totals.SalesGlobal, "totalSalesGlobal")
}

func TestAggregate_ChargeScenario(t *testing.T) {
	charge := ApplyChargeEdit(NewCharge(ChargeFreightCharge), SetChargeKRW{Value: dec("5000")}, rate1000)
	in := Input{
		Items:    []LineItem{pricedItem("80000", "100000", rate1000)},
		Discount: DiscountInfo{Percent: decimal.NewNullDecimal(dec("10"))},
		Charges:  []Charge{charge},
		Rate:     rate1000,
		Currency: USD,
	}

	res, err := Aggregate(in, DefaultReferenceRates())
	require.NoError(t, err)

	assertDec(t, "5000", res.Totals.ChargesKRW, "totalChargesKRW")
	assertDec(t, "95000", res.Totals.SalesKRW, "totalSalesKRW")
	assertDec(t, "95", res.Totals.SalesGlobal, "totalSalesGlobal")

	// Purchase totals pass through untouched.
	assertDec(t, "80000", res.Totals.PurchaseKRW, "totalPurchaseKRW")
	assertDec(t, "80", res.Totals.PurchaseGlobal, "totalPurchaseGlobal")

	// Profit is normalised at the USD reference rate (1400), not the document rate.
	assertDec(t, "53000", res.Totals.Profit, "totalProfit")
	require.True(t, res.Totals.ProfitPercent.Valid)
	assertDec(t, "39.85", res.Totals.ProfitPercent.Decimal, "totalProfitPercent")
}

func TestAggregate_RederivesFromMargin(t *testing.T) {
	item := applyAll(NewLineItem(), rate1300,
		SetQty{Value: dec("10")},
		SetPurchaseKRW{Value: dec("1000")},
		SetMargin{Value: dec("20")},
	)
	// A stale sales price is overwritten by the re-derivation pass.
	item.SalesPriceKRW = dec("1")
	item.SalesAmountKRW = dec("10")

	res, err := Aggregate(Input{Items: []LineItem{item}, Rate: rate1300, Currency: USD}, DefaultReferenceRates())
	require.NoError(t, err)

	assertDec(t, "1200", res.Items[0].SalesPriceKRW, "salesPriceKRW")
	assertDec(t, "12000", res.Totals.SalesKRW, "totalSalesKRW")
	assertDec(t, "9.23", res.Totals.SalesGlobal, "totalSalesGlobal")
}

func TestAggregate_KeepsEnteredSalesPrice(t *testing.T) {
	res, err := Aggregate(Input{
		Items:    []LineItem{pricedItem("1000000", "1234567", rate1000)},
		Rate:     rate1000,
		Currency: USD,
	}, DefaultReferenceRates())
	require.NoError(t, err)

	assertDec(t, "1234567", res.Items[0].SalesPriceKRW, "salesPriceKRW")
	assertDec(t, "1234567", res.Totals.SalesKRW, "totalSalesKRW")
}

func TestAggregate_KeepsEnteredDiscountAmount(t *testing.T) {
	items := []LineItem{pricedItem("0", "30000", rate1000)}
	krw, global := PreDiscountSales(items)
	discount := ApplyDiscountEdit(DiscountInfo{}, SetDiscountKRW{Value: dec("1000")}, krw, global)

	res, err := Aggregate(Input{Items: items, Discount: discount, Rate: rate1000, Currency: USD}, DefaultReferenceRates())
	require.NoError(t, err)

	assertDec(t, "3.33", res.Discount.Percent.Decimal, "dcPercent")
	assertDec(t, "1000", res.Discount.KRW, "dcKrw")
	assertDec(t, "1000", res.Totals.DiscountKRW, "totalDiscountKRW")
	assertDec(t, "29000", res.Totals.SalesKRW, "totalSalesKRW")
}

func TestAggregate_StructuralRowsContributeNothing(t *testing.T) {
	header := ApplyEdit(NewLineItem(), SetItemType{Type: ItemTypeMaker}, rate1000)
	header.SalesAmountKRW = dec("99999")

	res, err := Aggregate(Input{
		Items:    []LineItem{header, pricedItem("500", "1000", rate1000)},
		Rate:     rate1000,
		Currency: EUR,
	}, DefaultReferenceRates())
	require.NoError(t, err)

	assertDec(t, "1000", res.Totals.SalesKRW, "totalSalesKRW")
	assert.True(t, res.Items[0].SalesAmountKRW.IsZero())
}

func TestAggregate_Guards(t *testing.T) {
	rates := DefaultReferenceRates()
	items := []LineItem{pricedItem("1", "2", rate1000)}

	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"no items", Input{Rate: rate1000, Currency: USD}, ErrNoItems},
		{"missing rate", Input{Items: items, Currency: USD}, ErrMissingRate},
		{"unknown currency", Input{Items: items, Rate: rate1000, Currency: "GBP"}, ErrUnknownCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Aggregate(tt.in, rates)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
			assert.Equal(t, Totals{}, res.Totals)
		})
	}
}

func TestAggregate_ZeroSalesLeavesProfitPercentEmpty(t *testing.T) {
	res, err := Aggregate(Input{
		Items:    []LineItem{pricedItem("1000", "0", rate1000)},
		Rate:     rate1000,
		Currency: USD,
	}, DefaultReferenceRates())
	require.NoError(t, err)

	assertDec(t, "-1000", res.Totals.Profit, "totalProfit")
	assert.False(t, res.Totals.ProfitPercent.Valid)
}

func TestPreDiscountSales(t *testing.T) {
	krw, global := PreDiscountSales([]LineItem{
		pricedItem("0", "1000", rate1000),
		pricedItem("0", "2500", rate1000),
	})
	assertDec(t, "3500", krw, "krw")
	assertDec(t, "3.5", global, "global")
}
