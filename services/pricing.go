package services

import (
	"github.com/shopspring/decimal"
)

// Totals are the document-level aggregates. They are always derived from the
// rows, discount and charges and never edited directly.
type Totals struct {
	SalesUnDcKRW    decimal.Decimal `json:"totalSalesUnDcKRW"`
	SalesUnDcGlobal decimal.Decimal `json:"totalSalesUnDcGlobal"`
	PurchaseKRW     decimal.Decimal `json:"totalPurchaseKRW"`
	PurchaseGlobal  decimal.Decimal `json:"totalPurchaseGlobal"`
	DiscountKRW     decimal.Decimal `json:"totalDiscountKRW"`
	DiscountGlobal  decimal.Decimal `json:"totalDiscountGlobal"`
	ChargesKRW      decimal.Decimal `json:"totalChargesKRW"`
	ChargesGlobal   decimal.Decimal `json:"totalChargesGlobal"`
	SalesKRW        decimal.Decimal `json:"totalSalesKRW"`
	SalesGlobal     decimal.Decimal `json:"totalSalesGlobal"`

	// Profit is measured in KRW against the currency's reference rate, not the
	// document exchange rate.
	Profit        decimal.Decimal     `json:"totalProfit"`
	ProfitPercent decimal.NullDecimal `json:"totalProfitPercent"`
}

// Input is everything aggregation needs from a document.
type Input struct {
	Items    []LineItem
	Discount DiscountInfo
	Charges  []Charge
	Rate     decimal.Decimal
	Currency Currency
}

// Result is the aggregation output: rows with derived fields populated, the
// synced discount and the totals.
type Result struct {
	Items    []LineItem
	Discount DiscountInfo
	Totals   Totals
}

// Validate checks the preconditions for aggregation.
func (in Input) Validate(rates ReferenceRates) error {
	if len(in.Items) == 0 {
		return ErrNoItems
	}
	if !in.Rate.IsPositive() {
		return ErrMissingRate
	}
	if _, ok := rates.Rate(in.Currency); !ok {
		return ErrUnknownCurrency
	}
	return nil
}

// Aggregate re-derives every row from its purchase price and margin, sums the
// amounts, applies the discount and charges and computes profit. Purchase
// totals are never discounted or charged.
func Aggregate(in Input, rates ReferenceRates) (Result, error) {
	if err := in.Validate(rates); err != nil {
		return Result{}, err
	}
	ref, _ := rates.Rate(in.Currency)

	items := make([]LineItem, len(in.Items))
	var t Totals
	for i, item := range in.Items {
		item = Rederive(item, in.Rate)
		items[i] = item

		t.PurchaseKRW = t.PurchaseKRW.Add(item.PurchaseAmountKRW)
		t.PurchaseGlobal = t.PurchaseGlobal.Add(item.PurchaseAmountGlobal)
		t.SalesUnDcKRW = t.SalesUnDcKRW.Add(item.SalesAmountKRW)
		t.SalesUnDcGlobal = t.SalesUnDcGlobal.Add(item.SalesAmountGlobal)
	}

	discount := ReconcileDiscount(in.Discount, t.SalesUnDcKRW, t.SalesUnDcGlobal)
	if discount.Percent.Valid {
		t.DiscountKRW = discount.KRW
		t.DiscountGlobal = discount.Global
	}
	discountedKRW := t.SalesUnDcKRW.Sub(t.DiscountKRW)
	discountedGlobal := t.SalesUnDcGlobal.Sub(t.DiscountGlobal)

	for _, c := range in.Charges {
		t.ChargesKRW = t.ChargesKRW.Add(c.PriceKRW)
		t.ChargesGlobal = t.ChargesGlobal.Add(c.PriceGlobal)
	}

	t.SalesKRW = discountedKRW.Add(t.ChargesKRW)
	t.SalesGlobal = discountedGlobal.Add(t.ChargesGlobal)

	normalised := t.SalesGlobal.Mul(ref)
	t.Profit = roundKRW(normalised.Sub(t.PurchaseKRW))
	t.ProfitPercent = percentOf(t.Profit, normalised)

	return Result{Items: items, Discount: discount, Totals: t}, nil
}

// PreDiscountSales sums the sales amounts of items as they stand. Callers
// that sync a discount edit pass rows that went through Rederive, so the
// totals match what Aggregate will see.
func PreDiscountSales(items []LineItem) (krw, global decimal.Decimal) {
	for _, item := range items {
		krw = krw.Add(item.SalesAmountKRW)
		global = global.Add(item.SalesAmountGlobal)
	}
	return krw, global
}
