package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewLineItem returns a zero-priced ITEM row with a fresh ID. Its margin is
// empty until the user sets one.
func NewLineItem() LineItem {
	return LineItem{
		ID:                   uuid.NewString(),
		ItemType:             ItemTypeItem,
		Qty:                  decimal.Zero,
		PurchasePriceKRW:     decimal.Zero,
		PurchasePriceGlobal:  decimal.Zero,
		SalesPriceKRW:        decimal.Zero,
		SalesPriceGlobal:     decimal.Zero,
		PurchaseAmountKRW:    decimal.Zero,
		PurchaseAmountGlobal: decimal.Zero,
		SalesAmountKRW:       decimal.Zero,
		SalesAmountGlobal:    decimal.Zero,
		Basis:                BasisKRW,
	}
}

// InsertAt returns a copy of rows with row inserted at the 1-based position.
// Out-of-range positions append.
func InsertAt[R any](rows []R, row R, position int) []R {
	idx := position - 1
	if idx < 0 || idx > len(rows) {
		idx = len(rows)
	}
	out := make([]R, 0, len(rows)+1)
	out = append(out, rows[:idx]...)
	out = append(out, row)
	out = append(out, rows[idx:]...)
	return out
}

// RemoveAt returns a copy of rows without the row at the 1-based position.
func RemoveAt[R any](rows []R, position int) ([]R, error) {
	idx := position - 1
	if idx < 0 || idx >= len(rows) {
		return nil, ErrRowNotFound
	}
	out := make([]R, 0, len(rows)-1)
	out = append(out, rows[:idx]...)
	return append(out, rows[idx+1:]...), nil
}

// Move returns a copy of rows with the row at from moved to to (both 1-based).
// A target beyond the end moves the row last.
func Move[R any](rows []R, from, to int) ([]R, error) {
	row, err := at(rows, from)
	if err != nil {
		return nil, err
	}
	rest, err := RemoveAt(rows, from)
	if err != nil {
		return nil, err
	}
	if to < 1 {
		to = 1
	}
	return InsertAt(rest, row, to), nil
}

func at[R any](rows []R, position int) (R, error) {
	var zero R
	if position < 1 || position > len(rows) {
		return zero, ErrRowNotFound
	}
	return rows[position-1], nil
}

// Renumber assigns contiguous 1-based positions to items in slice order.
func Renumber(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		item.Position = i + 1
		out[i] = item
	}
	return out
}
