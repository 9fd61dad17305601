package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscountInfo is a document-level discount expressed three ways. An edit to
// one field derives the other two against the pre-discount sales totals of
// the moment, recorded in BaseKRW and BaseGlobal. While those totals stay the
// same the amounts are applied as stored; once they change, Percent is
// authoritative and both amounts are re-derived from it.
type DiscountInfo struct {
	Percent decimal.NullDecimal `json:"dcPercent"`
	KRW     decimal.Decimal     `json:"dcKrw"`
	Global  decimal.Decimal     `json:"dcGlobal"`

	BaseKRW    decimal.Decimal `json:"dcBaseKRW"`
	BaseGlobal decimal.Decimal `json:"dcBaseGlobal"`
}

// DiscountEdit is a single edit to one of the three discount fields.
type DiscountEdit interface {
	discountEdit()
}

type (
	SetDiscountPercent struct{ Value decimal.Decimal }
	SetDiscountKRW     struct{ Value decimal.Decimal }
	SetDiscountGlobal  struct{ Value decimal.Decimal }
)

func (SetDiscountPercent) discountEdit() {}
func (SetDiscountKRW) discountEdit()     {}
func (SetDiscountGlobal) discountEdit()  {}

// ApplyDiscountEdit applies op and recomputes the other two fields relative to
// the pre-discount sales totals.
func ApplyDiscountEdit(info DiscountInfo, op DiscountEdit, preKRW, preGlobal decimal.Decimal) DiscountInfo {
	switch op := op.(type) {
	case SetDiscountPercent:
		info.Percent = decimal.NewNullDecimal(roundPercent(op.Value))
		return SyncDiscount(info, preKRW, preGlobal)
	case SetDiscountKRW:
		info.Percent = percentOf(op.Value, preKRW)
		if !info.Percent.Valid {
			info.KRW = roundKRW(op.Value)
			info.Global = decimal.Zero
			return withBase(info, preKRW, preGlobal)
		}
		info = SyncDiscount(info, preKRW, preGlobal)
		info.KRW = roundKRW(op.Value)
		return info
	case SetDiscountGlobal:
		info.Percent = percentOf(op.Value, preGlobal)
		if !info.Percent.Valid {
			info.Global = roundForeign(op.Value)
			info.KRW = decimal.Zero
			return withBase(info, preKRW, preGlobal)
		}
		info = SyncDiscount(info, preKRW, preGlobal)
		info.Global = roundForeign(op.Value)
		return info
	default:
		panic(fmt.Sprintf("services: unhandled discount edit %T", op))
	}
}

// SyncDiscount keeps the percent fixed and re-derives both amounts. An empty
// percent leaves the amounts untouched.
func SyncDiscount(info DiscountInfo, preKRW, preGlobal decimal.Decimal) DiscountInfo {
	if !info.Percent.Valid {
		return info
	}
	pct := info.Percent.Decimal.Div(hundred)
	info.KRW = roundKRW(preKRW.Mul(pct))
	info.Global = roundForeign(preGlobal.Mul(pct))
	return withBase(info, preKRW, preGlobal)
}

// ReconcileDiscount returns info unchanged when it was last synced against
// the same pre-discount totals, so an entered amount survives recalculation.
// Otherwise it re-derives both amounts from the percent.
func ReconcileDiscount(info DiscountInfo, preKRW, preGlobal decimal.Decimal) DiscountInfo {
	if info.BaseKRW.Equal(preKRW) && info.BaseGlobal.Equal(preGlobal) {
		return info
	}
	return SyncDiscount(info, preKRW, preGlobal)
}

func withBase(info DiscountInfo, preKRW, preGlobal decimal.Decimal) DiscountInfo {
	info.BaseKRW = preKRW
	info.BaseGlobal = preGlobal
	return info
}

// ParseDiscountEdit maps the wire form of a discount edit onto a DiscountEdit.
func ParseDiscountEdit(field, value string) (DiscountEdit, error) {
	d, err := ParseAmount(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", ErrValidation)
	}
	switch field {
	case "dcPercent":
		return SetDiscountPercent{Value: d}, nil
	case "dcKrw":
		return SetDiscountKRW{Value: d}, nil
	case "dcGlobal":
		return SetDiscountGlobal{Value: d}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownField, field)
}
