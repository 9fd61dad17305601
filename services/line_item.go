package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ItemType classifies a document row. Only ITEM and DASH rows carry prices;
// the others are grouping rows.
type ItemType string

const (
	ItemTypeItem  ItemType = "ITEM"
	ItemTypeMaker ItemType = "MAKER"
	ItemTypeType  ItemType = "TYPE"
	ItemTypeDesc  ItemType = "DESC"
	ItemTypeDash  ItemType = "DASH"
)

// ItemTypes lists every row type in display order.
var ItemTypes = []ItemType{ItemTypeItem, ItemTypeMaker, ItemTypeType, ItemTypeDesc, ItemTypeDash}

// Priced reports whether rows of this type carry price fields.
func (t ItemType) Priced() bool {
	return t == ItemTypeItem || t == ItemTypeDash
}

// ParseItemType validates an item type label.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ItemTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown item type %q", ErrValidation, s)
}

// Basis is the currency side that was entered last on a row. Amounts are
// computed on that side and converted to the other.
type Basis string

const (
	BasisKRW     Basis = "KRW"
	BasisForeign Basis = "FOREIGN"
)

// LineItem is one row of a trading document.
type LineItem struct {
	ID       string   `json:"id"`
	Position int      `json:"position"`
	ItemType ItemType `json:"itemType"`
	Name     string   `json:"name"`
	Unit     string   `json:"unit"`

	Qty decimal.Decimal `json:"qty"`

	PurchasePriceKRW    decimal.Decimal `json:"purchasePriceKRW"`
	PurchasePriceGlobal decimal.Decimal `json:"purchasePriceGlobal"`
	SalesPriceKRW       decimal.Decimal `json:"salesPriceKRW"`
	SalesPriceGlobal    decimal.Decimal `json:"salesPriceGlobal"`

	// Margin is the markup over purchase price in percent. It is empty until
	// set, and when it cannot be computed (zero purchase price).
	Margin decimal.NullDecimal `json:"margin"`
	// MarginDerived is set when Margin was computed from an entered sales
	// price. The sales price then stays as entered and is not re-derived from
	// the rounded margin.
	MarginDerived bool `json:"marginDerived"`

	PurchaseAmountKRW    decimal.Decimal `json:"purchaseAmountKRW"`
	PurchaseAmountGlobal decimal.Decimal `json:"purchaseAmountGlobal"`
	SalesAmountKRW       decimal.Decimal `json:"salesAmountKRW"`
	SalesAmountGlobal    decimal.Decimal `json:"salesAmountGlobal"`

	ItemRemark string `json:"itemRemark"`
	Basis      Basis  `json:"basis"`
}

// IsPriced reports whether the row takes part in pricing. Grouping rows and
// note rows (non-empty remark) do not.
func (li LineItem) IsPriced() bool {
	return li.ItemType.Priced() && strings.TrimSpace(li.ItemRemark) == ""
}

// EditOp is a single field edit on a LineItem. The set of implementations is
// closed; ApplyEdit dispatches over all of them.
type EditOp interface {
	editOp()
}

type (
	SetQty            struct{ Value decimal.Decimal }
	SetPurchaseKRW    struct{ Value decimal.Decimal }
	SetPurchaseGlobal struct{ Value decimal.Decimal }
	SetSalesKRW       struct{ Value decimal.Decimal }
	SetSalesGlobal    struct{ Value decimal.Decimal }
	SetMargin         struct{ Value decimal.Decimal }
	SetItemType       struct{ Type ItemType }
	SetRemark         struct{ Text string }
	SetName           struct{ Text string }
	SetUnit           struct{ Text string }
)

func (SetQty) editOp()            {}
func (SetPurchaseKRW) editOp()    {}
func (SetPurchaseGlobal) editOp() {}
func (SetSalesKRW) editOp()       {}
func (SetSalesGlobal) editOp()    {}
func (SetMargin) editOp()         {}
func (SetItemType) editOp()       {}
func (SetRemark) editOp()         {}
func (SetName) editOp()           {}
func (SetUnit) editOp()           {}

// ApplyEdit returns item with op applied and every dependent field
// recomputed at the document exchange rate.
func ApplyEdit(item LineItem, op EditOp, rate decimal.Decimal) LineItem {
	switch op := op.(type) {
	case SetName:
		item.Name = op.Text
		return item
	case SetUnit:
		item.Unit = op.Text
		return item
	case SetQty:
		item.Qty = op.Value
	case SetItemType:
		item.ItemType = op.Type
	case SetRemark:
		item.ItemRemark = op.Text
	case SetPurchaseKRW:
		if !item.IsPriced() {
			break
		}
		item.Basis = BasisKRW
		item.PurchasePriceKRW = roundKRW(op.Value)
		item.PurchasePriceGlobal = ToForeign(item.PurchasePriceKRW, rate)
		item.MarginDerived = false
		item = salesFromMargin(item, rate)
	case SetPurchaseGlobal:
		if !item.IsPriced() {
			break
		}
		item.Basis = BasisForeign
		item.PurchasePriceGlobal = roundForeign(op.Value)
		item.PurchasePriceKRW = ToKRW(item.PurchasePriceGlobal, rate)
		item.MarginDerived = false
		item = salesFromMargin(item, rate)
	case SetSalesKRW:
		if !item.IsPriced() {
			break
		}
		item.Basis = BasisKRW
		item.SalesPriceKRW = roundKRW(op.Value)
		item.SalesPriceGlobal = ToForeign(item.SalesPriceKRW, rate)
		item.Margin = marginOf(item.SalesPriceKRW, item.PurchasePriceKRW)
		item.MarginDerived = true
	case SetSalesGlobal:
		if !item.IsPriced() {
			break
		}
		item.Basis = BasisForeign
		item.SalesPriceGlobal = roundForeign(op.Value)
		item.SalesPriceKRW = ToKRW(item.SalesPriceGlobal, rate)
		item.Margin = marginOf(item.SalesPriceGlobal, item.PurchasePriceGlobal)
		item.MarginDerived = true
	case SetMargin:
		if !item.IsPriced() {
			break
		}
		item.Margin = decimal.NewNullDecimal(roundPercent(op.Value))
		item.MarginDerived = false
		item = salesFromMargin(item, rate)
	default:
		panic(fmt.Sprintf("services: unhandled edit op %T", op))
	}

	if !item.IsPriced() {
		return clearPricing(item)
	}
	return computeAmounts(item, rate)
}

// Reprice re-converts the non-basis side of a row after the exchange rate
// changed, then recomputes its amounts.
func Reprice(item LineItem, rate decimal.Decimal) LineItem {
	if !item.IsPriced() {
		return clearPricing(item)
	}
	if item.Basis == BasisForeign {
		item.PurchasePriceKRW = ToKRW(item.PurchasePriceGlobal, rate)
		item.SalesPriceKRW = ToKRW(item.SalesPriceGlobal, rate)
	} else {
		item.PurchasePriceGlobal = ToForeign(item.PurchasePriceKRW, rate)
		item.SalesPriceGlobal = ToForeign(item.SalesPriceKRW, rate)
	}
	return computeAmounts(item, rate)
}

// Rederive recomputes the sales prices of a row from its purchase price and
// margin, then its amounts. Rows without a margin, and rows whose margin was
// derived from an entered sales price, keep their sales prices.
func Rederive(item LineItem, rate decimal.Decimal) LineItem {
	if !item.IsPriced() {
		return clearPricing(item)
	}
	if item.MarginDerived {
		return computeAmounts(item, rate)
	}
	return computeAmounts(salesFromMargin(item, rate), rate)
}

// salesFromMargin prices the sales side from the KRW purchase price whatever
// the basis: salesPriceKRW = round(purchasePriceKRW × (1 + margin/100)).
func salesFromMargin(item LineItem, rate decimal.Decimal) LineItem {
	if !item.Margin.Valid {
		return item
	}
	item.SalesPriceKRW = roundKRW(applyPercent(item.PurchasePriceKRW, item.Margin.Decimal))
	item.SalesPriceGlobal = ToForeign(item.SalesPriceKRW, rate)
	return item
}

func marginOf(sales, purchase decimal.Decimal) decimal.NullDecimal {
	return percentOf(sales.Sub(purchase), purchase)
}

// computeAmounts sets amount = round(price × qty) on the basis side and
// converts those amounts to the other side. The price × qty identity therefore
// holds exactly on the side the row was entered in; the other side can differ
// from its own price × qty by conversion rounding (0.92 × 10 at 1300 KRW gives
// 9.23, not 9.20).
func computeAmounts(item LineItem, rate decimal.Decimal) LineItem {
	if item.Basis == BasisForeign {
		item.PurchaseAmountGlobal = roundForeign(item.PurchasePriceGlobal.Mul(item.Qty))
		item.SalesAmountGlobal = roundForeign(item.SalesPriceGlobal.Mul(item.Qty))
		item.PurchaseAmountKRW = ToKRW(item.PurchaseAmountGlobal, rate)
		item.SalesAmountKRW = ToKRW(item.SalesAmountGlobal, rate)
		return item
	}
	item.PurchaseAmountKRW = roundKRW(item.PurchasePriceKRW.Mul(item.Qty))
	item.SalesAmountKRW = roundKRW(item.SalesPriceKRW.Mul(item.Qty))
	item.PurchaseAmountGlobal = ToForeign(item.PurchaseAmountKRW, rate)
	item.SalesAmountGlobal = ToForeign(item.SalesAmountKRW, rate)
	return item
}

func clearPricing(item LineItem) LineItem {
	item.PurchasePriceKRW = decimal.Zero
	item.PurchasePriceGlobal = decimal.Zero
	item.SalesPriceKRW = decimal.Zero
	item.SalesPriceGlobal = decimal.Zero
	item.Margin = decimal.NewNullDecimal(decimal.Zero)
	item.MarginDerived = false
	item.PurchaseAmountKRW = decimal.Zero
	item.PurchaseAmountGlobal = decimal.Zero
	item.SalesAmountKRW = decimal.Zero
	item.SalesAmountGlobal = decimal.Zero
	return item
}

// ParseEditOp maps the wire form of a row edit (field name and raw input) onto
// an EditOp. Empty numeric input counts as zero.
func ParseEditOp(field, value string) (EditOp, error) {
	switch field {
	case "name":
		return SetName{Text: strings.TrimSpace(value)}, nil
	case "unit":
		return SetUnit{Text: strings.TrimSpace(value)}, nil
	case "itemRemark":
		return SetRemark{Text: strings.TrimSpace(value)}, nil
	case "itemType":
		t, err := ParseItemType(value)
		if err != nil {
			return nil, err
		}
		return SetItemType{Type: t}, nil
	}

	d, err := ParseAmount(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	switch field {
	case "qty":
		if d.IsNegative() {
			return nil, fmt.Errorf("%w: qty must not be negative", ErrValidation)
		}
		return SetQty{Value: d}, nil
	case "purchasePriceKRW":
		return SetPurchaseKRW{Value: d}, nil
	case "purchasePriceGlobal":
		return SetPurchaseGlobal{Value: d}, nil
	case "salesPriceKRW":
		return SetSalesKRW{Value: d}, nil
	case "salesPriceGlobal":
		return SetSalesGlobal{Value: d}, nil
	case "margin":
		return SetMargin{Value: d}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownField, field)
}

// ParseAmount parses user-entered numeric input. Thousands separators are
// accepted; empty input is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrValidation, s)
	}
	return d, nil
}
