package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Preset charge labels offered by the document forms. Free text is allowed too.
const (
	ChargeCreditNote    = "CREDIT NOTE"
	ChargePackingCharge = "PACKING CHARGE"
	ChargeFreightCharge = "FREIGHT CHARGE"
)

// ChargePresets lists the preset charge labels.
var ChargePresets = []string{ChargeCreditNote, ChargePackingCharge, ChargeFreightCharge}

// Charge is a flat amount added to the sales total after discount.
type Charge struct {
	ID          string          `json:"id"`
	Label       string          `json:"customCharge"`
	PriceKRW    decimal.Decimal `json:"chargePriceKRW"`
	PriceGlobal decimal.Decimal `json:"chargePriceGlobal"`
	// IsChecked renders the charge as its own line on the PDF instead of
	// folding it into the grand total.
	IsChecked bool `json:"isChecked"`
	// Basis is the side the price was entered in; a rate change re-converts
	// the other side.
	Basis Basis `json:"basis"`
}

// NewCharge returns an empty charge with a fresh ID.
func NewCharge(label string) Charge {
	return Charge{
		ID:          uuid.NewString(),
		Label:       strings.TrimSpace(label),
		PriceKRW:    decimal.Zero,
		PriceGlobal: decimal.Zero,
		Basis:       BasisKRW,
	}
}

// ChargeEdit is a single edit to a Charge.
type ChargeEdit interface {
	chargeEdit()
}

type (
	SetChargeLabel   struct{ Text string }
	SetChargeKRW     struct{ Value decimal.Decimal }
	SetChargeGlobal  struct{ Value decimal.Decimal }
	SetChargeChecked struct{ Checked bool }
)

func (SetChargeLabel) chargeEdit()   {}
func (SetChargeKRW) chargeEdit()     {}
func (SetChargeGlobal) chargeEdit()  {}
func (SetChargeChecked) chargeEdit() {}

// ApplyChargeEdit applies op, keeping the KRW and foreign prices consistent at
// rate.
func ApplyChargeEdit(c Charge, op ChargeEdit, rate decimal.Decimal) Charge {
	switch op := op.(type) {
	case SetChargeLabel:
		c.Label = op.Text
	case SetChargeKRW:
		c.Basis = BasisKRW
		c.PriceKRW = roundKRW(op.Value)
		c.PriceGlobal = ToForeign(c.PriceKRW, rate)
	case SetChargeGlobal:
		c.Basis = BasisForeign
		c.PriceGlobal = roundForeign(op.Value)
		c.PriceKRW = ToKRW(c.PriceGlobal, rate)
	case SetChargeChecked:
		c.IsChecked = op.Checked
	default:
		panic(fmt.Sprintf("services: unhandled charge edit %T", op))
	}
	return c
}

// ParseChargeEdit maps the wire form of a charge edit onto a ChargeEdit.
func ParseChargeEdit(field, value string) (ChargeEdit, error) {
	switch field {
	case "customCharge":
		return SetChargeLabel{Text: strings.TrimSpace(value)}, nil
	case "isChecked":
		v := strings.ToLower(strings.TrimSpace(value))
		return SetChargeChecked{Checked: v == "true" || v == "1" || v == "on"}, nil
	case "chargePriceKRW", "chargePriceGlobal":
		d, err := ParseAmount(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		if field == "chargePriceKRW" {
			return SetChargeKRW{Value: d}, nil
		}
		return SetChargeGlobal{Value: d}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownField, field)
}

// RepriceCharge re-converts the non-basis price of c after the exchange rate
// changed.
func RepriceCharge(c Charge, rate decimal.Decimal) Charge {
	if c.Basis == BasisForeign {
		c.PriceKRW = ToKRW(c.PriceGlobal, rate)
		return c
	}
	c.PriceGlobal = ToForeign(c.PriceKRW, rate)
	return c
}
