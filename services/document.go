package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DocumentKind is the type of trading document. Every kind is priced by the
// same engine; they differ in title, numbering and the extra row columns they
// carry.
type DocumentKind string

const (
	KindInvoice        DocumentKind = "INVOICE"
	KindOffer          DocumentKind = "OFFER"
	KindLogistics      DocumentKind = "LOGISTICS"
	KindComplexInquiry DocumentKind = "COMPLEX_INQUIRY"
)

// DocumentKinds lists every kind in menu order.
var DocumentKinds = []DocumentKind{KindInvoice, KindOffer, KindLogistics, KindComplexInquiry}

type kindInfo struct {
	title   string
	prefix  string
	packing bool
	inquiry bool
}

var kindTable = map[DocumentKind]kindInfo{
	KindInvoice:        {title: "COMMERCIAL INVOICE", prefix: "INV"},
	KindOffer:          {title: "QUOTATION", prefix: "OFF"},
	KindLogistics:      {title: "PACKING LIST", prefix: "LOG", packing: true},
	KindComplexInquiry: {title: "INQUIRY", prefix: "CIQ", inquiry: true},
}

// ParseDocumentKind validates a kind label.
func ParseDocumentKind(s string) (DocumentKind, error) {
	k := DocumentKind(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := kindTable[k]; !ok {
		return "", fmt.Errorf("%w: unknown document kind %q", ErrValidation, s)
	}
	return k, nil
}

// Title is the heading printed on exported documents.
func (k DocumentKind) Title() string { return kindTable[k].title }

// Prefix is the document number prefix.
func (k DocumentKind) Prefix() string { return kindTable[k].prefix }

// HasPacking reports whether rows of this kind carry packing details.
func (k DocumentKind) HasPacking() bool { return kindTable[k].packing }

// HasInquiry reports whether rows of this kind carry supplier details.
func (k DocumentKind) HasInquiry() bool { return kindTable[k].inquiry }

// PackingDetails are the logistics columns of a packing list row.
type PackingDetails struct {
	Packages    int             `json:"packages"`
	NetWeight   decimal.Decimal `json:"netWeight"`
	GrossWeight decimal.Decimal `json:"grossWeight"`
	Measurement decimal.Decimal `json:"measurement"`
}

// InquiryDetails are the sourcing columns of a complex inquiry row.
type InquiryDetails struct {
	Supplier string `json:"supplier"`
	LeadTime string `json:"leadTime"`
}

// PackingRow is a logistics row: a priced line item plus packing details.
type PackingRow struct {
	LineItem
	PackingDetails
}

// InquiryRow is a complex inquiry row: a priced line item plus sourcing
// details.
type InquiryRow struct {
	LineItem
	InquiryDetails
}

// DocumentRow is the stored row shape. Only the details matching the document
// kind are meaningful; the others stay zero.
type DocumentRow struct {
	LineItem
	PackingDetails
	InquiryDetails
}

// Packing is the row as a logistics row.
func (r DocumentRow) Packing() PackingRow {
	return PackingRow{LineItem: r.LineItem, PackingDetails: r.PackingDetails}
}

// Inquiry is the row as a complex inquiry row.
func (r DocumentRow) Inquiry() InquiryRow {
	return InquiryRow{LineItem: r.LineItem, InquiryDetails: r.InquiryDetails}
}

// RowAdapter exposes the LineItem inside a row shape R so aggregation can
// price any kind of row.
type RowAdapter[R any] struct {
	Item     func(R) LineItem
	WithItem func(R, LineItem) R
}

// DocumentRows adapts stored rows.
var DocumentRows = RowAdapter[DocumentRow]{
	Item:     func(r DocumentRow) LineItem { return r.LineItem },
	WithItem: func(r DocumentRow, li LineItem) DocumentRow { r.LineItem = li; return r },
}

// RowInput is Input with rows of any shape.
type RowInput[R any] struct {
	Rows     []R
	Discount DiscountInfo
	Charges  []Charge
	Rate     decimal.Decimal
	Currency Currency
}

// RowResult is Result with rows of the input shape.
type RowResult[R any] struct {
	Rows     []R
	Discount DiscountInfo
	Totals   Totals
}

// AggregateRows runs Aggregate over rows of any shape, writing the derived
// line item fields back into each row.
func AggregateRows[R any](a RowAdapter[R], in RowInput[R], rates ReferenceRates) (RowResult[R], error) {
	items := make([]LineItem, len(in.Rows))
	for i, r := range in.Rows {
		items[i] = a.Item(r)
	}
	res, err := Aggregate(Input{
		Items:    items,
		Discount: in.Discount,
		Charges:  in.Charges,
		Rate:     in.Rate,
		Currency: in.Currency,
	}, rates)
	if err != nil {
		return RowResult[R]{}, err
	}
	rows := make([]R, len(in.Rows))
	for i, r := range in.Rows {
		rows[i] = a.WithItem(r, res.Items[i])
	}
	return RowResult[R]{Rows: rows, Discount: res.Discount, Totals: res.Totals}, nil
}

// Document is the full editable state of one trading document.
type Document struct {
	ID           string          `json:"id"`
	Kind         DocumentKind    `json:"kind"`
	Number       string          `json:"docNumber"`
	Title        string          `json:"title"`
	Customer     string          `json:"customer"`
	Currency     Currency        `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Remark       string          `json:"remark"`

	Rows     []DocumentRow `json:"rows"`
	Discount DiscountInfo  `json:"discount"`
	Charges  []Charge      `json:"charges"`
	Totals   Totals        `json:"totals"`

	// Warning holds the last validation message; totals are zero while it is
	// set.
	Warning string `json:"warning"`
}

// NewDocument returns an empty document of kind k.
func NewDocument(k DocumentKind, c Currency, rate decimal.Decimal) *Document {
	return &Document{
		Kind:         k,
		Currency:     c,
		ExchangeRate: rate,
		Rows:         []DocumentRow{},
		Charges:      []Charge{},
	}
}

// Items returns the line items of the document in row order.
func (d *Document) Items() []LineItem {
	items := make([]LineItem, len(d.Rows))
	for i, r := range d.Rows {
		items[i] = r.LineItem
	}
	return items
}

func (d *Document) rowIndex(id string) (int, error) {
	for i, r := range d.Rows {
		if r.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrRowNotFound, id)
}

func (d *Document) chargeIndex(id string) (int, error) {
	for i, c := range d.Charges {
		if c.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: charge %s", ErrRowNotFound, id)
}

func (d *Document) renumber() {
	for i := range d.Rows {
		d.Rows[i].Position = i + 1
	}
}

// InsertRow adds a new empty row at the 1-based position (appended when out of
// range) and returns it.
func (d *Document) InsertRow(position int) DocumentRow {
	row := DocumentRow{LineItem: NewLineItem()}
	d.Rows = InsertAt(d.Rows, row, position)
	d.renumber()
	idx, _ := d.rowIndex(row.ID)
	return d.Rows[idx]
}

// RemoveRow deletes the row with the given ID.
func (d *Document) RemoveRow(id string) error {
	idx, err := d.rowIndex(id)
	if err != nil {
		return err
	}
	rows, err := RemoveAt(d.Rows, idx+1)
	if err != nil {
		return err
	}
	d.Rows = rows
	d.renumber()
	return nil
}

// MoveRow moves the row with the given ID to the 1-based position.
func (d *Document) MoveRow(id string, to int) error {
	idx, err := d.rowIndex(id)
	if err != nil {
		return err
	}
	rows, err := Move(d.Rows, idx+1, to)
	if err != nil {
		return err
	}
	d.Rows = rows
	d.renumber()
	return nil
}

// EditRow applies op to the row with the given ID.
func (d *Document) EditRow(id string, op EditOp) error {
	idx, err := d.rowIndex(id)
	if err != nil {
		return err
	}
	d.Rows[idx].LineItem = ApplyEdit(d.Rows[idx].LineItem, op, d.ExchangeRate)
	return nil
}

// EditRowField applies a wire-form edit to a row. Packing and inquiry columns
// are handled here; everything else goes through ParseEditOp.
func (d *Document) EditRowField(id, field, value string) error {
	idx, err := d.rowIndex(id)
	if err != nil {
		return err
	}
	row := &d.Rows[idx]
	switch field {
	case "packages":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: packages must be a whole number", ErrValidation)
		}
		row.Packages = n
		return nil
	case "netWeight", "grossWeight", "measurement":
		v, err := ParseAmount(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		switch field {
		case "netWeight":
			row.NetWeight = v
		case "grossWeight":
			row.GrossWeight = v
		default:
			row.Measurement = v
		}
		return nil
	case "supplier":
		row.Supplier = strings.TrimSpace(value)
		return nil
	case "leadTime":
		row.LeadTime = strings.TrimSpace(value)
		return nil
	}
	op, err := ParseEditOp(field, value)
	if err != nil {
		return err
	}
	row.LineItem = ApplyEdit(row.LineItem, op, d.ExchangeRate)
	return nil
}

// EditDiscount applies a discount edit against the pre-discount sales the
// next recalculation will compute.
func (d *Document) EditDiscount(op DiscountEdit) {
	items := d.Items()
	for i := range items {
		items[i] = Rederive(items[i], d.ExchangeRate)
	}
	krw, global := PreDiscountSales(items)
	d.Discount = ApplyDiscountEdit(d.Discount, op, krw, global)
}

// AddCharge appends a new charge and returns it.
func (d *Document) AddCharge(label string) Charge {
	c := NewCharge(label)
	d.Charges = append(d.Charges, c)
	return c
}

// EditCharge applies op to the charge with the given ID.
func (d *Document) EditCharge(id string, op ChargeEdit) error {
	idx, err := d.chargeIndex(id)
	if err != nil {
		return err
	}
	d.Charges[idx] = ApplyChargeEdit(d.Charges[idx], op, d.ExchangeRate)
	return nil
}

// RemoveCharge deletes the charge with the given ID.
func (d *Document) RemoveCharge(id string) error {
	idx, err := d.chargeIndex(id)
	if err != nil {
		return err
	}
	d.Charges = append(d.Charges[:idx:idx], d.Charges[idx+1:]...)
	return nil
}

// SetExchangeRate changes the document rate and re-converts every row and
// charge from its basis side.
func (d *Document) SetExchangeRate(rate decimal.Decimal) {
	d.ExchangeRate = rate
	for i := range d.Rows {
		d.Rows[i].LineItem = Reprice(d.Rows[i].LineItem, rate)
	}
	for i := range d.Charges {
		d.Charges[i] = RepriceCharge(d.Charges[i], rate)
	}
}

// Recalculate re-runs aggregation over the document. On a validation failure
// the totals are cleared, Warning carries the message and the error is
// returned; other errors leave the document untouched.
func (d *Document) Recalculate(rates ReferenceRates) error {
	res, err := AggregateRows(DocumentRows, RowInput[DocumentRow]{
		Rows:     d.Rows,
		Discount: d.Discount,
		Charges:  d.Charges,
		Rate:     d.ExchangeRate,
		Currency: d.Currency,
	}, rates)
	if err != nil {
		if IsValidation(err) {
			d.Totals = Totals{}
			d.Warning = WarningMessage(err)
		}
		return err
	}
	d.Rows = res.Rows
	d.Discount = res.Discount
	d.Totals = res.Totals
	d.Warning = ""
	return nil
}

// WarningMessage turns a validation error into the text shown to the user.
func WarningMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if errors.Is(err, ErrValidation) {
		msg = strings.TrimPrefix(msg, ErrValidation.Error()+": ")
	}
	return msg
}
