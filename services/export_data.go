package services

import (
	"fmt"
	"strings"
	"time"
)

// Company is the issuing company printed on exported documents.
type Company struct {
	Name    string
	Address string
	Email   string
}

// ExportColumn describes one column of the exported item table. Width is in
// 12-column grid units.
type ExportColumn struct {
	Header  string
	Width   int
	Numeric bool
}

// ExportRow is a single row of the exported item table. Grouping rows (maker,
// type, description, notes) carry only a label.
type ExportRow struct {
	Cells []string
	Label string
}

// ExportLine is one label/value line of the totals block.
type ExportLine struct {
	Label    string
	Value    string
	Emphasis bool
}

// ExportData holds all data needed to render a document as PDF or Excel.
type ExportData struct {
	Company Company

	Kind         DocumentKind
	Title        string
	DocNumber    string
	Date         string
	Customer     string
	Currency     Currency
	ExchangeRate string
	Remark       string

	Columns []ExportColumn
	Rows    []ExportRow
	Summary []ExportLine

	AmountInWords string
}

// ValidateForExport checks that doc can be rendered. Failures are validation
// errors carrying the message for the user.
func ValidateForExport(doc *Document) error {
	var problems []string
	if !doc.ExchangeRate.IsPositive() {
		problems = append(problems, "exchange rate is required")
	}
	if len(doc.Rows) == 0 {
		problems = append(problems, "document has no items")
	}
	if strings.TrimSpace(doc.Title) == "" {
		problems = append(problems, "document title is required")
	}
	if _, err := ParseCurrency(string(doc.Currency)); err != nil {
		problems = append(problems, fmt.Sprintf("currency %q is not supported", doc.Currency))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
}

// BuildExportData validates doc, recalculates it and assembles the export
// view.
func BuildExportData(doc *Document, company Company, rates ReferenceRates, now time.Time) (*ExportData, error) {
	if err := ValidateForExport(doc); err != nil {
		return nil, err
	}
	if err := doc.Recalculate(rates); err != nil {
		return nil, err
	}

	data := &ExportData{
		Company:      company,
		Kind:         doc.Kind,
		Title:        doc.Title,
		DocNumber:    doc.Number,
		Date:         now.Format("2006-01-02"),
		Customer:     doc.Customer,
		Currency:     doc.Currency,
		ExchangeRate: fmt.Sprintf("1 %s = %s", doc.Currency, FormatKRW(doc.ExchangeRate)),
		Remark:       doc.Remark,
		Columns:      exportColumns(doc.Kind),
	}

	no := 0
	for _, r := range doc.Rows {
		if !r.IsPriced() {
			label := r.Name
			if r.ItemRemark != "" {
				label = strings.TrimSpace(r.Name + " " + r.ItemRemark)
			}
			data.Rows = append(data.Rows, ExportRow{Label: label})
			continue
		}
		index := "-"
		if r.ItemType == ItemTypeItem {
			no++
			index = fmt.Sprintf("%d", no)
		}
		data.Rows = append(data.Rows, ExportRow{Cells: exportCells(doc.Kind, index, r, doc.Currency)})
	}

	t := doc.Totals
	data.Summary = append(data.Summary, ExportLine{
		Label: "Subtotal",
		Value: FormatForeign(t.SalesUnDcGlobal, doc.Currency),
	})
	if !t.DiscountGlobal.IsZero() {
		data.Summary = append(data.Summary, ExportLine{
			Label: fmt.Sprintf("Discount (%s)", FormatPercent(doc.Discount.Percent)),
			Value: "-" + FormatForeign(t.DiscountGlobal, doc.Currency),
		})
	}
	for _, c := range doc.Charges {
		if !c.IsChecked {
			continue
		}
		data.Summary = append(data.Summary, ExportLine{
			Label: c.Label,
			Value: FormatForeign(c.PriceGlobal, doc.Currency),
		})
	}
	data.Summary = append(data.Summary, ExportLine{
		Label:    fmt.Sprintf("Grand Total (%s)", doc.Currency),
		Value:    FormatForeign(t.SalesGlobal, doc.Currency),
		Emphasis: true,
	})
	data.AmountInWords = AmountToWords(t.SalesGlobal, doc.Currency)

	return data, nil
}

func exportColumns(k DocumentKind) []ExportColumn {
	switch {
	case k.HasPacking():
		return []ExportColumn{
			{Header: "No", Width: 1},
			{Header: "Description", Width: 4},
			{Header: "Qty", Width: 1, Numeric: true},
			{Header: "Unit", Width: 1},
			{Header: "Pkgs", Width: 1, Numeric: true},
			{Header: "N.W. (kg)", Width: 1, Numeric: true},
			{Header: "G.W. (kg)", Width: 1, Numeric: true},
			{Header: "CBM", Width: 1, Numeric: true},
			{Header: "Amount", Width: 1, Numeric: true},
		}
	case k.HasInquiry():
		return []ExportColumn{
			{Header: "No", Width: 1},
			{Header: "Description", Width: 3},
			{Header: "Qty", Width: 1, Numeric: true},
			{Header: "Unit", Width: 1},
			{Header: "Supplier", Width: 2},
			{Header: "Lead Time", Width: 1},
			{Header: "Unit Price", Width: 1, Numeric: true},
			{Header: "Amount", Width: 2, Numeric: true},
		}
	default:
		return []ExportColumn{
			{Header: "No", Width: 1},
			{Header: "Description", Width: 5},
			{Header: "Qty", Width: 1, Numeric: true},
			{Header: "Unit", Width: 1},
			{Header: "Unit Price", Width: 2, Numeric: true},
			{Header: "Amount", Width: 2, Numeric: true},
		}
	}
}

func exportCells(k DocumentKind, index string, r DocumentRow, c Currency) []string {
	switch {
	case k.HasPacking():
		return packingCells(index, r.Packing(), c)
	case k.HasInquiry():
		return inquiryCells(index, r.Inquiry(), c)
	default:
		return itemCells(index, r.LineItem, c)
	}
}

func itemCells(index string, li LineItem, c Currency) []string {
	return []string{
		index, li.Name, FormatQty(li.Qty), li.Unit,
		FormatForeign(li.SalesPriceGlobal, c), FormatForeign(li.SalesAmountGlobal, c),
	}
}

func packingCells(index string, r PackingRow, c Currency) []string {
	return []string{
		index, r.Name, FormatQty(r.Qty), r.Unit,
		fmt.Sprintf("%d", r.Packages),
		FormatQty(r.NetWeight), FormatQty(r.GrossWeight), FormatQty(r.Measurement),
		FormatForeign(r.SalesAmountGlobal, c),
	}
}

func inquiryCells(index string, r InquiryRow, c Currency) []string {
	return []string{
		index, r.Name, FormatQty(r.Qty), r.Unit, r.Supplier, r.LeadTime,
		FormatForeign(r.SalesPriceGlobal, c), FormatForeign(r.SalesAmountGlobal, c),
	}
}
