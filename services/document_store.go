package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// DocumentSummary is one row of the document list.
type DocumentSummary struct {
	ID          string          `json:"id"`
	Kind        DocumentKind    `json:"kind"`
	Number      string          `json:"docNumber"`
	Title       string          `json:"title"`
	Customer    string          `json:"customer"`
	Currency    Currency        `json:"currency"`
	SalesGlobal decimal.Decimal `json:"totalSalesGlobal"`
	Warning     string          `json:"warning"`
	Updated     time.Time       `json:"updated"`
}

func decimalOf(r *core.Record, key string) decimal.Decimal {
	return decimal.NewFromFloat(r.GetFloat(key))
}

func nullDecimalOf(r *core.Record, key, setKey string) decimal.NullDecimal {
	if !r.GetBool(setKey) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimalOf(r, key))
}

func setDecimal(r *core.Record, key string, d decimal.Decimal) {
	r.Set(key, d.InexactFloat64())
}

func setNullDecimal(r *core.Record, key, setKey string, d decimal.NullDecimal) {
	r.Set(setKey, d.Valid)
	if d.Valid {
		setDecimal(r, key, d.Decimal)
		return
	}
	r.Set(key, 0)
}

// CreateDocument assigns the next document number to doc and saves it.
func CreateDocument(app core.App, doc *Document, now time.Time) error {
	if _, err := ParseDocumentKind(string(doc.Kind)); err != nil {
		return err
	}
	number, err := GenerateDocNumber(app, doc.Kind, now)
	if err != nil {
		return fmt.Errorf("documents: number: %w", err)
	}
	doc.Number = number
	if doc.Title == "" {
		doc.Title = doc.Kind.Title()
	}
	return SaveDocument(app, doc)
}

// LoadDocument reads a document with its rows and charges.
func LoadDocument(app core.App, id string) (*Document, error) {
	rec, err := app.FindRecordById("documents", id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}

	doc := &Document{
		ID:           rec.Id,
		Kind:         DocumentKind(rec.GetString("kind")),
		Number:       rec.GetString("doc_number"),
		Title:        rec.GetString("title"),
		Customer:     rec.GetString("customer"),
		Currency:     Currency(rec.GetString("currency")),
		ExchangeRate: decimalOf(rec, "exchange_rate"),
		Remark:       rec.GetString("remark"),
		Warning:      rec.GetString("warning"),
		Discount: DiscountInfo{
			Percent: nullDecimalOf(rec, "dc_percent", "dc_percent_set"),
			KRW:        decimalOf(rec, "dc_krw"),
			Global:     decimalOf(rec, "dc_global"),
			BaseKRW:    decimalOf(rec, "dc_base_krw"),
			BaseGlobal: decimalOf(rec, "dc_base_global"),
		},
		Rows:    []DocumentRow{},
		Charges: []Charge{},
	}
	if err := rec.UnmarshalJSONField("totals", &doc.Totals); err != nil {
		slog.Warn("documents: could not decode stored totals", "document", id, "error", err)
		doc.Totals = Totals{}
	}

	items, err := app.FindRecordsByFilter(
		"document_items",
		"document = {:docId}",
		"sort_order",
		0,
		0,
		map[string]any{"docId": id},
	)
	if err != nil {
		return nil, fmt.Errorf("documents: query items for %s: %w", id, err)
	}
	for _, r := range items {
		doc.Rows = append(doc.Rows, rowFromRecord(r))
	}
	doc.renumber()

	charges, err := app.FindRecordsByFilter(
		"document_charges",
		"document = {:docId}",
		"sort_order",
		0,
		0,
		map[string]any{"docId": id},
	)
	if err != nil {
		return nil, fmt.Errorf("documents: query charges for %s: %w", id, err)
	}
	for _, r := range charges {
		doc.Charges = append(doc.Charges, Charge{
			ID:          r.GetString("charge_id"),
			Label:       r.GetString("custom_charge"),
			PriceKRW:    decimalOf(r, "price_krw"),
			PriceGlobal: decimalOf(r, "price_global"),
			IsChecked:   r.GetBool("is_checked"),
			Basis:       basisOf(r),
		})
	}

	return doc, nil
}

func basisOf(r *core.Record) Basis {
	if Basis(r.GetString("basis")) == BasisForeign {
		return BasisForeign
	}
	return BasisKRW
}

func rowFromRecord(r *core.Record) DocumentRow {
	return DocumentRow{
		LineItem: LineItem{
			ID:                   r.GetString("row_id"),
			Position:             r.GetInt("sort_order"),
			ItemType:             ItemType(r.GetString("item_type")),
			Name:                 r.GetString("name"),
			Unit:                 r.GetString("unit"),
			Qty:                  decimalOf(r, "qty"),
			PurchasePriceKRW:     decimalOf(r, "purchase_price_krw"),
			PurchasePriceGlobal:  decimalOf(r, "purchase_price_global"),
			SalesPriceKRW:        decimalOf(r, "sales_price_krw"),
			SalesPriceGlobal:     decimalOf(r, "sales_price_global"),
			Margin:               nullDecimalOf(r, "margin", "margin_set"),
			PurchaseAmountKRW:    decimalOf(r, "purchase_amount_krw"),
			PurchaseAmountGlobal: decimalOf(r, "purchase_amount_global"),
			SalesAmountKRW:       decimalOf(r, "sales_amount_krw"),
			SalesAmountGlobal:    decimalOf(r, "sales_amount_global"),
			ItemRemark:           r.GetString("item_remark"),
			MarginDerived:        r.GetBool("margin_derived"),
			Basis:                basisOf(r),
		},
		PackingDetails: PackingDetails{
			Packages:    r.GetInt("packages"),
			NetWeight:   decimalOf(r, "net_weight"),
			GrossWeight: decimalOf(r, "gross_weight"),
			Measurement: decimalOf(r, "measurement"),
		},
		InquiryDetails: InquiryDetails{
			Supplier: r.GetString("supplier"),
			LeadTime: r.GetString("lead_time"),
		},
	}
}

// SaveDocument writes the header, rows and charges of doc in one transaction.
// Rows and charges are rewritten in slice order so stored positions stay
// contiguous. A new document (empty ID) is inserted and doc.ID is set.
func SaveDocument(app core.App, doc *Document) error {
	return app.RunInTransaction(func(txApp core.App) error {
		var rec *core.Record
		if doc.ID == "" {
			col, err := txApp.FindCollectionByNameOrId("documents")
			if err != nil {
				return fmt.Errorf("documents: collection: %w", err)
			}
			rec = core.NewRecord(col)
		} else {
			found, err := txApp.FindRecordById("documents", doc.ID)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrDocumentNotFound, doc.ID)
			}
			rec = found
		}

		rec.Set("kind", string(doc.Kind))
		rec.Set("doc_number", doc.Number)
		rec.Set("title", doc.Title)
		rec.Set("customer", doc.Customer)
		rec.Set("currency", string(doc.Currency))
		setDecimal(rec, "exchange_rate", doc.ExchangeRate)
		setNullDecimal(rec, "dc_percent", "dc_percent_set", doc.Discount.Percent)
		setDecimal(rec, "dc_krw", doc.Discount.KRW)
		setDecimal(rec, "dc_global", doc.Discount.Global)
		setDecimal(rec, "dc_base_krw", doc.Discount.BaseKRW)
		setDecimal(rec, "dc_base_global", doc.Discount.BaseGlobal)
		rec.Set("totals", doc.Totals)
		rec.Set("warning", doc.Warning)
		rec.Set("remark", doc.Remark)
		if err := txApp.Save(rec); err != nil {
			return fmt.Errorf("documents: save header: %w", err)
		}
		doc.ID = rec.Id

		if err := deleteChildren(txApp, "document_items", doc.ID); err != nil {
			return err
		}
		if err := deleteChildren(txApp, "document_charges", doc.ID); err != nil {
			return err
		}

		itemsCol, err := txApp.FindCollectionByNameOrId("document_items")
		if err != nil {
			return fmt.Errorf("documents: collection: %w", err)
		}
		doc.renumber()
		for _, row := range doc.Rows {
			r := core.NewRecord(itemsCol)
			r.Set("document", doc.ID)
			r.Set("row_id", row.ID)
			r.Set("sort_order", row.Position)
			r.Set("item_type", string(row.ItemType))
			r.Set("name", row.Name)
			r.Set("unit", row.Unit)
			setDecimal(r, "qty", row.Qty)
			setDecimal(r, "purchase_price_krw", row.PurchasePriceKRW)
			setDecimal(r, "purchase_price_global", row.PurchasePriceGlobal)
			setDecimal(r, "sales_price_krw", row.SalesPriceKRW)
			setDecimal(r, "sales_price_global", row.SalesPriceGlobal)
			setNullDecimal(r, "margin", "margin_set", row.Margin)
			r.Set("margin_derived", row.MarginDerived)
			setDecimal(r, "purchase_amount_krw", row.PurchaseAmountKRW)
			setDecimal(r, "purchase_amount_global", row.PurchaseAmountGlobal)
			setDecimal(r, "sales_amount_krw", row.SalesAmountKRW)
			setDecimal(r, "sales_amount_global", row.SalesAmountGlobal)
			r.Set("basis", string(row.Basis))
			r.Set("item_remark", row.ItemRemark)
			r.Set("packages", row.Packages)
			setDecimal(r, "net_weight", row.NetWeight)
			setDecimal(r, "gross_weight", row.GrossWeight)
			setDecimal(r, "measurement", row.Measurement)
			r.Set("supplier", row.Supplier)
			r.Set("lead_time", row.LeadTime)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("documents: save row %d: %w", row.Position, err)
			}
		}

		chargesCol, err := txApp.FindCollectionByNameOrId("document_charges")
		if err != nil {
			return fmt.Errorf("documents: collection: %w", err)
		}
		for i, c := range doc.Charges {
			r := core.NewRecord(chargesCol)
			r.Set("document", doc.ID)
			r.Set("charge_id", c.ID)
			r.Set("sort_order", i+1)
			r.Set("custom_charge", c.Label)
			setDecimal(r, "price_krw", c.PriceKRW)
			setDecimal(r, "price_global", c.PriceGlobal)
			r.Set("is_checked", c.IsChecked)
			r.Set("basis", string(c.Basis))
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("documents: save charge %d: %w", i+1, err)
			}
		}
		return nil
	})
}

func deleteChildren(app core.App, collection, docID string) error {
	records, err := app.FindRecordsByFilter(
		collection,
		"document = {:docId}",
		"",
		0,
		0,
		map[string]any{"docId": docID},
	)
	if err != nil {
		return fmt.Errorf("documents: query %s: %w", collection, err)
	}
	for _, r := range records {
		if err := app.Delete(r); err != nil {
			return fmt.Errorf("documents: delete %s %s: %w", collection, r.Id, err)
		}
	}
	return nil
}

// DeleteDocument removes a document; rows and charges cascade.
func DeleteDocument(app core.App, id string) error {
	rec, err := app.FindRecordById("documents", id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	if err := app.Delete(rec); err != nil {
		return fmt.Errorf("documents: delete %s: %w", id, err)
	}
	return nil
}

// ListDocuments returns document summaries, newest first. An empty kind lists
// every kind.
func ListDocuments(app core.App, kind DocumentKind) ([]DocumentSummary, error) {
	filter := "id != ''"
	params := map[string]any{}
	if kind != "" {
		filter = "kind = {:kind}"
		params["kind"] = string(kind)
	}
	records, err := app.FindRecordsByFilter("documents", filter, "-created", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("documents: list: %w", err)
	}

	out := make([]DocumentSummary, 0, len(records))
	for _, r := range records {
		var totals Totals
		if err := r.UnmarshalJSONField("totals", &totals); err != nil {
			slog.Warn("documents: could not decode stored totals", "document", r.Id, "error", err)
		}
		out = append(out, DocumentSummary{
			ID:          r.Id,
			Kind:        DocumentKind(r.GetString("kind")),
			Number:      r.GetString("doc_number"),
			Title:       r.GetString("title"),
			Customer:    r.GetString("customer"),
			Currency:    Currency(r.GetString("currency")),
			SalesGlobal: totals.SalesGlobal,
			Warning:     r.GetString("warning"),
			Updated:     r.GetDateTime("updated").Time(),
		})
	}
	return out, nil
}

// RecalculateAndSave recomputes doc and persists the result. A validation
// failure is saved too (totals cleared, warning set) and then returned.
func RecalculateAndSave(app core.App, doc *Document, rates ReferenceRates) error {
	calcErr := doc.Recalculate(rates)
	ObserveRecalculation(doc.Kind, calcErr)
	if calcErr != nil && !IsValidation(calcErr) {
		return calcErr
	}
	if err := SaveDocument(app, doc); err != nil {
		return err
	}
	if calcErr != nil {
		return calcErr
	}
	return nil
}

// IsNotFound reports whether err means a document or row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrRowNotFound)
}

// RecalcReport counts the outcome of a bulk recalculation.
type RecalcReport struct {
	Total    int
	Warnings int
	Failed   int
}

// RecalculateAll recalculates and stores every document of kind (all kinds
// when empty). Per-document failures are logged and counted; only a failure to
// list the documents is returned.
func RecalculateAll(app core.App, kind DocumentKind, rates ReferenceRates) (RecalcReport, error) {
	var report RecalcReport
	summaries, err := ListDocuments(app, kind)
	if err != nil {
		return report, err
	}
	for _, s := range summaries {
		report.Total++
		doc, err := LoadDocument(app, s.ID)
		if err != nil {
			report.Failed++
			slog.Error("documents: recalculate load failed", "document", s.ID, "error", err)
			continue
		}
		err = RecalculateAndSave(app, doc, rates)
		switch {
		case err == nil:
		case IsValidation(err):
			report.Warnings++
			slog.Warn("documents: recalculated with warning", "document", doc.Number, "warning", doc.Warning)
		default:
			report.Failed++
			slog.Error("documents: recalculate failed", "document", doc.Number, "error", err)
		}
	}
	return report, nil
}
