package collections

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"

	"tradeops/services"
)

type seedRow struct {
	itemType    services.ItemType
	name        string
	unit        string
	qty         int64
	purchaseKRW int64
	margin      int64
	supplier    string
	leadTime    string
}

type seedDocument struct {
	kind     services.DocumentKind
	customer string
	currency services.Currency
	rate     string
	discount int64
	charges  map[string]int64
	rows     []seedRow
}

var seedDocuments = []seedDocument{
	{
		kind:     services.KindOffer,
		customer: "Hanjin Marine Supply",
		currency: services.USD,
		rate:     "1385.5",
		discount: 5,
		charges:  map[string]int64{services.ChargeFreightCharge: 150000},
		rows: []seedRow{
			{itemType: services.ItemTypeMaker, name: "KITZ"},
			{itemType: services.ItemTypeItem, name: "Ball Valve 2\" SUS316", unit: "EA", qty: 12, purchaseKRW: 84000, margin: 25},
			{itemType: services.ItemTypeItem, name: "Gate Valve 4\" JIS 10K", unit: "EA", qty: 4, purchaseKRW: 312000, margin: 20},
			{itemType: services.ItemTypeMaker, name: "SAMSON"},
			{itemType: services.ItemTypeItem, name: "Control Valve Actuator", unit: "SET", qty: 1, purchaseKRW: 2450000, margin: 18},
		},
	},
	{
		kind:     services.KindComplexInquiry,
		customer: "Pacific Offshore Engineering",
		currency: services.EUR,
		rate:     "1490",
		rows: []seedRow{
			{itemType: services.ItemTypeItem, name: "Hydraulic Pump Seal Kit", unit: "SET", qty: 6, purchaseKRW: 185000, margin: 30,
				supplier: "Dongil Seals", leadTime: "4 weeks"},
			{itemType: services.ItemTypeItem, name: "Pressure Gauge 0-25 bar", unit: "EA", qty: 10, purchaseKRW: 42000, margin: 35,
				supplier: "Wise Control", leadTime: "2 weeks"},
		},
	},
}

// Seed inserts sample documents so a fresh install has something to look
// at. It is safe to call on every startup because it returns early if any
// documents already exist.
func Seed(app *pocketbase.PocketBase, rates services.ReferenceRates) error {
	existing, err := app.CountRecords("documents")
	if err != nil {
		return fmt.Errorf("seed: could not count documents: %w", err)
	}
	if existing > 0 {
		return nil
	}

	slog.Info("seed: documents collection is empty, inserting sample documents")

	now := time.Now()
	for _, def := range seedDocuments {
		doc := services.NewDocument(def.kind, def.currency, decimal.RequireFromString(def.rate))
		doc.Customer = def.customer

		for _, r := range def.rows {
			row := doc.InsertRow(len(doc.Rows) + 1)
			ops := []services.EditOp{
				services.SetItemType{Type: r.itemType},
				services.SetName{Text: r.name},
			}
			if r.itemType.Priced() {
				ops = append(ops,
					services.SetUnit{Text: r.unit},
					services.SetQty{Value: decimal.NewFromInt(r.qty)},
					services.SetPurchaseKRW{Value: decimal.NewFromInt(r.purchaseKRW)},
					services.SetMargin{Value: decimal.NewFromInt(r.margin)},
				)
			}
			for _, op := range ops {
				if err := doc.EditRow(row.ID, op); err != nil {
					return fmt.Errorf("seed: edit row %q: %w", r.name, err)
				}
			}
			if r.supplier != "" {
				if err := doc.EditRowField(row.ID, "supplier", r.supplier); err != nil {
					return fmt.Errorf("seed: supplier for %q: %w", r.name, err)
				}
				if err := doc.EditRowField(row.ID, "leadTime", r.leadTime); err != nil {
					return fmt.Errorf("seed: lead time for %q: %w", r.name, err)
				}
			}
		}

		if def.discount > 0 {
			doc.EditDiscount(services.SetDiscountPercent{Value: decimal.NewFromInt(def.discount)})
		}
		for label, krw := range def.charges {
			c := doc.AddCharge(label)
			if err := doc.EditCharge(c.ID, services.SetChargeKRW{Value: decimal.NewFromInt(krw)}); err != nil {
				return fmt.Errorf("seed: charge %q: %w", label, err)
			}
			if err := doc.EditCharge(c.ID, services.SetChargeChecked{Checked: true}); err != nil {
				return fmt.Errorf("seed: charge %q: %w", label, err)
			}
		}

		if err := doc.Recalculate(rates); err != nil {
			return fmt.Errorf("seed: recalculate %s: %w", def.kind, err)
		}
		if err := services.CreateDocument(app, doc, now); err != nil {
			return fmt.Errorf("seed: save %s: %w", def.kind, err)
		}
		slog.Info("seed: created document", "number", doc.Number, "rows", len(doc.Rows))
	}

	return nil
}
