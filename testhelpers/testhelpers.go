// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"

	"tradeops/collections"
	"tradeops/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// TestRates are the reference rates used by handler and store tests.
var TestRates = services.ReferenceRates{
	services.USD: decimal.NewFromInt(1000),
	services.EUR: decimal.NewFromInt(1500),
	services.INR: decimal.NewFromInt(17),
	services.JPY: decimal.RequireFromString("9.5"),
}

// CreateTestDocument saves an empty USD document of the given kind at a rate
// of 1000 and returns it.
func CreateTestDocument(t *testing.T, app *pocketbase.PocketBase, kind services.DocumentKind, customer string) *services.Document {
	t.Helper()

	doc := services.NewDocument(kind, services.USD, decimal.NewFromInt(1000))
	doc.Customer = customer
	if err := services.CreateDocument(app, doc, time.Now()); err != nil {
		t.Fatalf("failed to save test document: %v", err)
	}
	return doc
}

// AddTestItem appends a priced ITEM row (KRW purchase price and margin) to doc
// and saves it.
func AddTestItem(t *testing.T, app *pocketbase.PocketBase, doc *services.Document, name string, qty, purchaseKRW, margin int64) services.DocumentRow {
	t.Helper()

	row := doc.InsertRow(len(doc.Rows) + 1)
	edits := []services.EditOp{
		services.SetName{Text: name},
		services.SetUnit{Text: "EA"},
		services.SetQty{Value: decimal.NewFromInt(qty)},
		services.SetPurchaseKRW{Value: decimal.NewFromInt(purchaseKRW)},
		services.SetMargin{Value: decimal.NewFromInt(margin)},
	}
	for _, op := range edits {
		if err := doc.EditRow(row.ID, op); err != nil {
			t.Fatalf("failed to edit test row: %v", err)
		}
	}
	if err := services.SaveDocument(app, doc); err != nil {
		t.Fatalf("failed to save test row: %v", err)
	}
	for _, r := range doc.Rows {
		if r.ID == row.ID {
			return r
		}
	}
	t.Fatalf("test row %s disappeared", row.ID)
	return services.DocumentRow{}
}

// AddTestCharge appends a charge with a KRW price to doc and saves it.
func AddTestCharge(t *testing.T, app *pocketbase.PocketBase, doc *services.Document, label string, priceKRW int64) services.Charge {
	t.Helper()

	c := doc.AddCharge(label)
	if err := doc.EditCharge(c.ID, services.SetChargeKRW{Value: decimal.NewFromInt(priceKRW)}); err != nil {
		t.Fatalf("failed to price test charge: %v", err)
	}
	if err := services.SaveDocument(app, doc); err != nil {
		t.Fatalf("failed to save test charge: %v", err)
	}
	return doc.Charges[len(doc.Charges)-1]
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
