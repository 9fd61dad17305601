package services_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeops/services"
	"tradeops/testhelpers"
)

func TestCreateDocument_AssignsNumberAndTitle(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	first := services.NewDocument(services.KindOffer, services.USD, decimal.NewFromInt(1300))
	require.NoError(t, services.CreateDocument(app, first, now))
	second := services.NewDocument(services.KindOffer, services.USD, decimal.NewFromInt(1300))
	require.NoError(t, services.CreateDocument(app, second, now))
	invoice := services.NewDocument(services.KindInvoice, services.EUR, decimal.NewFromInt(1500))
	require.NoError(t, services.CreateDocument(app, invoice, now))

	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "OFF-2603-001", first.Number)
	assert.Equal(t, "OFF-2603-002", second.Number)
	assert.Equal(t, "INV-2603-001", invoice.Number)
	assert.Equal(t, "QUOTATION", first.Title)
}

func TestCreateDocument_RejectsUnknownKind(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	doc := services.NewDocument("MEMO", services.USD, decimal.NewFromInt(1300))
	err := services.CreateDocument(app, doc, time.Now())
	require.Error(t, err)
	assert.True(t, services.IsValidation(err))
}

func TestSaveAndLoadDocument_RoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.CreateTestDocument(t, app, services.KindLogistics, "Busan Marine")
	row := testhelpers.AddTestItem(t, app, doc, "Valve", 3, 12000, 20)
	testhelpers.AddTestCharge(t, app, doc, services.ChargeFreightCharge, 5000)
	require.NoError(t, doc.EditRowField(row.ID, "packages", "2"))
	require.NoError(t, doc.EditRowField(row.ID, "grossWeight", "12.5"))
	doc.EditDiscount(services.SetDiscountPercent{Value: decimal.NewFromInt(10)})
	require.NoError(t, services.RecalculateAndSave(app, doc, testhelpers.TestRates))

	loaded, err := services.LoadDocument(app, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, doc.Number, loaded.Number)
	assert.Equal(t, "Busan Marine", loaded.Customer)
	require.Len(t, loaded.Rows, 1)
	got := loaded.Rows[0]
	assert.Equal(t, row.ID, got.ID)
	assert.Equal(t, 1, got.Position)
	assert.Equal(t, "Valve", got.Name)
	assert.True(t, got.SalesPriceKRW.Equal(decimal.NewFromInt(14400)), "sales price %s", got.SalesPriceKRW)
	assert.True(t, got.Margin.Valid)
	assert.True(t, got.Margin.Decimal.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 2, got.Packages)
	assert.True(t, got.GrossWeight.Equal(decimal.RequireFromString("12.5")))

	require.Len(t, loaded.Charges, 1)
	assert.Equal(t, services.ChargeFreightCharge, loaded.Charges[0].Label)
	assert.True(t, loaded.Charges[0].PriceKRW.Equal(decimal.NewFromInt(5000)))

	assert.True(t, loaded.Discount.Percent.Valid)
	assert.True(t, loaded.Totals.SalesKRW.Equal(doc.Totals.SalesKRW), "stored totals %s, want %s",
		loaded.Totals.SalesKRW, doc.Totals.SalesKRW)
	assert.Empty(t, loaded.Warning)
}

func TestSaveAndLoadDocument_KeepsEnteredValues(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.CreateTestDocument(t, app, services.KindOffer, "Entered Co")
	row := doc.InsertRow(1)
	require.NoError(t, doc.EditRow(row.ID, services.SetQty{Value: decimal.NewFromInt(1)}))
	require.NoError(t, doc.EditRow(row.ID, services.SetPurchaseKRW{Value: decimal.NewFromInt(1000000)}))
	require.NoError(t, doc.EditRow(row.ID, services.SetSalesKRW{Value: decimal.NewFromInt(1234567)}))
	c := doc.AddCharge(services.ChargeFreightCharge)
	require.NoError(t, doc.EditCharge(c.ID, services.SetChargeGlobal{Value: decimal.RequireFromString("2.5")}))
	doc.EditDiscount(services.SetDiscountKRW{Value: decimal.NewFromInt(1000)})
	require.NoError(t, services.RecalculateAndSave(app, doc, testhelpers.TestRates))

	loaded, err := services.LoadDocument(app, doc.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Rows[0].MarginDerived)
	assert.Equal(t, services.BasisForeign, loaded.Charges[0].Basis)
	assert.True(t, loaded.Discount.BaseKRW.Equal(decimal.NewFromInt(1234567)), "base %s", loaded.Discount.BaseKRW)

	require.NoError(t, services.RecalculateAndSave(app, loaded, testhelpers.TestRates))
	assert.True(t, loaded.Rows[0].SalesPriceKRW.Equal(decimal.NewFromInt(1234567)), "sales price %s", loaded.Rows[0].SalesPriceKRW)
	assert.True(t, loaded.Discount.KRW.Equal(decimal.NewFromInt(1000)), "dcKrw %s", loaded.Discount.KRW)

	loaded.SetExchangeRate(decimal.NewFromInt(1250))
	assert.True(t, loaded.Charges[0].PriceKRW.Equal(decimal.NewFromInt(3125)), "charge krw %s", loaded.Charges[0].PriceKRW)
}

func TestSaveDocument_RewritesRowOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.CreateTestDocument(t, app, services.KindOffer, "Order Co")
	a := testhelpers.AddTestItem(t, app, doc, "A", 1, 1000, 10)
	testhelpers.AddTestItem(t, app, doc, "B", 1, 1000, 10)
	testhelpers.AddTestItem(t, app, doc, "C", 1, 1000, 10)

	require.NoError(t, doc.MoveRow(a.ID, 3))
	require.NoError(t, services.SaveDocument(app, doc))

	loaded, err := services.LoadDocument(app, doc.ID)
	require.NoError(t, err)
	names := make([]string, len(loaded.Rows))
	for i, r := range loaded.Rows {
		names[i] = r.Name
		assert.Equal(t, i+1, r.Position)
	}
	assert.Equal(t, []string{"B", "C", "A"}, names)
}

func TestRecalculateAndSave_StoresWarning(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.CreateTestDocument(t, app, services.KindInvoice, "Empty Co")

	err := services.RecalculateAndSave(app, doc, testhelpers.TestRates)
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNoItems))

	loaded, err := services.LoadDocument(app, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "document has no items", loaded.Warning)
	assert.True(t, loaded.Totals.SalesKRW.IsZero())
}

func TestLoadDocument_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	_, err := services.LoadDocument(app, "missing")
	require.Error(t, err)
	assert.True(t, services.IsNotFound(err))
}

func TestDeleteDocument_CascadesChildren(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.CreateTestDocument(t, app, services.KindOffer, "Gone Co")
	testhelpers.AddTestItem(t, app, doc, "Pump", 1, 1000, 10)
	testhelpers.AddTestCharge(t, app, doc, services.ChargePackingCharge, 1000)

	require.NoError(t, services.DeleteDocument(app, doc.ID))

	_, err := services.LoadDocument(app, doc.ID)
	assert.True(t, services.IsNotFound(err))
	items, err := app.FindRecordsByFilter("document_items", "document = {:id}", "", 0, 0, map[string]any{"id": doc.ID})
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.True(t, services.IsNotFound(services.DeleteDocument(app, doc.ID)))
}

func TestListDocuments_FiltersByKind(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestDocument(t, app, services.KindOffer, "Offer Co")
	testhelpers.CreateTestDocument(t, app, services.KindInvoice, "Invoice Co")

	all, err := services.ListDocuments(app, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	offers, err := services.ListDocuments(app, services.KindOffer)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "Offer Co", offers[0].Customer)
	assert.True(t, strings.HasPrefix(offers[0].Number, "OFF-"))
}

func TestRecalculateAll(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	priced := testhelpers.CreateTestDocument(t, app, services.KindOffer, "Priced Co")
	testhelpers.AddTestItem(t, app, priced, "Pump", 2, 1000, 50)
	testhelpers.CreateTestDocument(t, app, services.KindOffer, "Empty Co")
	testhelpers.CreateTestDocument(t, app, services.KindInvoice, "Other Kind Co")

	report, err := services.RecalculateAll(app, services.KindOffer, testhelpers.TestRates)
	require.NoError(t, err)
	assert.Equal(t, services.RecalcReport{Total: 2, Warnings: 1, Failed: 0}, report)

	loaded, err := services.LoadDocument(app, priced.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Totals.SalesKRW.Equal(decimal.NewFromInt(3000)), "sales %s", loaded.Totals.SalesKRW)
}
