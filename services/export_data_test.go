package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCompany = Company{Name: "Hanbit Trading", Address: "Seoul", Email: "sales@hanbit.example"}

// sampleDocument returns a priced document of kind k with a maker header, two
// items, a 10% discount and one printed charge.
func sampleDocument(t *testing.T, k DocumentKind) *Document {
	t.Helper()
	doc := NewDocument(k, USD, rate1300)
	doc.Title = k.Title()
	doc.Number = k.Prefix() + "-2603-001"
	doc.Customer = "Pacific Marine Ltd"

	maker := doc.InsertRow(0)
	require.NoError(t, doc.EditRowField(maker.ID, "itemType", "MAKER"))
	require.NoError(t, doc.EditRowField(maker.ID, "name", "ACME PUMPS"))

	for _, p := range []struct{ name, qty, price string }{
		{"Impeller", "10", "1000"},
		{"Shaft seal", "2", "45000"},
	} {
		row := doc.InsertRow(0)
		require.NoError(t, doc.EditRowField(row.ID, "name", p.name))
		require.NoError(t, doc.EditRowField(row.ID, "unit", "EA"))
		require.NoError(t, doc.EditRowField(row.ID, "qty", p.qty))
		require.NoError(t, doc.EditRowField(row.ID, "purchasePriceKRW", p.price))
		require.NoError(t, doc.EditRowField(row.ID, "margin", "20"))
		require.NoError(t, doc.EditRowField(row.ID, "supplier", "ACME"))
		require.NoError(t, doc.EditRowField(row.ID, "packages", "1"))
	}

	doc.EditDiscount(SetDiscountPercent{Value: dec("10")})
	c := doc.AddCharge(ChargeFreightCharge)
	require.NoError(t, doc.EditCharge(c.ID, SetChargeKRW{Value: dec("13000")}))
	require.NoError(t, doc.EditCharge(c.ID, SetChargeChecked{Checked: true}))
	return doc
}

func TestValidateForExport(t *testing.T) {
	doc := sampleDocument(t, KindInvoice)
	require.NoError(t, ValidateForExport(doc))

	empty := NewDocument(KindInvoice, "GBP", dec("0"))
	err := ValidateForExport(empty)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	msg := WarningMessage(err)
	assert.Contains(t, msg, "exchange rate is required")
	assert.Contains(t, msg, "document has no items")
	assert.Contains(t, msg, "document title is required")
	assert.Contains(t, msg, `currency "GBP" is not supported`)
}

func TestBuildExportData_Invoice(t *testing.T) {
	doc := sampleDocument(t, KindInvoice)
	now := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	data, err := BuildExportData(doc, testCompany, DefaultReferenceRates(), now)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-05", data.Date)
	assert.Equal(t, "1 USD = ₩1,300", data.ExchangeRate)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "ACME PUMPS", data.Rows[0].Label)
	assert.Nil(t, data.Rows[0].Cells)
	assert.Equal(t, []string{"1", "Impeller", "10", "EA", "$0.92", "$9.23"}, data.Rows[1].Cells)
	assert.Equal(t, "2", data.Rows[2].Cells[0])

	labels := make([]string, len(data.Summary))
	for i, l := range data.Summary {
		labels[i] = l.Label
	}
	assert.Equal(t, []string{"Subtotal", "Discount (10.00%)", ChargeFreightCharge, "Grand Total (USD)"}, labels)
	assert.True(t, data.Summary[len(data.Summary)-1].Emphasis)
	assert.True(t, strings.HasPrefix(data.AmountInWords, "US Dollars "))
}

func TestBuildExportData_KindColumns(t *testing.T) {
	now := time.Now()
	for _, k := range DocumentKinds {
		t.Run(string(k), func(t *testing.T) {
			data, err := BuildExportData(sampleDocument(t, k), testCompany, DefaultReferenceRates(), now)
			require.NoError(t, err)

			width := 0
			for _, c := range data.Columns {
				width += c.Width
			}
			assert.Equal(t, 12, width)
			for _, r := range data.Rows {
				if r.Cells != nil {
					assert.Len(t, r.Cells, len(data.Columns))
				}
			}
		})
	}
}

func TestBuildExportData_DetailColumns(t *testing.T) {
	now := time.Now()

	packing, err := BuildExportData(sampleDocument(t, KindLogistics), testCompany, DefaultReferenceRates(), now)
	require.NoError(t, err)
	cells := packing.Rows[1].Cells
	assert.Equal(t, "Impeller", cells[1])
	assert.Equal(t, "1", cells[4], "packages")
	assert.Equal(t, "$9.23", cells[len(cells)-1])

	inquiry, err := BuildExportData(sampleDocument(t, KindComplexInquiry), testCompany, DefaultReferenceRates(), now)
	require.NoError(t, err)
	cells = inquiry.Rows[1].Cells
	assert.Equal(t, "ACME", cells[4], "supplier")
	assert.Equal(t, "$0.92", cells[6])
}

func TestBuildExportData_RejectsInvalid(t *testing.T) {
	doc := NewDocument(KindOffer, USD, rate1300)
	doc.Title = "QUOTATION"
	_, err := BuildExportData(doc, testCompany, DefaultReferenceRates(), time.Now())
	assert.True(t, IsValidation(err))
}
