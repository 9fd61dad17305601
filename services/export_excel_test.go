package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateDocumentExcel_Offer(t *testing.T) {
	data, err := BuildExportData(sampleDocument(t, KindOffer), testCompany, DefaultReferenceRates(), time.Now())
	require.NoError(t, err)

	result, err := GenerateDocumentExcel(data)
	require.NoError(t, err)
	require.NotEmpty(t, result)

	f, err := excelize.OpenReader(bytesReader(result))
	require.NoError(t, err, "result is not valid Excel")
	defer f.Close()

	sheets := f.GetSheetList()
	require.NotEmpty(t, sheets)
	assert.Equal(t, "OFF-2603-001", sheets[0])

	title, _ := f.GetCellValue(sheets[0], "A1")
	assert.Equal(t, "QUOTATION", title)

	header, _ := f.GetCellValue(sheets[0], "B6")
	assert.Equal(t, "Description", header)

	group, _ := f.GetCellValue(sheets[0], "A7")
	assert.Equal(t, "ACME PUMPS", group)

	amount, _ := f.GetCellValue(sheets[0], "F8")
	assert.Equal(t, "$9.23", amount)
}

func TestGenerateDocumentExcel_LongNumber(t *testing.T) {
	data := &ExportData{
		Kind:      KindLogistics,
		DocNumber: "This is a very long document number exceeding the limit",
		Columns:   exportColumns(KindLogistics),
	}

	result, err := GenerateDocumentExcel(data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytesReader(result))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.LessOrEqual(t, len(sheets[0]), 31)
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"", ""},
		{"normal", "normal"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"@cmd", "'@cmd"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, sanitizeExcelCell(tt.input))
	}
}
