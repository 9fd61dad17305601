package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateDocumentExcel writes the export view of a document to a single
// sheet and returns the file contents.
func GenerateDocumentExcel(data *ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are limited to 31 characters.
	sheetName := data.DocNumber
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = string(data.Kind)
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := make([]string, len(data.Columns))
	for i := range data.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i+1, err)
		}
		columns[i] = name
		width := float64(data.Columns[i].Width) * 9
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}
	lastCol := columns[len(columns)-1]

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	groupStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Italic: true, Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create group style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-4) ───────────────────────────────────────────────

	headerLines := []struct {
		text  string
		style int
	}{
		{data.Title, titleStyle},
		{fmt.Sprintf("No.: %s    Date: %s", data.DocNumber, data.Date), subtitleStyle},
		{"Messrs: " + data.Customer, subtitleStyle},
		{"Exchange Rate: " + data.ExchangeRate, subtitleStyle},
	}
	for i, line := range headerLines {
		r := fmt.Sprintf("%d", i+1)
		if err := f.MergeCell(sheetName, "A"+r, lastCol+r); err != nil {
			return nil, fmt.Errorf("merge header row %s: %w", r, err)
		}
		f.SetCellValue(sheetName, "A"+r, sanitizeExcelCell(line.text))
		f.SetCellStyle(sheetName, "A"+r, lastCol+r, line.style)
	}

	// ── Row 6: Column Headers ───────────────────────────────────────────

	for i, c := range data.Columns {
		f.SetCellValue(sheetName, columns[i]+"6", c.Header)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	// ── Data Rows (starting row 7) ──────────────────────────────────────

	row := 7
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)
		if r.Cells == nil {
			if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
				return nil, fmt.Errorf("merge group row %d: %w", row, err)
			}
			f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.Label))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, groupStyle)
			row++
			continue
		}
		for i, cell := range r.Cells {
			f.SetCellValue(sheetName, columns[i]+rowStr, sanitizeExcelCell(cell))
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, bodyStyle)
		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++
	labelCol := columns[len(columns)-2]
	for _, line := range data.Summary {
		summaryRow := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, labelCol+summaryRow, sanitizeExcelCell(line.Label))
		f.SetCellStyle(sheetName, labelCol+summaryRow, labelCol+summaryRow, summaryLabelStyle)
		f.SetCellValue(sheetName, lastCol+summaryRow, line.Value)
		f.SetCellStyle(sheetName, lastCol+summaryRow, lastCol+summaryRow, summaryValueStyle)
		row++
	}

	if data.AmountInWords != "" {
		row++
		wordsRow := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+wordsRow, lastCol+wordsRow); err != nil {
			return nil, fmt.Errorf("merge amount in words: %w", err)
		}
		f.SetCellValue(sheetName, "A"+wordsRow, "Amount in Words: "+data.AmountInWords)
		f.SetCellStyle(sheetName, "A"+wordsRow, lastCol+wordsRow, subtitleStyle)
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell quotes customer-entered text that Excel would otherwise
// read as a formula (leading =, +, -, @, tab or CR).
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders is a thin border on every side of a cell.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
