package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfGrey     = &props.Color{Red: 100, Green: 100, Blue: 100}
	pdfCharcoal = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GenerateDocumentPDF renders a trading document as a tabular A4 PDF and
// returns the raw bytes.
func GenerateDocumentPDF(data *ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addDocHeader(m, data)
	addDocParties(m, data)
	addDocItemsTable(m, data)
	addDocSummary(m, data)
	addDocFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s PDF: %w", data.Kind, err)
	}

	return doc.GetBytes(), nil
}

// addDocHeader adds the company name, document title and number.
func addDocHeader(m core.Maroto, data *ExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.Company.Name, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(data.Title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: pdfCharcoal,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(joinNonEmpty([]string{data.Company.Address, data.Company.Email}, " | "), props.Text{
					Size:  8,
					Align: align.Left,
					Color: pdfGrey,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("No.: %s", data.DocNumber), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addDocParties adds the customer on the left and date and rate on the right.
func addDocParties(m core.Maroto, data *ExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: pdfGrey,
	}
	rightLabel := labelStyle
	rightLabel.Align = align.Right
	rightValue := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("MESSRS", labelStyle)),
			col.New(3).Add(text.New("Date:", rightLabel)),
			col.New(3).Add(text.New(data.Date, rightValue)),
		),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(data.Customer, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(3).Add(text.New("Exchange Rate:", rightLabel)),
			col.New(3).Add(text.New(data.ExchangeRate, rightValue)),
		),
	)

	m.AddRows(row.New(3))
}

// addDocItemsTable adds the item table. Columns come from data.Columns so each
// document kind prints its own layout.
func addDocItemsTable(m core.Maroto, data *ExportData) {
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: pdfWhite,
	}
	headerCell := &props.Cell{BackgroundColor: pdfCharcoal}

	header := row.New(8)
	for _, c := range data.Columns {
		header.Add(col.New(c.Width).Add(text.New(c.Header, headerText)).WithStyle(headerCell))
	}
	m.AddRows(header)

	altBg := &props.Cell{BackgroundColor: &props.Color{Red: 248, Green: 249, Blue: 250}}
	groupText := props.Text{Size: 7, Style: fontstyle.BoldItalic, Align: align.Left}

	for i, r := range data.Rows {
		if r.Cells == nil {
			m.AddRows(row.New(6).Add(col.New(12).Add(text.New(r.Label, groupText))))
			continue
		}

		body := row.New(7)
		for j, c := range data.Columns {
			style := props.Text{Size: 7, Align: align.Left}
			if c.Numeric {
				style.Align = align.Right
			}
			cell := col.New(c.Width).Add(text.New(r.Cells[j], style))
			if i%2 == 1 {
				cell = cell.WithStyle(altBg)
			}
			body.Add(cell)
		}
		m.AddRows(body)
	}

	m.AddRows(row.New(2))
}

// addDocSummary adds the right-aligned totals block and the amount in words.
func addDocSummary(m core.Maroto, data *ExportData) {
	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	grandCell := &props.Cell{BackgroundColor: pdfCharcoal}

	for _, line := range data.Summary {
		labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
		valueStyle := props.Text{Size: 8, Align: align.Right}
		cell := summaryCell
		height := 7.0
		if line.Emphasis {
			labelStyle.Size, valueStyle.Size = 9, 9
			valueStyle.Style = fontstyle.Bold
			labelStyle.Color, valueStyle.Color = pdfWhite, pdfWhite
			cell = grandCell
			height = 8
		}
		m.AddRows(
			row.New(height).Add(
				col.New(9).Add(text.New(line.Label, labelStyle)).WithStyle(cell),
				col.New(3).Add(text.New(line.Value, valueStyle)).WithStyle(cell),
			),
		)
	}

	m.AddRows(row.New(3))

	if data.AmountInWords != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Amount in Words: %s", data.AmountInWords), props.Text{
						Size:  8,
						Style: fontstyle.BoldItalic,
						Align: align.Left,
					}),
				),
			),
		)
	}
}

// addDocFooter adds the remark and the signature line.
func addDocFooter(m core.Maroto, data *ExportData) {
	if data.Remark != "" {
		m.AddRows(
			row.New(6).Add(col.New(12).Add(text.New("REMARK", props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: pdfGrey,
			}))),
		)
		m.AddRows(
			row.New(7).Add(col.New(12).Add(text.New(data.Remark, props.Text{Size: 8, Align: align.Left}))),
		)
	}

	m.AddRows(row.New(10))
	m.AddRows(
		row.New(6).Add(
			col.New(6),
			col.New(6).Add(text.New("____________________________", props.Text{
				Size:  8,
				Align: align.Center,
				Color: pdfGrey,
			})),
		),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(6),
			col.New(6).Add(text.New(fmt.Sprintf("For %s", data.Company.Name), props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: pdfGrey,
			})),
		),
	)
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}
