// Package templates renders the server-side HTML views. The components are
// written in documents.templ; documents_templ.go is produced by templ generate.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

import "tradeops/services"

// DocumentListItem is one row of the document list page.
type DocumentListItem struct {
	ID       string
	Number   string
	Kind     string
	Title    string
	Customer string
	Total    string
	Warning  string
}

// DocumentSummaryData is the view model of the read-only document page.
type DocumentSummaryData struct {
	ID           string
	Number       string
	Title        string
	Customer     string
	Currency     string
	ExchangeRate string
	Warning      string
	Export       *services.ExportData
}
