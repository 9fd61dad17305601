package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
	"tradeops/templates"
)

// HandleDocumentGet returns the full document as JSON.
func HandleDocumentGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "get document", err)
		}
		return e.JSON(http.StatusOK, doc)
	}
}

// HandleDocumentView renders the read-only summary page. Documents that cannot
// be exported yet show their warning instead of the items table.
func HandleDocumentView(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			if services.IsNotFound(err) {
				return e.String(http.StatusNotFound, "Document not found")
			}
			slog.Error("document_view: load failed", "error", err)
			return e.String(http.StatusInternalServerError, "Failed to load document")
		}

		data := templates.DocumentSummaryData{
			ID:           doc.ID,
			Number:       doc.Number,
			Title:        doc.Title,
			Customer:     doc.Customer,
			Currency:     string(doc.Currency),
			ExchangeRate: services.FormatKRW(doc.ExchangeRate),
			Warning:      doc.Warning,
		}
		export, err := services.BuildExportData(doc, s.Company, s.Rates, time.Now())
		switch {
		case err == nil:
			data.Export = export
		case services.IsValidation(err):
			data.Warning = services.WarningMessage(err)
		default:
			slog.Error("document_view: build failed", "document", doc.ID, "error", err)
			return e.String(http.StatusInternalServerError, "Failed to build document")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.DocumentSummaryContent(data)
		} else {
			component = templates.DocumentSummaryPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
