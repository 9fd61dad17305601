package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
	"tradeops/templates"
)

// HandleDocumentList returns document summaries as JSON, newest first. The
// optional ?kind= query narrows the list.
func HandleDocumentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, err := kindFilter(e)
		if err != nil {
			return respondError(e, "list documents", err)
		}
		docs, err := services.ListDocuments(app, kind)
		if err != nil {
			return respondError(e, "list documents", err)
		}
		return e.JSON(http.StatusOK, docs)
	}
}

// HandleDocumentListPage renders the document list as HTML.
func HandleDocumentListPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, err := kindFilter(e)
		if err != nil {
			return respondError(e, "list documents", err)
		}
		docs, err := services.ListDocuments(app, kind)
		if err != nil {
			return respondError(e, "list documents", err)
		}

		items := make([]templates.DocumentListItem, len(docs))
		for i, d := range docs {
			items[i] = templates.DocumentListItem{
				ID:       d.ID,
				Number:   d.Number,
				Kind:     string(d.Kind),
				Title:    d.Title,
				Customer: d.Customer,
				Total:    services.FormatForeign(d.SalesGlobal, d.Currency),
				Warning:  d.Warning,
			}
		}
		return templates.DocumentListPage(items).Render(e.Request.Context(), e.Response)
	}
}

func kindFilter(e *core.RequestEvent) (services.DocumentKind, error) {
	raw := e.Request.URL.Query().Get("kind")
	if raw == "" {
		return "", nil
	}
	return services.ParseDocumentKind(raw)
}
