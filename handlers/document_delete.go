package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// HandleDocumentDelete removes a document together with its rows and charges.
func HandleDocumentDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if err := services.DeleteDocument(app, id); err != nil {
			return respondError(e, "delete document", err)
		}
		slog.Info("documents: deleted", "document", id)

		SetToast(e, ToastSuccess, "Document deleted")
		return e.NoContent(http.StatusNoContent)
	}
}
