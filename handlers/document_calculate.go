package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// HandleDocumentCalculate recalculates and stores the document. When the
// document fails validation the cleared totals are still stored and the
// response is 422 with the warning and the document.
func HandleDocumentCalculate(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "calculate", err)
		}

		err = services.RecalculateAndSave(app, doc, s.Rates)
		switch {
		case err == nil:
			return e.JSON(http.StatusOK, doc)
		case services.IsValidation(err):
			WarningToast(e, doc.Warning)
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{
				"warning":  doc.Warning,
				"document": doc,
			})
		default:
			return respondError(e, "calculate", err)
		}
	}
}
