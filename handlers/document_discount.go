package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// HandleDiscountUpdate sets one of dcPercent, dcKrw or dcGlobal; the other two
// follow.
func HandleDiscountUpdate(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "update discount", err)
		}
		req, err := bindFieldEdit(e)
		if err != nil {
			return respondError(e, "update discount", err)
		}

		op, err := services.ParseDiscountEdit(req.Field, string(req.Value))
		if err != nil {
			return respondError(e, "update discount", err)
		}
		doc.EditDiscount(op)
		return saveEdited(e, app, s, doc, http.StatusOK)
	}
}
