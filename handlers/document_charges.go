package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

type addChargeRequest struct {
	Label string `json:"customCharge" form:"customCharge"`
}

// HandleChargeAdd appends a charge. The label may be a preset or free text.
func HandleChargeAdd(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "add charge", err)
		}

		var req addChargeRequest
		if e.Request.ContentLength != 0 {
			if err := e.BindBody(&req); err != nil {
				return respondError(e, "add charge", fmt.Errorf("%w: invalid request body", services.ErrValidation))
			}
		}

		doc.AddCharge(req.Label)
		return saveEdited(e, app, s, doc, http.StatusCreated)
	}
}

// HandleChargeUpdate applies a single field edit to a charge.
func HandleChargeUpdate(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "update charge", err)
		}
		req, err := bindFieldEdit(e)
		if err != nil {
			return respondError(e, "update charge", err)
		}

		op, err := services.ParseChargeEdit(req.Field, string(req.Value))
		if err != nil {
			return respondError(e, "update charge", err)
		}
		if err := doc.EditCharge(e.Request.PathValue("chargeId"), op); err != nil {
			return respondError(e, "update charge", err)
		}
		return saveEdited(e, app, s, doc, http.StatusOK)
	}
}

// HandleChargeDelete removes a charge.
func HandleChargeDelete(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "delete charge", err)
		}
		if err := doc.RemoveCharge(e.Request.PathValue("chargeId")); err != nil {
			return respondError(e, "delete charge", err)
		}
		return saveEdited(e, app, s, doc, http.StatusOK)
	}
}
