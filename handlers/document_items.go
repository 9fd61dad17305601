package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

type insertRowRequest struct {
	// Position is 1-based; zero or out of range appends.
	Position int `json:"position" form:"position"`
}

type moveRowRequest struct {
	To int `json:"to" form:"to"`
}

// HandleRowInsert adds an empty ITEM row to the document.
func HandleRowInsert(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "insert row", err)
		}

		var req insertRowRequest
		if e.Request.ContentLength != 0 {
			if err := e.BindBody(&req); err != nil {
				return respondError(e, "insert row", fmt.Errorf("%w: invalid request body", services.ErrValidation))
			}
		}

		doc.InsertRow(req.Position)
		return saveEdited(e, app, s, doc, http.StatusCreated)
	}
}

// HandleRowUpdate applies a single field edit to a row. The body is
// {"field": ..., "value": ...} using the wire field names.
func HandleRowUpdate(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "update row", err)
		}
		req, err := bindFieldEdit(e)
		if err != nil {
			return respondError(e, "update row", err)
		}

		if err := doc.EditRowField(e.Request.PathValue("rowId"), req.Field, string(req.Value)); err != nil {
			return respondError(e, "update row", err)
		}
		return saveEdited(e, app, s, doc, http.StatusOK)
	}
}

// HandleRowDelete removes a row and renumbers the rest.
func HandleRowDelete(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "delete row", err)
		}
		if err := doc.RemoveRow(e.Request.PathValue("rowId")); err != nil {
			return respondError(e, "delete row", err)
		}
		return saveEdited(e, app, s, doc, http.StatusOK)
	}
}

// HandleRowMove moves a row to a new 1-based position.
func HandleRowMove(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "move row", err)
		}

		var req moveRowRequest
		if err := e.BindBody(&req); err != nil {
			return respondError(e, "move row", fmt.Errorf("%w: invalid request body", services.ErrValidation))
		}
		if err := doc.MoveRow(e.Request.PathValue("rowId"), req.To); err != nil {
			return respondError(e, "move row", err)
		}
		return saveEdited(e, app, s, doc, http.StatusOK)
	}
}
