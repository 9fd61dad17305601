package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// Settings carries the configuration handlers need beyond the app itself.
type Settings struct {
	Rates           services.ReferenceRates
	Company         services.Company
	DefaultCurrency services.Currency
}

// fieldValue accepts a JSON string or number and keeps its text, so amounts
// reach the decimal parser without a float round-trip.
type fieldValue string

func (v *fieldValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = fieldValue(s)
	default:
		*v = fieldValue(b)
	}
	return nil
}

// fieldEdit is the body of every single-field PATCH.
type fieldEdit struct {
	Field string     `json:"field" form:"field"`
	Value fieldValue `json:"value" form:"value"`
}

func bindFieldEdit(e *core.RequestEvent) (fieldEdit, error) {
	var req fieldEdit
	if err := e.BindBody(&req); err != nil {
		return req, fmt.Errorf("%w: invalid request body", services.ErrValidation)
	}
	req.Field = strings.TrimSpace(req.Field)
	if req.Field == "" {
		return req, fmt.Errorf("%w: field is required", services.ErrValidation)
	}
	return req, nil
}

// respondError maps service errors onto HTTP statuses: 404 for unknown
// documents and rows, 422 with a warning toast for validation failures and 500
// for everything else.
func respondError(e *core.RequestEvent, op string, err error) error {
	switch {
	case services.IsNotFound(err):
		slog.Debug("handlers: not found", "op", op, "error", err)
		return e.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case services.IsValidation(err):
		msg := services.WarningMessage(err)
		WarningToast(e, msg)
		e.Response.Header().Set("HX-Reswap", "none")
		return e.JSON(http.StatusUnprocessableEntity, map[string]string{"error": msg})
	default:
		slog.Error("handlers: request failed", "op", op, "error", err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong")
	}
}

// saveEdited recalculates and stores doc after an edit. A validation failure
// is not an error here: the document is saved with its warning and the client
// is shown a toast.
func saveEdited(e *core.RequestEvent, app core.App, s Settings, doc *services.Document, status int) error {
	err := services.RecalculateAndSave(app, doc, s.Rates)
	if err != nil && !services.IsValidation(err) {
		return respondError(e, "save document", err)
	}
	if doc.Warning != "" {
		WarningToast(e, doc.Warning)
	}
	return e.JSON(status, doc)
}
