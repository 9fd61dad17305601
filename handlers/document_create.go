package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

type createDocumentRequest struct {
	Kind         string     `json:"kind" form:"kind"`
	Currency     string     `json:"currency" form:"currency"`
	ExchangeRate fieldValue `json:"exchangeRate" form:"exchangeRate"`
	Title        string     `json:"title" form:"title"`
	Customer     string     `json:"customer" form:"customer"`
	Remark       string     `json:"remark" form:"remark"`
}

// HandleDocumentCreate creates an empty document and assigns its number. The
// currency defaults to the configured one.
func HandleDocumentCreate(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req createDocumentRequest
		if err := e.BindBody(&req); err != nil {
			return respondError(e, "create document", fmt.Errorf("%w: invalid request body", services.ErrValidation))
		}

		kind, err := services.ParseDocumentKind(req.Kind)
		if err != nil {
			return respondError(e, "create document", err)
		}
		currency := s.DefaultCurrency
		if strings.TrimSpace(req.Currency) != "" {
			if currency, err = services.ParseCurrency(req.Currency); err != nil {
				return respondError(e, "create document", err)
			}
		}
		rate, err := parseRate(string(req.ExchangeRate))
		if err != nil {
			return respondError(e, "create document", err)
		}

		doc := services.NewDocument(kind, currency, rate)
		doc.Title = strings.TrimSpace(req.Title)
		doc.Customer = strings.TrimSpace(req.Customer)
		doc.Remark = strings.TrimSpace(req.Remark)

		if err := services.CreateDocument(app, doc, time.Now()); err != nil {
			return respondError(e, "create document", err)
		}
		slog.Info("documents: created", "document", doc.ID, "number", doc.Number, "kind", doc.Kind)

		SetToast(e, ToastSuccess, fmt.Sprintf("%s created", doc.Number))
		return e.JSON(http.StatusCreated, doc)
	}
}
