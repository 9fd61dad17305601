package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"tradeops/services"
)

// updateDocumentRequest holds the header fields of a PATCH. Absent fields are
// left unchanged.
type updateDocumentRequest struct {
	Title        *string     `json:"title"`
	Customer     *string     `json:"customer"`
	Remark       *string     `json:"remark"`
	Currency     *string     `json:"currency"`
	ExchangeRate *fieldValue `json:"exchangeRate"`
}

func parseRate(raw string) (decimal.Decimal, error) {
	rate, err := services.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("exchangeRate: %w", err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: exchange rate must not be negative", services.ErrValidation)
	}
	return rate, nil
}

// HandleDocumentUpdate edits the document header. A new exchange rate
// re-converts every row and charge from its basis side before the document is
// recalculated.
func HandleDocumentUpdate(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "update document", err)
		}

		var req updateDocumentRequest
		if err := e.BindBody(&req); err != nil {
			return respondError(e, "update document", fmt.Errorf("%w: invalid request body", services.ErrValidation))
		}

		if req.Currency != nil {
			c, err := services.ParseCurrency(*req.Currency)
			if err != nil {
				return respondError(e, "update document", err)
			}
			doc.Currency = c
		}
		if req.ExchangeRate != nil {
			rate, err := parseRate(string(*req.ExchangeRate))
			if err != nil {
				return respondError(e, "update document", err)
			}
			doc.SetExchangeRate(rate)
		}
		if req.Title != nil {
			doc.Title = strings.TrimSpace(*req.Title)
		}
		if req.Customer != nil {
			doc.Customer = strings.TrimSpace(*req.Customer)
		}
		if req.Remark != nil {
			doc.Remark = strings.TrimSpace(*req.Remark)
		}

		return saveEdited(e, app, s, doc, http.StatusOK)
	}
}
