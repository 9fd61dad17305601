package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

type contextKey string

const DocumentKey contextKey = "document"

// GetDocument extracts the document loaded by DocumentMiddleware from the
// request context.
func GetDocument(r *http.Request) *services.Document {
	if val, ok := r.Context().Value(DocumentKey).(*services.Document); ok {
		return val
	}
	return nil
}

// DocumentMiddleware loads the document named by the {id} path value with its
// rows and charges and stores it in the request context. Unknown IDs stop the
// chain with 404.
func DocumentMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.Next()
		}
		doc, err := services.LoadDocument(app, id)
		if err != nil {
			return respondError(e, "load document", err)
		}
		ctx := context.WithValue(e.Request.Context(), DocumentKey, doc)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// requestDocument returns the document from the context, loading it when the
// middleware did not run.
func requestDocument(e *core.RequestEvent, app *pocketbase.PocketBase) (*services.Document, error) {
	if doc := GetDocument(e.Request); doc != nil {
		return doc, nil
	}
	return services.LoadDocument(app, e.Request.PathValue("id"))
}

// RequestLogger logs one line per request with its status and duration.
func RequestLogger() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()

		attrs := []any{
			"method", e.Request.Method,
			"path", e.Request.URL.Path,
			"status", e.Status(),
			"duration", time.Since(start),
		}
		if err != nil {
			slog.Error("http: request failed", append(attrs, "error", err)...)
			return err
		}
		slog.Info("http: request", attrs...)
		return nil
	}
}
