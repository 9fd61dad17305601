package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradeops/services"
	"tradeops/testhelpers"
)

func TestGetDocument_FromContext(t *testing.T) {
	expected := &services.Document{ID: "doc123", Number: "OFF-2603-001"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), DocumentKey, expected))

	got := GetDocument(req)
	if got == nil {
		t.Fatal("expected document, got nil")
	}
	if got.ID != expected.ID {
		t.Errorf("expected ID %q, got %q", expected.ID, got.ID)
	}
}

func TestGetDocument_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetDocument(req); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestDocumentMiddleware_LoadsDocument(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.CreateTestDocument(t, app, services.KindOffer, "Middleware Customer")

	req := newJSONRequest(http.MethodGet, "/api/documents/"+doc.ID, "", "id", doc.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := DocumentMiddleware(app)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	got := GetDocument(e.Request)
	if got == nil {
		t.Fatal("expected document in context")
	}
	if got.Customer != "Middleware Customer" {
		t.Errorf("expected customer %q, got %q", "Middleware Customer", got.Customer)
	}
}

func TestDocumentMiddleware_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newJSONRequest(http.MethodGet, "/api/documents/missing", "", "id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := DocumentMiddleware(app)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if GetDocument(e.Request) != nil {
		t.Error("expected no document in context")
	}
}

func TestRequestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	app := testhelpers.NewTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := RequestLogger()(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"http: request", "method=GET", "path=/api/documents"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got %q", want, out)
		}
	}
}
