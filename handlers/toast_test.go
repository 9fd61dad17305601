package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

func decodeToast(t *testing.T, header string) (toast, map[string]json.RawMessage) {
	t.Helper()

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(header), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	raw, ok := parsed["showToast"]
	if !ok {
		t.Fatal("expected showToast key in HX-Trigger JSON")
	}
	var got toast
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("showToast value is not valid JSON: %v", err)
	}
	return got, parsed
}

func TestSetToast_Types(t *testing.T) {
	tests := []struct {
		name      string
		toastType string
		message   string
	}{
		{"success", ToastSuccess, "Document saved"},
		{"warning", ToastWarning, "exchange rate is required"},
		{"error", ToastError, "Failed to export PDF"},
		{"special characters", ToastWarning, `<script>alert("x")</script> \ line1` + "\nline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := &core.RequestEvent{}
			e.Response = rec

			SetToast(e, tt.toastType, tt.message)

			got, _ := decodeToast(t, rec.Header().Get("HX-Trigger"))
			if got.Type != tt.toastType {
				t.Errorf("expected type %q, got %q", tt.toastType, got.Type)
			}
			if got.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, got.Message)
			}
		})
	}
}

func TestSetToast_MergesWithExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	rec.Header().Set("HX-Trigger", `{"totalsChanged":{"id":"doc1"}}`)

	SetToast(e, ToastSuccess, "Row added")

	got, parsed := decodeToast(t, rec.Header().Get("HX-Trigger"))
	if got.Message != "Row added" {
		t.Errorf("expected message %q, got %q", "Row added", got.Message)
	}
	var other map[string]string
	if err := json.Unmarshal(parsed["totalsChanged"], &other); err != nil {
		t.Fatalf("totalsChanged was not preserved: %v", err)
	}
	if other["id"] != "doc1" {
		t.Errorf("expected totalsChanged.id %q, got %q", "doc1", other["id"])
	}
}

func TestSetToast_OverwritesInvalidExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	rec.Header().Set("HX-Trigger", "notValidJSON")

	SetToast(e, ToastError, "Overwritten")

	got, parsed := decodeToast(t, rec.Header().Get("HX-Trigger"))
	if got.Message != "Overwritten" {
		t.Errorf("expected message %q, got %q", "Overwritten", got.Message)
	}
	if len(parsed) != 1 {
		t.Errorf("expected only showToast after overwrite, got %d keys", len(parsed))
	}
}

func TestSetToast_FlashCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	SetToast(e, ToastSuccess, "Saved")

	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash_toast" {
			flash = c
		}
	}
	if flash == nil {
		t.Fatal("expected flash_toast cookie")
	}
	if flash.MaxAge != 10 {
		t.Errorf("expected MaxAge 10, got %d", flash.MaxAge)
	}
}

func TestErrorToast_SetsReswapAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Request = httptest.NewRequest(http.MethodPost, "/api/documents/doc1/calculate", nil)
	e.Response = rec

	if err := ErrorToast(e, http.StatusUnprocessableEntity, "document has no items"); err != nil {
		t.Fatalf("ErrorToast returned error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Errorf("expected HX-Reswap none, got %q", rec.Header().Get("HX-Reswap"))
	}
	got, _ := decodeToast(t, rec.Header().Get("HX-Trigger"))
	if got.Type != ToastError {
		t.Errorf("expected error toast, got %q", got.Type)
	}
}
