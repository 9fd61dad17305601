package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// Toast types understood by the client script.
const (
	ToastSuccess = "success"
	ToastWarning = "warning"
	ToastError   = "error"
)

type toast struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX. An existing HX-Trigger JSON object keeps its other
// events. A short-lived flash cookie carries the same toast across regular
// redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	t := toast{Message: message, Type: toastType}

	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			slog.Warn("toast: existing HX-Trigger is not valid JSON, overwriting", "error", err)
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = t

	data, err := json.Marshal(trigger)
	if err != nil {
		slog.Error("toast: failed to marshal HX-Trigger JSON", "error", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	cookieVal, err := json.Marshal(t)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "flash_toast",
		Value:    url.QueryEscape(string(cookieVal)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // read by the client script
		SameSite: http.SameSiteLaxMode,
	})
}

// WarningToast shows a validation message without blocking the HTMX swap.
func WarningToast(e *core.RequestEvent, message string) {
	SetToast(e, ToastWarning, message)
}

// ErrorToast sets an error toast and tells HTMX not to swap the response body
// into the DOM. The JSON body is still written for API clients.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, ToastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.JSON(statusCode, map[string]string{"error": message})
}
