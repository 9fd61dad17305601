package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
	"tradeops/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

func testSettings() Settings {
	return Settings{
		Rates:           testhelpers.TestRates,
		Company:         services.Company{Name: "Test Trading Co.", Address: "Seoul", Email: "sales@test.example"},
		DefaultCurrency: services.USD,
	}
}

// newJSONRequest builds a request with a JSON body and the given path values
// (name, value pairs).
func newJSONRequest(method, target, body string, pathValues ...string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return req
}

// decodeDocument reads a document from a JSON response body.
func decodeDocument(t *testing.T, rec *httptest.ResponseRecorder) services.Document {
	t.Helper()
	var doc services.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("response is not a document: %v\nbody: %s", err, rec.Body.String())
	}
	return doc
}
