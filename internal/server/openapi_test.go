package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAPIDocument(t *testing.T) {
	h := handleOpenAPI()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}

	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Info    struct{ Title string }     `json:"info"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("decoding spec: %v", err)
	}

	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		t.Errorf("openapi version = %q", doc.OpenAPI)
	}
	if doc.Info.Title == "" {
		t.Error("spec has no title")
	}

	for _, path := range []string{
		"/api/session",
		"/api/journeys/{journeyID}/attempts",
		"/api/attempts/{attemptID}/challenge",
		"/api/attempts/{attemptID}/complete",
		"/api/admin/journeys",
	} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}
}
