package flow

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	flowModel "github.com/prathimenon/synthetic-user-simulator/internal/model/flow"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New().RegisterRoutes(r)
	return r
}

func TestParseFlowValidInput(t *testing.T) {
	r := setupRouter()
	payload, _ := json.Marshal(map[string]string{
		"text": "1. Landing - Hero\n2. Sign Up - Email and password",
	})

	req := httptest.NewRequest(http.MethodPost, "/flow/parse", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Steps []flowModel.Step `json:"steps"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(body.Steps))
	}
	if body.Steps[0].Name != "Landing" {
		t.Fatalf("unexpected name: %q", body.Steps[0].Name)
	}
}

func TestParseFlowEmptyText(t *testing.T) {
	r := setupRouter()
	payload := []byte(`{"text":"   "}`)

	req := httptest.NewRequest(http.MethodPost, "/flow/parse", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestParseFlowInvalidBody(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/flow/parse", bytes.NewReader([]byte("not json")))
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSampleFlow(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/flow/sample", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["text"] == "" {
		t.Fatal("expected sample flow text")
	}
}
