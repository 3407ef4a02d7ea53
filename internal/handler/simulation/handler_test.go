package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	flowModel "github.com/prathimenon/synthetic-user-simulator/internal/model/flow"
	"github.com/prathimenon/synthetic-user-simulator/internal/model/persona"
	model "github.com/prathimenon/synthetic-user-simulator/internal/model/simulation"
	simulationService "github.com/prathimenon/synthetic-user-simulator/internal/service/simulation"
)

type stubGenerator struct {
	personas []persona.Persona
	err      error
}

func (s *stubGenerator) GeneratePersonas(_ context.Context, _ string, _ int) ([]persona.Persona, error) {
	return s.personas, s.err
}

type stubDecider struct {
	action model.Action
	err    error
}

func (s *stubDecider) DecideStep(_ context.Context, _ persona.Persona, step flowModel.Step) (model.StepEvent, error) {
	if s.err != nil {
		return model.StepEvent{}, s.err
	}
	return model.StepEvent{StepID: step.ID, Action: s.action, Friction: 4}, nil
}

func setupRouter(gen simulationService.PersonaGenerator, dec simulationService.StepDecider) (*chi.Mux, *simulationService.Service) {
	simSvc := simulationService.NewService(gen, dec)
	r := chi.NewRouter()
	New(simSvc).RegisterRoutes(r)
	return r, simSvc
}

func simulateRequest(t *testing.T, r http.Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/simulations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateSimulation(t *testing.T) {
	gen := &stubGenerator{personas: []persona.Persona{{ID: 0, Name: "Ada"}}}
	r, _ := setupRouter(gen, &stubDecider{action: model.ActionContinue})

	resp := simulateRequest(t, r, map[string]any{
		"flowText": "Landing - Hero\nCheckout - Pay",
		"personas": 1,
	})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var result model.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.ID == "" {
		t.Fatal("expected result id")
	}
	if len(result.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(result.Runs))
	}
	if result.Summary.ConversionRate != 1.0 {
		t.Fatalf("unexpected conversion rate: %f", result.Summary.ConversionRate)
	}
}

func TestCreateSimulationMissingFlow(t *testing.T) {
	r, _ := setupRouter(&stubGenerator{}, &stubDecider{action: model.ActionContinue})

	resp := simulateRequest(t, r, map[string]any{"personas": 3})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateSimulationNegativePersonas(t *testing.T) {
	r, _ := setupRouter(&stubGenerator{}, &stubDecider{action: model.ActionContinue})

	resp := simulateRequest(t, r, map[string]any{"flowText": "Landing - Hero", "personas": -2})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateSimulationGenerationFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("failed to parse persona response: missing json object")}
	r, _ := setupRouter(gen, &stubDecider{action: model.ActionContinue})

	resp := simulateRequest(t, r, map[string]any{"flowText": "Landing - Hero"})

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestCreateSimulationUnavailable(t *testing.T) {
	r := chi.NewRouter()
	New(nil).RegisterRoutes(r)

	resp := simulateRequest(t, r, map[string]any{"flowText": "Landing - Hero"})

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestGetSimulation(t *testing.T) {
	gen := &stubGenerator{personas: []persona.Persona{{ID: 0, Name: "Ada"}}}
	r, simSvc := setupRouter(gen, &stubDecider{action: model.ActionContinue})

	created, err := simSvc.Simulate(context.Background(), flowModel.Parse("Landing - Hero"), 1, nil)
	if err != nil {
		t.Fatalf("Simulate err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/simulations/"+created.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result model.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.ID != created.ID {
		t.Fatalf("unexpected result id: %s", result.ID)
	}
}

func TestGetSimulationNotFound(t *testing.T) {
	r, _ := setupRouter(&stubGenerator{}, &stubDecider{action: model.ActionContinue})

	req := httptest.NewRequest(http.MethodGet, "/simulations/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
