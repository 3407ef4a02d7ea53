package simulation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	flowModel "github.com/prathimenon/synthetic-user-simulator/internal/model/flow"
	simulationService "github.com/prathimenon/synthetic-user-simulator/internal/service/simulation"
	"github.com/prathimenon/synthetic-user-simulator/pkg/utils"
)

const defaultPersonaCount = 5

// Request is the body shared by the REST and WebSocket simulate entry
// points.
type Request struct {
	FlowText string `json:"flowText"`
	Personas int    `json:"personas"`
}

// validate normalizes the request and parses its flow text into steps.
func (req *Request) validate() ([]flowModel.Step, string) {
	if strings.TrimSpace(req.FlowText) == "" {
		return nil, "flowText is required"
	}
	if req.Personas == 0 {
		req.Personas = defaultPersonaCount
	}
	if req.Personas < 1 {
		return nil, "personas must be positive"
	}

	steps := flowModel.Parse(req.FlowText)
	if len(steps) == 0 {
		return nil, "flow contains no steps"
	}
	return steps, ""
}

// Handler serves simulation runs over HTTP. A nil service means the
// generative model is not configured; simulate endpoints answer 503.
type Handler struct {
	simSvc *simulationService.Service
}

// New creates the simulation handler.
func New(simSvc *simulationService.Service) *Handler {
	return &Handler{simSvc: simSvc}
}

// RegisterRoutes registers the simulation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/simulations", h.handleCreate)
	r.Get("/simulations/{id}", h.handleGet)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if h.simSvc == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "simulation unavailable: generative model not configured")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	steps, msg := req.validate()
	if msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.simSvc.Simulate(r.Context(), steps, req.Personas, nil)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	if h.simSvc == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "simulation unavailable: generative model not configured")
		return
	}

	result, err := h.simSvc.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, simulationService.ErrResultNotFound) {
			utils.RespondError(w, http.StatusNotFound, "simulation not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}
