package flow

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	flowModel "github.com/prathimenon/synthetic-user-simulator/internal/model/flow"
	"github.com/prathimenon/synthetic-user-simulator/pkg/utils"
)

// Handler serves flow parsing over HTTP.
type Handler struct{}

// New creates the flow handler.
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes registers the flow routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/flow/parse", h.handleParse)
	r.Get("/flow/sample", h.handleSample)
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	steps := flowModel.Parse(payload.Text)
	if steps == nil {
		steps = []flowModel.Step{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"steps": steps})
}

func (h *Handler) handleSample(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"text": flowModel.Sample()})
}
