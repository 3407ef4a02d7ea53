package stream

import (
	"context"
	"fmt"
	"net/http"

	flowModel "github.com/prathimenon/synthetic-user-simulator/internal/model/flow"
	simulationService "github.com/prathimenon/synthetic-user-simulator/internal/service/simulation"
	"github.com/prathimenon/synthetic-user-simulator/pkg/utils"
)

// Handler streams simulation progress via Server-Sent Events.
type Handler struct {
	simSvc *simulationService.Service
}

// New creates a new stream handler.
func New(simSvc *simulationService.Service) *Handler {
	return &Handler{simSvc: simSvc}
}

// HandleStreamRequest runs one simulation and emits each progress event as
// an SSE chunk, ending with a done event carrying the result ID.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, flowText string, personaCount int) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	steps := flowModel.Parse(flowText)
	if len(steps) == 0 {
		h.sendSSEError(w, flusher, "flow contains no steps")
		return fmt.Errorf("flow contains no steps")
	}

	result, err := h.simSvc.Simulate(ctx, steps, personaCount, func(event simulationService.Event) {
		utils.SendSSEChunk(w, flusher, event)
	})
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("simulation failed: %v", err))
		return err
	}

	utils.SendSSEChunk(w, flusher, map[string]any{
		"type":    "done",
		"payload": map[string]string{"id": result.ID},
	})
	return nil
}

func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, message string) {
	utils.SendSSEChunk(w, flusher, map[string]any{
		"type":  "error",
		"error": message,
	})
}
