package simulation

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	simulationService "github.com/prathimenon/synthetic-user-simulator/internal/service/simulation"
)

// WebSocketHandler streams simulation progress over a WebSocket. The
// client sends one Request frame; the server replies with progress events
// as the simulation advances, then a final result frame.
type WebSocketHandler struct {
	simSvc   *simulationService.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the WebSocket handler.
func NewWebSocketHandler(simSvc *simulationService.Service) *WebSocketHandler {
	return &WebSocketHandler{
		simSvc: simSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes registers the WebSocket route.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/simulations/ws", h.handleWebSocket)
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req Request
	if err := conn.ReadJSON(&req); err != nil {
		h.writeError(conn, "invalid request frame")
		return
	}

	steps, msg := req.validate()
	if msg != "" {
		h.writeError(conn, msg)
		return
	}

	// The observer runs synchronously inside the sequential simulation
	// loop, so all writes happen on this goroutine.
	result, err := h.simSvc.Simulate(r.Context(), steps, req.Personas, func(event simulationService.Event) {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("[ws] write failed: %v", err)
		}
	})
	if err != nil {
		h.writeError(conn, err.Error())
		return
	}

	if err := conn.WriteJSON(map[string]any{"type": "result", "payload": result}); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}

func (h *WebSocketHandler) writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(map[string]any{"type": "error", "error": message}); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}
