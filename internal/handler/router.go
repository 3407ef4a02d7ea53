package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prathimenon/synthetic-user-simulator/internal/handler/flow"
	"github.com/prathimenon/synthetic-user-simulator/internal/handler/simulation"
	"github.com/prathimenon/synthetic-user-simulator/internal/handler/stream"
	middlewarePkg "github.com/prathimenon/synthetic-user-simulator/internal/middleware"
	simulationService "github.com/prathimenon/synthetic-user-simulator/internal/service/simulation"
	"github.com/prathimenon/synthetic-user-simulator/pkg/utils"
)

// NewRouter wires HTTP routes to core services. simSvc may be nil when
// the generative model is not configured; simulate routes then answer 503.
func NewRouter(simSvc *simulationService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS([]string{"*"}))

	flowHandler := flow.New()
	simulationHandler := simulation.New(simSvc)

	var streamHandler *stream.Handler
	if simSvc != nil {
		streamHandler = stream.New(simSvc)
	}

	r.Route("/api", func(api chi.Router) {
		flowHandler.RegisterRoutes(api)
		simulationHandler.RegisterRoutes(api)

		api.Get("/simulations/stream", func(w http.ResponseWriter, r *http.Request) {
			if streamHandler == nil {
				utils.RespondError(w, http.StatusServiceUnavailable, "simulation unavailable: generative model not configured")
				return
			}

			flowText := r.URL.Query().Get("flow")
			if flowText == "" {
				utils.RespondError(w, http.StatusBadRequest, "flow query parameter is required")
				return
			}

			personas := 5
			if raw := r.URL.Query().Get("personas"); raw != "" {
				n, err := strconv.Atoi(raw)
				if err != nil || n < 1 {
					utils.RespondError(w, http.StatusBadRequest, "personas must be a positive integer")
					return
				}
				personas = n
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, flowText, personas); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})

		if simSvc != nil {
			wsHandler := simulation.NewWebSocketHandler(simSvc)
			wsHandler.RegisterWebSocketRoutes(api)
		}
	})

	return r
}
