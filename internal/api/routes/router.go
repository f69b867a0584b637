package routes

import (
	"net/http"

	"github.com/recalibr/recalibr/backend/internal/api/handlers"
	"github.com/recalibr/recalibr/backend/internal/api/middleware"
	"github.com/recalibr/recalibr/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	scrubHandler     *handlers.ScrubHandler
	referenceHandler *handlers.ReferenceHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	scrubHandler *handlers.ScrubHandler,
	referenceHandler *handlers.ReferenceHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		scrubHandler:     scrubHandler,
		referenceHandler: referenceHandler,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Scrub endpoint
	r.mux.HandleFunc("POST /api/scrub", r.scrubHandler.Scrub)

	// Reference data endpoints
	r.mux.HandleFunc("GET /api/reference/systems", r.referenceHandler.ListSystems)
	r.mux.HandleFunc("GET /api/reference/triggers", r.referenceHandler.ListTriggers)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
