package web

import (
	"net/http"

	"exercise-tracker/internal/metrics"
	"exercise-tracker/middleware"

	"github.com/gorilla/mux"
)

func (h *WebHandler) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.InstrumentHandler)

	// Landing page
	r.HandleFunc("/", h.Index).Methods("GET")
	r.PathPrefix("/public/").Handler(h.publicFiles()).Methods("GET")

	// Operational endpoints
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", h.userHandlers.CreateUser).Methods("POST")
	api.HandleFunc("/users", h.userHandlers.GetAllUsers).Methods("GET")
	api.HandleFunc("/users/{_id}/exercises", h.exerciseHandlers.CreateExercise).Methods("POST")
	api.HandleFunc("/users/{_id}/logs", h.exerciseHandlers.GetLogs).Methods("GET")

	// 404 handler
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	return r
}

// Handler wraps the routes with CORS, optional rate limiting and request
// logging, outermost last.
func (h *WebHandler) Handler() http.Handler {
	var handler http.Handler = h.SetupRoutes()
	if h.rateLimiter != nil {
		handler = h.rateLimiter.Handler(handler)
	}
	handler = middleware.SetupCORS(h.config.CORSAllowedOrigin)(handler)
	if h.logger != nil {
		handler = middleware.LoggingMiddleware(h.logger)(handler)
	}
	return handler
}
