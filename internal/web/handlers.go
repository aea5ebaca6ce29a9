package web

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"time"

	"exercise-tracker/db"
	"exercise-tracker/internal/config"
	"exercise-tracker/internal/exercise"
	"exercise-tracker/internal/httpapi"
	"exercise-tracker/internal/user"
	"exercise-tracker/middleware"

	"github.com/sirupsen/logrus"
)

//go:embed views/index.html public
var assets embed.FS

type WebHandler struct {
	userHandlers     *user.UserHandlers
	exerciseHandlers *exercise.ExerciseHandlers
	store            db.Repository
	config           *config.Config
	logger           logrus.FieldLogger
	rateLimiter      *middleware.RateLimiter
}

func NewWebHandler(
	userHandlers *user.UserHandlers,
	exerciseHandlers *exercise.ExerciseHandlers,
	store db.Repository,
	config *config.Config,
	logger logrus.FieldLogger,
) *WebHandler {
	h := &WebHandler{
		userHandlers:     userHandlers,
		exerciseHandlers: exerciseHandlers,
		store:            store,
		config:           config,
		logger:           logger,
	}
	if config.RateLimitRPS > 0 {
		h.rateLimiter = middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst, logger)
	}
	return h
}

// RateLimiter returns the per-client limiter, or nil when rate limiting is
// disabled
func (h *WebHandler) RateLimiter() *middleware.RateLimiter {
	return h.rateLimiter
}

func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := assets.ReadFile("views/index.html")
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (h *WebHandler) publicFiles() http.Handler {
	public, err := fs.Sub(assets, "public")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/public/", http.FileServer(http.FS(public)))
}

func (h *WebHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		if h.logger != nil {
			h.logger.WithError(err).Warn("Health check failed")
		}
		httpapi.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *WebHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	httpapi.WriteJSON(w, http.StatusNotFound, httpapi.ErrorBody{Error: "Not found"})
}
