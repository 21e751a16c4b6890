package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/directorspalette/palette-agent/internal/chunking"
)

const timeLayout = time.RFC3339

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(CORSAllowlist())

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Settings, cfg.Logger))

		r.Get("/presets", presetsHandler())
		r.Post("/chunks", chunksHandler(cfg))
		r.Post("/boundaries", boundariesHandler(cfg))
		r.Post("/suggestions", suggestionsHandler(cfg))

		r.Post("/export", exportHandler(cfg))
		r.With(LoopbackGuard()).Post("/export/file", exportFileHandler(cfg))
		r.Get("/exports", listExportsHandler(cfg))

		r.Get("/templates", listTemplatesHandler(cfg))
		r.Post("/templates", createTemplateHandler(cfg))
		r.Get("/templates/{id}", getTemplateHandler(cfg))
		r.Delete("/templates/{id}", deleteTemplateHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: cfg.Version,
			UptimeS: uptime,
		})
	}
}

func presetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, PresetsResponse{Presets: chunking.ContentPresets})
	}
}
