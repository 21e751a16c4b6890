package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/directorspalette/palette-agent/internal/store"
)

func listTemplatesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templates, err := cfg.Templates.ListTemplates(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list templates", "INTERNAL_ERROR")
			return
		}

		resp := TemplatesResponse{Templates: make([]TemplateResponse, len(templates))}
		for i, t := range templates {
			resp.Templates[i] = TemplateToResponse(t)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func createTemplateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TemplateRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		t, err := cfg.Templates.CreateTemplate(r.Context(), req.Name, req.Description, req.Config)
		switch {
		case errors.Is(err, store.ErrDuplicateTemplate):
			WriteError(w, http.StatusConflict, err.Error(), "CONFLICT")
			return
		case errors.Is(err, store.ErrInvalidTemplate):
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		case err != nil:
			WriteError(w, http.StatusInternalServerError, "failed to create template", "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusCreated, TemplateToResponse(t))
	}
}

func getTemplateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "template id required", "BAD_REQUEST")
			return
		}

		t, err := cfg.Templates.ResolveTemplate(r.Context(), id)
		if errors.Is(err, store.ErrTemplateNotFound) {
			WriteError(w, http.StatusNotFound, "template not found", "NOT_FOUND")
			return
		}
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, TemplateToResponse(t))
	}
}

func deleteTemplateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "template id required", "BAD_REQUEST")
			return
		}

		err := cfg.Templates.DeleteTemplate(r.Context(), id)
		if errors.Is(err, store.ErrTemplateNotFound) {
			WriteError(w, http.StatusNotFound, "template not found", "NOT_FOUND")
			return
		}
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
