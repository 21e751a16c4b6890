package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/directorspalette/palette-agent/internal/export"
	"github.com/directorspalette/palette-agent/internal/store"
)

// resolveConfig picks the export config for a request and returns the ID of
// the template it came from, if any.
func resolveConfig(r *http.Request, cfg ServerConfig, req ExportRequest) (export.ExportConfig, string, error) {
	if req.Template != "" {
		if cfg.Templates == nil {
			return export.ExportConfig{}, "", store.ErrTemplateNotFound
		}
		t, err := cfg.Templates.ResolveTemplate(r.Context(), req.Template)
		if err != nil {
			return export.ExportConfig{}, "", err
		}
		return t.Config, t.ID, nil
	}
	if req.Config != nil {
		return *req.Config, "", nil
	}

	def := export.DefaultConfig()
	if cfg.Defaults.ExportFormat != "" {
		def.Format = cfg.Defaults.ExportFormat
	}
	return def, "", nil
}

func writeConfigError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrTemplateNotFound) {
		WriteError(w, http.StatusNotFound, "template not found", "NOT_FOUND")
		return
	}
	WriteError(w, http.StatusInternalServerError, "failed to load template", "INTERNAL_ERROR")
}

func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExportRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		exportCfg, _, err := resolveConfig(r, cfg, req)
		if err != nil {
			writeConfigError(w, err)
			return
		}

		WriteJSON(w, http.StatusOK, export.ProcessShotsForExport(req.Shots, exportCfg, req.Variables))
	}
}

func exportFileHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExportFileRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		outputDir := req.OutputDir
		if outputDir == "" {
			outputDir = cfg.Defaults.ExportDir
		}
		if err := export.ValidateOutputDir(outputDir); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		exportCfg, templateID, err := resolveConfig(r, cfg, req.ExportRequest)
		if err != nil {
			writeConfigError(w, err)
			return
		}

		format, ok := export.ParseFormat(string(exportCfg.Format))
		if !ok {
			format = export.FormatNumbered
		}

		result := export.ProcessShotsForExport(req.Shots, exportCfg, req.Variables)
		outputPath, err := export.WriteExport(result, format, outputDir, req.ProjectName)
		if err != nil {
			cfg.Logger.Error("export write failed", "error", err, "dir", outputDir)
			WriteError(w, http.StatusInternalServerError, "failed to write export file", "INTERNAL_ERROR")
			return
		}

		if cfg.Templates != nil {
			rec := &store.ExportRecord{
				TemplateID:  templateID,
				ProjectName: req.ProjectName,
				Format:      format,
				TotalShots:  result.TotalShots,
				OutputPath:  outputPath,
			}
			if err := cfg.Templates.RecordExport(r.Context(), rec); err != nil {
				cfg.Logger.Warn("failed to record export", "error", err, "path", outputPath)
			}
		}

		WriteJSON(w, http.StatusOK, ExportFileResponse{
			Status:     "ok",
			Format:     format,
			OutputPath: outputPath,
			TotalShots: result.TotalShots,
		})
	}
}

// listExportsHandler returns the most recent file exports, newest first.
// ?limit caps the result and defaults to 50.
func listExportsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 500 {
				WriteError(w, http.StatusBadRequest, "limit must be between 1 and 500", "BAD_REQUEST")
				return
			}
			limit = n
		}

		resp := ExportsResponse{Exports: []ExportRecordResponse{}}
		if cfg.Templates == nil {
			WriteJSON(w, http.StatusOK, resp)
			return
		}

		records, err := cfg.Templates.ListExports(r.Context(), limit)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list exports", "INTERNAL_ERROR")
			return
		}
		for _, rec := range records {
			resp.Exports = append(resp.Exports, ExportRecordToResponse(rec))
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
