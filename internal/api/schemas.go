package api

import (
	"github.com/directorspalette/palette-agent/internal/chunking"
	"github.com/directorspalette/palette-agent/internal/export"
	"github.com/directorspalette/palette-agent/internal/store"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// TextInput is shared by every request that carries source text.
type TextInput struct {
	Text        string `json:"text" validate:"required,max=1000000"`
	InputFormat string `json:"inputFormat,omitempty" validate:"omitempty,oneof=text markdown"`
	ParsingMode string `json:"parsingMode,omitempty" validate:"omitempty,oneof=punctuation lines hybrid"`
}

type ChunkRequest struct {
	TextInput
	TargetShotCount     int    `json:"targetShotCount" validate:"gte=0,lte=500"`
	MinWordsPerShot     int    `json:"minWordsPerShot,omitempty" validate:"gte=0"`
	MaxWordsPerShot     int    `json:"maxWordsPerShot,omitempty" validate:"gte=0"`
	PreferNaturalBreaks bool   `json:"preferNaturalBreaks,omitempty"`
	ContentType         string `json:"contentType,omitempty" validate:"omitempty,oneof=children_book lyrics story commercial"`
}

type ChunkResponse struct {
	Chunks []chunking.ShotChunk `json:"chunks"`
	Report chunking.Report      `json:"report"`
}

type BoundariesResponse struct {
	ParsingMode chunking.ParsingMode    `json:"parsingMode"`
	Boundaries  []chunking.TextBoundary `json:"boundaries"`
}

type SuggestionsResponse struct {
	Suggestions []chunking.ShotCountSuggestion `json:"suggestions"`
}

type PresetsResponse struct {
	Presets map[chunking.ContentType]chunking.Preset `json:"presets"`
}

// ExportRequest renders shots with either a stored template (by ID or name)
// or an inline config. A template takes precedence over Config.
type ExportRequest struct {
	Shots     []export.ShotData    `json:"shots" validate:"max=10000"`
	Config    *export.ExportConfig `json:"config,omitempty"`
	Template  string               `json:"template,omitempty"`
	Variables map[string]string    `json:"variables,omitempty"`
}

type ExportFileRequest struct {
	ExportRequest
	OutputDir   string `json:"outputDir,omitempty"`
	ProjectName string `json:"projectName,omitempty" validate:"max=200"`
}

type ExportFileResponse struct {
	Status     string        `json:"status"`
	Format     export.Format `json:"format"`
	OutputPath string        `json:"outputPath"`
	TotalShots int           `json:"totalShots"`
}

type TemplateRequest struct {
	Name        string              `json:"name" validate:"required,max=100"`
	Description string              `json:"description,omitempty" validate:"max=500"`
	Config      export.ExportConfig `json:"config"`
}

type TemplateResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Config      export.ExportConfig `json:"config"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
}

type TemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

func TemplateToResponse(t *store.Template) TemplateResponse {
	return TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Config:      t.Config,
		CreatedAt:   t.CreatedAt.Format(timeLayout),
		UpdatedAt:   t.UpdatedAt.Format(timeLayout),
	}
}

type ExportRecordResponse struct {
	ID          string        `json:"id"`
	TemplateID  string        `json:"templateId,omitempty"`
	ProjectName string        `json:"projectName"`
	Format      export.Format `json:"format"`
	TotalShots  int           `json:"totalShots"`
	OutputPath  string        `json:"outputPath"`
	CreatedAt   string        `json:"createdAt"`
}

type ExportsResponse struct {
	Exports []ExportRecordResponse `json:"exports"`
}

func ExportRecordToResponse(e *store.ExportRecord) ExportRecordResponse {
	return ExportRecordResponse{
		ID:          e.ID,
		TemplateID:  e.TemplateID,
		ProjectName: e.ProjectName,
		Format:      e.Format,
		TotalShots:  e.TotalShots,
		OutputPath:  e.OutputPath,
		CreatedAt:   e.CreatedAt.Format(timeLayout),
	}
}
