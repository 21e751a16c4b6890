package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/directorspalette/palette-agent/internal/export"
)

// Template is a named, reusable export configuration.
type Template struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Config      export.ExportConfig `json:"config"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ExportRecord remembers a rendered export written to disk.
type ExportRecord struct {
	ID          string        `json:"id"`
	TemplateID  string        `json:"template_id,omitempty"`
	ProjectName string        `json:"project_name"`
	Format      export.Format `json:"format"`
	TotalShots  int           `json:"total_shots"`
	OutputPath  string        `json:"output_path"`
	CreatedAt   time.Time     `json:"created_at"`
}

const ConfigKeyAuthToken = "auth_token"

func NewID() string {
	return uuid.NewString()
}
