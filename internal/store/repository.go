package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/directorspalette/palette-agent/internal/export"
)

type Repository interface {
	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, id string) (*Template, error)
	GetTemplateByName(ctx context.Context, name string) (*Template, error)
	ListTemplates(ctx context.Context) ([]*Template, error)
	UpdateTemplate(ctx context.Context, t *Template) error
	DeleteTemplate(ctx context.Context, id string) error

	CreateExport(ctx context.Context, e *ExportRecord) error
	ListExports(ctx context.Context, limit int) ([]*ExportRecord, error)

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const templateColumns = `id, name, description, prefix, suffix, use_artist_descriptions, format, separator, include_metadata, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepository) CreateTemplate(ctx context.Context, t *Template) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO templates (`+templateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Description, t.Config.Prefix, t.Config.Suffix, boolToInt(t.Config.UseArtistDescriptions),
		string(t.Config.Format), t.Config.Separator, boolToInt(t.Config.IncludeMetadata),
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetTemplate(ctx context.Context, id string) (*Template, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	return nilIfNoRows(scanTemplate(row))
}

func (r *SQLiteRepository) GetTemplateByName(ctx context.Context, name string) (*Template, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE name = ?`, name)
	return nilIfNoRows(scanTemplate(row))
}

func (r *SQLiteRepository) ListTemplates(ctx context.Context) ([]*Template, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+templateColumns+` FROM templates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *SQLiteRepository) UpdateTemplate(ctx context.Context, t *Template) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE templates SET name = ?, description = ?, prefix = ?, suffix = ?, use_artist_descriptions = ?,
			format = ?, separator = ?, include_metadata = ?, updated_at = ?
		WHERE id = ?
	`, t.Name, t.Description, t.Config.Prefix, t.Config.Suffix, boolToInt(t.Config.UseArtistDescriptions),
		string(t.Config.Format), t.Config.Separator, boolToInt(t.Config.IncludeMetadata),
		t.UpdatedAt.Format(time.RFC3339), t.ID)
	return err
}

func (r *SQLiteRepository) DeleteTemplate(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id)
	return err
}

func scanTemplate(row rowScanner) (*Template, error) {
	var t Template
	var format, createdAt, updatedAt string
	var artist, metadata int

	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Config.Prefix, &t.Config.Suffix, &artist,
		&format, &t.Config.Separator, &metadata, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.Config.UseArtistDescriptions = artist == 1
	t.Config.IncludeMetadata = metadata == 1
	t.Config.Format = export.Format(format)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &t, nil
}

func (r *SQLiteRepository) CreateExport(ctx context.Context, e *ExportRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exports (id, template_id, project_name, format, total_shots, output_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, nullString(e.TemplateID), e.ProjectName, string(e.Format), e.TotalShots, e.OutputPath, e.CreatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) ListExports(ctx context.Context, limit int) ([]*ExportRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, template_id, project_name, format, total_shots, output_path, created_at
		FROM exports ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*ExportRecord
	for rows.Next() {
		var e ExportRecord
		var templateID sql.NullString
		var format, createdAt string
		if err := rows.Scan(&e.ID, &templateID, &e.ProjectName, &format, &e.TotalShots, &e.OutputPath, &createdAt); err != nil {
			return nil, err
		}
		e.TemplateID = templateID.String
		e.Format = export.Format(format)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, &e)
	}
	return records, rows.Err()
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func nilIfNoRows(t *Template, err error) (*Template, error) {
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
