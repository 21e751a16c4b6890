package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/directorspalette/palette-agent/internal/db"
	"github.com/directorspalette/palette-agent/internal/export"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewService(NewRepository(database.Conn()), nil)
}

func TestCreateTemplate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cfg := export.ExportConfig{Prefix: "Scene: ", Suffix: ", cinematic", Separator: "\n"}
	tmpl, err := svc.CreateTemplate(ctx, "  noir ", "moody", cfg)
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}
	if tmpl.Name != "noir" {
		t.Errorf("Name = %q, want noir", tmpl.Name)
	}
	if tmpl.Config.Format != export.FormatNumbered {
		t.Errorf("Format = %q, want numbered default", tmpl.Config.Format)
	}

	got, err := svc.GetTemplate(ctx, tmpl.ID)
	if err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}
	if got.Config.Prefix != "Scene: " || got.Config.Suffix != ", cinematic" || got.Config.Separator != "\n" {
		t.Errorf("round-tripped config = %+v", got.Config)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not persisted")
	}
}

func TestCreateTemplate_Errors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateTemplate(ctx, "noir", "", export.ExportConfig{}); err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	tests := []struct {
		name    string
		tmpl    string
		cfg     export.ExportConfig
		wantErr error
	}{
		{"duplicate", "noir", export.ExportConfig{}, ErrDuplicateTemplate},
		{"blank name", "   ", export.ExportConfig{}, ErrInvalidTemplate},
		{"bad format", "other", export.ExportConfig{Format: "xml"}, ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTemplate(ctx, tt.tmpl, "", tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveTemplate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tmpl, err := svc.CreateTemplate(ctx, "lyrics", "", export.ExportConfig{Format: export.FormatText})
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	byID, err := svc.ResolveTemplate(ctx, tmpl.ID)
	if err != nil || byID.ID != tmpl.ID {
		t.Errorf("ResolveTemplate(id) = %v, %v", byID, err)
	}
	byName, err := svc.ResolveTemplate(ctx, "lyrics")
	if err != nil || byName.ID != tmpl.ID {
		t.Errorf("ResolveTemplate(name) = %v, %v", byName, err)
	}
	if _, err := svc.ResolveTemplate(ctx, "missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("ResolveTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestDeleteTemplate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tmpl, err := svc.CreateTemplate(ctx, "gone", "", export.ExportConfig{})
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}
	if err := svc.RecordExport(ctx, &ExportRecord{
		TemplateID:  tmpl.ID,
		ProjectName: "demo",
		Format:      export.FormatNumbered,
		TotalShots:  3,
		OutputPath:  "/tmp/demo.txt",
	}); err != nil {
		t.Fatalf("RecordExport() error = %v", err)
	}

	if err := svc.DeleteTemplate(ctx, tmpl.ID); err != nil {
		t.Fatalf("DeleteTemplate() error = %v", err)
	}
	if err := svc.DeleteTemplate(ctx, tmpl.ID); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("second DeleteTemplate() error = %v, want ErrTemplateNotFound", err)
	}

	records, err := svc.ListExports(ctx, 0)
	if err != nil {
		t.Fatalf("ListExports() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].TemplateID != "" {
		t.Errorf("TemplateID = %q, want cleared after delete", records[0].TemplateID)
	}
}

func TestListTemplates_SortedByName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if _, err := svc.CreateTemplate(ctx, name, "", export.ExportConfig{}); err != nil {
			t.Fatalf("CreateTemplate(%s) error = %v", name, err)
		}
	}

	list, err := svc.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	var names []string
	for _, tmpl := range list {
		names = append(names, tmpl.Name)
	}
	if got := strings.Join(names, ","); got != "alpha,bravo,charlie" {
		t.Errorf("names = %s", got)
	}
}

func TestEnsureAuthToken_Stable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.EnsureAuthToken(ctx)
	if err != nil {
		t.Fatalf("EnsureAuthToken() error = %v", err)
	}
	if len(first) != 64 {
		t.Errorf("token length = %d, want 64", len(first))
	}
	second, err := svc.EnsureAuthToken(ctx)
	if err != nil {
		t.Fatalf("EnsureAuthToken() error = %v", err)
	}
	if first != second {
		t.Error("token changed between calls")
	}
}

type failingConfigRepo struct {
	Repository
	setCalls int
}

var errConfigRead = errors.New("database is locked")

func (r *failingConfigRepo) GetConfig(ctx context.Context, key string) (string, error) {
	return "", errConfigRead
}

func (r *failingConfigRepo) SetConfig(ctx context.Context, key, value string) error {
	r.setCalls++
	return nil
}

func TestEnsureAuthToken_ReadErrorKeepsToken(t *testing.T) {
	repo := &failingConfigRepo{}
	svc := NewService(repo, nil)

	token, err := svc.EnsureAuthToken(context.Background())
	if !errors.Is(err, errConfigRead) {
		t.Fatalf("EnsureAuthToken() error = %v, want %v", err, errConfigRead)
	}
	if token != "" {
		t.Errorf("token = %q, want empty", token)
	}
	if repo.setCalls != 0 {
		t.Errorf("SetConfig called %d times, want 0", repo.setCalls)
	}
}

const sampleTOML = `
[[template]]
name = "noir"
description = "black and white"
prefix = "Noir shot: "
suffix = ""
format = "text"
separator = "\n---\n"
include_metadata = true

[[template]]
name = "ads"
format = "csv"
`

func TestImportExportTOML(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.ImportTOML(ctx, []byte(sampleTOML))
	if err != nil {
		t.Fatalf("ImportTOML() error = %v", err)
	}
	if res.Created != 2 || res.Updated != 0 {
		t.Errorf("result = %+v, want 2 created", res)
	}

	noir, err := svc.ResolveTemplate(ctx, "noir")
	if err != nil {
		t.Fatalf("ResolveTemplate() error = %v", err)
	}
	if noir.Config.Format != export.FormatText || noir.Config.Separator != "\n---\n" || !noir.Config.IncludeMetadata {
		t.Errorf("noir config = %+v", noir.Config)
	}

	res, err = svc.ImportTOML(ctx, []byte(sampleTOML))
	if err != nil {
		t.Fatalf("second ImportTOML() error = %v", err)
	}
	if res.Created != 0 || res.Updated != 2 {
		t.Errorf("second result = %+v, want 2 updated", res)
	}

	out, err := svc.ExportTOML(ctx)
	if err != nil {
		t.Fatalf("ExportTOML() error = %v", err)
	}

	other := newTestService(t)
	if _, err := other.ImportTOML(ctx, out); err != nil {
		t.Fatalf("re-import error = %v\n%s", err, out)
	}
	again, err := other.ResolveTemplate(ctx, "noir")
	if err != nil {
		t.Fatalf("ResolveTemplate() after re-import error = %v", err)
	}
	if again.Config != noir.Config || again.Description != noir.Description {
		t.Errorf("re-imported = %+v, want %+v", again, noir)
	}
}

func TestImportTOML_RejectsWholeFile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	data := `
[[template]]
name = "good"

[[template]]
name = "bad"
format = "xml"
`
	if _, err := svc.ImportTOML(ctx, []byte(data)); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("ImportTOML() error = %v, want ErrInvalidTemplate", err)
	}
	list, err := svc.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("templates written despite invalid file: %d", len(list))
	}
}

func TestImportTOML_Malformed(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ImportTOML(context.Background(), []byte("[[template]\nname=")); err == nil {
		t.Error("expected parse error")
	}
}
