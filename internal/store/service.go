package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/directorspalette/palette-agent/internal/export"
)

var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrDuplicateTemplate = errors.New("template name already exists")
	ErrInvalidTemplate   = errors.New("invalid template")
)

type TemplateService interface {
	CreateTemplate(ctx context.Context, name, description string, cfg export.ExportConfig) (*Template, error)
	GetTemplate(ctx context.Context, id string) (*Template, error)
	ResolveTemplate(ctx context.Context, ref string) (*Template, error)
	ListTemplates(ctx context.Context) ([]*Template, error)
	DeleteTemplate(ctx context.Context, id string) error
	RecordExport(ctx context.Context, rec *ExportRecord) error
	ListExports(ctx context.Context, limit int) ([]*ExportRecord, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (s *Service) CreateTemplate(ctx context.Context, name, description string, cfg export.ExportConfig) (*Template, error) {
	name = strings.TrimSpace(name)
	cfg, err := normalizeConfig(name, cfg)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetTemplateByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTemplate, name)
	}

	now := s.now().UTC()
	t := &Template{
		ID:          NewID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Config:      cfg,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("template created", "template_id", t.ID, "name", t.Name)
	}
	return t, nil
}

// SaveTemplate creates the template or, when one with the same name exists,
// replaces its description and config. It reports whether a new row was made.
func (s *Service) SaveTemplate(ctx context.Context, name, description string, cfg export.ExportConfig) (*Template, bool, error) {
	name = strings.TrimSpace(name)
	cfg, err := normalizeConfig(name, cfg)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetTemplateByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		t, err := s.CreateTemplate(ctx, name, description, cfg)
		return t, err == nil, err
	}

	existing.Description = strings.TrimSpace(description)
	existing.Config = cfg
	existing.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateTemplate(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("failed to update template: %w", err)
	}
	return existing, false, nil
}

func (s *Service) GetTemplate(ctx context.Context, id string) (*Template, error) {
	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

// ResolveTemplate looks a template up by ID first, then by name.
func (s *Service) ResolveTemplate(ctx context.Context, ref string) (*Template, error) {
	t, err := s.repo.GetTemplate(ctx, ref)
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}
	t, err = s.repo.GetTemplateByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]*Template, error) {
	return s.repo.ListTemplates(ctx)
}

func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := s.GetTemplate(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("template deleted", "template_id", id)
	}
	return nil
}

func (s *Service) RecordExport(ctx context.Context, rec *ExportRecord) error {
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	if err := s.repo.CreateExport(ctx, rec); err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

func (s *Service) ListExports(ctx context.Context, limit int) ([]*ExportRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListExports(ctx, limit)
}

// EnsureAuthToken returns the stored API token, generating one on first use.
func (s *Service) EnsureAuthToken(ctx context.Context) (string, error) {
	existing, err := s.repo.GetConfig(ctx, ConfigKeyAuthToken)
	if err != nil {
		return "", fmt.Errorf("failed to read auth token: %w", err)
	}
	if existing != "" {
		return existing, nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := s.repo.SetConfig(ctx, ConfigKeyAuthToken, token); err != nil {
		return "", err
	}
	return token, nil
}

func normalizeConfig(name string, cfg export.ExportConfig) (export.ExportConfig, error) {
	if name == "" {
		return cfg, fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if cfg.Format == "" {
		cfg.Format = export.FormatNumbered
	}
	if _, ok := export.ParseFormat(string(cfg.Format)); !ok {
		return cfg, fmt.Errorf("%w: unknown format %q", ErrInvalidTemplate, cfg.Format)
	}
	return cfg, nil
}
