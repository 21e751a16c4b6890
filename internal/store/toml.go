package store

import (
	"context"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/directorspalette/palette-agent/internal/export"
)

// templateFile is the on-disk layout of a template set:
//
//	[[template]]
//	name = "noir"
//	prefix = "Scene: "
//	format = "numbered"
type templateFile struct {
	Templates []templateEntry `toml:"template"`
}

type templateEntry struct {
	Name                  string `toml:"name"`
	Description           string `toml:"description,omitempty"`
	Prefix                string `toml:"prefix"`
	Suffix                string `toml:"suffix"`
	Format                string `toml:"format"`
	Separator             string `toml:"separator"`
	IncludeMetadata       bool   `toml:"include_metadata"`
	UseArtistDescriptions bool   `toml:"use_artist_descriptions"`
}

type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// ImportTOML saves every template in data, replacing same-named ones. It
// validates the whole file before writing anything.
func (s *Service) ImportTOML(ctx context.Context, data []byte) (ImportResult, error) {
	var file templateFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return ImportResult{}, fmt.Errorf("failed to parse template file: %w", err)
	}

	for i, e := range file.Templates {
		if _, err := normalizeConfig(e.Name, e.config()); err != nil {
			return ImportResult{}, fmt.Errorf("template %d: %w", i+1, err)
		}
	}

	var res ImportResult
	for _, e := range file.Templates {
		_, created, err := s.SaveTemplate(ctx, e.Name, e.Description, e.config())
		if err != nil {
			return res, fmt.Errorf("failed to save template %q: %w", e.Name, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}

	if s.logger != nil {
		s.logger.Info("templates imported", "created", res.Created, "updated", res.Updated)
	}
	return res, nil
}

func (s *Service) ExportTOML(ctx context.Context) ([]byte, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}

	file := templateFile{Templates: make([]templateEntry, 0, len(templates))}
	for _, t := range templates {
		file.Templates = append(file.Templates, templateEntry{
			Name:                  t.Name,
			Description:           t.Description,
			Prefix:                t.Config.Prefix,
			Suffix:                t.Config.Suffix,
			Format:                string(t.Config.Format),
			Separator:             t.Config.Separator,
			IncludeMetadata:       t.Config.IncludeMetadata,
			UseArtistDescriptions: t.Config.UseArtistDescriptions,
		})
	}

	out, err := toml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode templates: %w", err)
	}
	return out, nil
}

func (e templateEntry) config() export.ExportConfig {
	return export.ExportConfig{
		Prefix:                e.Prefix,
		Suffix:                e.Suffix,
		UseArtistDescriptions: e.UseArtistDescriptions,
		Format:                export.Format(e.Format),
		Separator:             e.Separator,
		IncludeMetadata:       e.IncludeMetadata,
	}
}
