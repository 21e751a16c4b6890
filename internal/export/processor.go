// Package export renders shot lists into deliverable text.
//
// ProcessShotsForExport never fails: malformed shots are formatted like any
// other shot and simply contribute their empty fields to the output.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{
	"Shot Number",
	"Description",
	"Chapter",
	"Section",
	"Director Style",
	"Source Type",
	"Timestamp",
}

type jsonShot struct {
	ID          string        `json:"id"`
	ShotNumber  int           `json:"shotNumber"`
	Description string        `json:"description"`
	Chapter     string        `json:"chapter"`
	Metadata    *ShotMetadata `json:"metadata,omitempty"`
}

type jsonDocument struct {
	Shots      []jsonShot `json:"shots"`
	TotalShots int        `json:"totalShots"`
}

// ProcessShotsForExport renders shots in input order using cfg. Unknown
// formats render as numbered.
func ProcessShotsForExport(shots []ShotData, cfg ExportConfig, variables map[string]string) ExportResult {
	start := time.Now()

	result := ExportResult{TotalShots: len(shots)}
	if len(shots) > 0 {
		texts := make([]string, len(shots))
		for i, shot := range shots {
			texts[i] = cfg.Prefix + processDescription(shot.Description, cfg, variables) + cfg.Suffix
		}
		result.FormattedText = render(shots, texts, cfg)
	}

	result.ProcessingTime = time.Since(start).Milliseconds()
	return result
}

func processDescription(desc string, cfg ExportConfig, variables map[string]string) string {
	desc = ReplaceVariables(desc, variables)
	if cfg.UseArtistDescriptions {
		desc = ReplaceArtistTags(desc, variables)
	}
	return desc
}

func render(shots []ShotData, texts []string, cfg ExportConfig) string {
	switch cfg.Format {
	case FormatText:
		return strings.Join(texts, cfg.Separator)
	case FormatJSON:
		return renderJSON(shots, texts, cfg.IncludeMetadata)
	case FormatCSV:
		return renderCSV(shots, texts)
	default:
		lines := make([]string, len(texts))
		for i, text := range texts {
			lines[i] = fmt.Sprintf("%d. %s", i+1, text)
		}
		return strings.Join(lines, cfg.Separator)
	}
}

func renderJSON(shots []ShotData, texts []string, includeMetadata bool) string {
	doc := jsonDocument{
		Shots:      make([]jsonShot, len(shots)),
		TotalShots: len(shots),
	}
	for i, shot := range shots {
		entry := jsonShot{
			ID:          shot.ID,
			ShotNumber:  shot.ShotNumber,
			Description: texts[i],
			Chapter:     shot.Chapter,
		}
		if includeMetadata {
			entry.Metadata = shot.Metadata
		}
		doc.Shots[i] = entry
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		// Only strings and ints are encoded.
		return "{}"
	}
	return string(out)
}

// renderCSV quotes every field, unlike encoding/csv which only quotes when
// needed. Consumers match the header text verbatim.
func renderCSV(shots []ShotData, texts []string) string {
	rows := make([]string, 0, len(shots)+1)
	rows = append(rows, csvRow(csvHeader))

	for i, shot := range shots {
		meta := shot.Metadata
		if meta == nil {
			meta = &ShotMetadata{}
		}
		rows = append(rows, csvRow([]string{
			strconv.Itoa(shot.ShotNumber),
			texts[i],
			shot.Chapter,
			meta.Section,
			meta.DirectorStyle,
			meta.SourceType,
			meta.Timestamp,
		}))
	}
	return strings.Join(rows, "\n")
}

func csvRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
