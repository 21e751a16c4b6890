package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/directorspalette/palette-agent/internal/export"
	"github.com/directorspalette/palette-agent/internal/store"
)

type exportFlags struct {
	template           string
	format             string
	prefix             string
	suffix             string
	separator          string
	includeMetadata    bool
	artistDescriptions bool
	variables          map[string]string
	outputDir          string
	project            string
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export [shots.json]",
		Short: "Format a shot list for export",
		Long: "Reads shots as a JSON array (or an object with a \"shots\" array) from the file or stdin\n" +
			"and prints the formatted text, or writes it to --output-dir.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shots, err := readShots(cmd, args)
			if err != nil {
				return err
			}

			exportCfg, templateID, err := f.resolve(ctx, cmd)
			if err != nil {
				return err
			}

			result := export.ProcessShotsForExport(shots, exportCfg, f.variables)

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outputDir := f.outputDir
			if outputDir == "" && f.project != "" {
				outputDir = cfg.ExportDir()
			}
			if outputDir == "" {
				// Piped output stays the raw text unless JSON was asked for.
				if ctx.explicitJSON() {
					return writeJSON(cmd, result)
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.FormattedText)
				return nil
			}

			format, ok := export.ParseFormat(string(exportCfg.Format))
			if !ok {
				format = export.FormatNumbered
			}
			path, err := export.WriteExport(result, format, outputDir, f.project)
			if err != nil {
				return fmt.Errorf("write export: %w", err)
			}

			err = ctx.withStore(func(svc *store.Service) error {
				return svc.RecordExport(cmd.Context(), &store.ExportRecord{
					TemplateID:  templateID,
					ProjectName: f.project,
					Format:      format,
					TotalShots:  result.TotalShots,
					OutputPath:  path,
				})
			})
			if err != nil {
				ctx.logger().Warn("failed to record export", "error", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d shots to %s\n", result.TotalShots, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Stored template ID or name")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Format: numbered, text, json or csv")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Text added before every description")
	cmd.Flags().StringVar(&f.suffix, "suffix", "", "Text added after every description")
	cmd.Flags().StringVar(&f.separator, "separator", "", `Separator between shots (default "\n\n")`)
	cmd.Flags().BoolVar(&f.includeMetadata, "metadata", false, "Include shot metadata in JSON output")
	cmd.Flags().BoolVar(&f.artistDescriptions, "artist-descriptions", false, "Replace @artist tags with their --var values")
	cmd.Flags().StringToStringVar(&f.variables, "var", nil, "Variable substitution key=value (repeatable)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "", "Write the export to this directory")
	cmd.Flags().StringVar(&f.project, "project", "", "Project name for the export file; writes to PALETTE_EXPORT_DIR when --output-dir is unset")
	return cmd
}

// resolve builds the export config: the stored template (or the defaults)
// with any explicitly set flags layered on top.
func (f *exportFlags) resolve(ctx *commandContext, cmd *cobra.Command) (export.ExportConfig, string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return export.ExportConfig{}, "", err
	}

	exportCfg := export.DefaultConfig()
	exportCfg.Format = cfg.ExportFormat()
	templateID := ""

	if f.template != "" {
		err := ctx.withStore(func(svc *store.Service) error {
			t, err := svc.ResolveTemplate(cmd.Context(), f.template)
			if err != nil {
				return fmt.Errorf("template %q: %w", f.template, err)
			}
			exportCfg = t.Config
			templateID = t.ID
			return nil
		})
		if err != nil {
			return export.ExportConfig{}, "", err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		format, ok := export.ParseFormat(f.format)
		if !ok {
			return export.ExportConfig{}, "", fmt.Errorf("invalid --format %q (want numbered, text, json or csv)", f.format)
		}
		exportCfg.Format = format
	}
	if flags.Changed("prefix") {
		exportCfg.Prefix = f.prefix
	}
	if flags.Changed("suffix") {
		exportCfg.Suffix = f.suffix
	}
	if flags.Changed("separator") {
		exportCfg.Separator = unescape(f.separator)
	}
	if flags.Changed("metadata") {
		exportCfg.IncludeMetadata = f.includeMetadata
	}
	if flags.Changed("artist-descriptions") {
		exportCfg.UseArtistDescriptions = f.artistDescriptions
	}
	return exportCfg, templateID, nil
}

func readShots(cmd *cobra.Command, args []string) ([]export.ShotData, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read shots: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc struct {
			Shots []export.ShotData `json:"shots"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parse shots: %w", err)
		}
		return doc.Shots, nil
	}

	var shots []export.ShotData
	if err := json.Unmarshal(trimmed, &shots); err != nil {
		return nil, fmt.Errorf("parse shots: %w", err)
	}
	return shots, nil
}

// unescape turns the \n and \t sequences typed on a command line into real
// characters.
func unescape(s string) string {
	var b bytes.Buffer
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
