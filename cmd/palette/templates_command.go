package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/directorspalette/palette-agent/internal/store"
)

func newTemplatesCommand(ctx *commandContext) *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage stored export templates",
	}

	templatesCmd.AddCommand(newTemplatesListCommand(ctx))
	templatesCmd.AddCommand(newTemplatesImportCommand(ctx))
	templatesCmd.AddCommand(newTemplatesExportCommand(ctx))
	templatesCmd.AddCommand(newTemplatesDeleteCommand(ctx))

	return templatesCmd
}

func newTemplatesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(svc *store.Service) error {
				templates, err := svc.ListTemplates(cmd.Context())
				if err != nil {
					return fmt.Errorf("list templates: %w", err)
				}
				if templates == nil {
					templates = []*store.Template{}
				}

				if ctx.wantJSON(cmd.OutOrStdout()) {
					return writeJSON(cmd, templates)
				}
				if len(templates) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No templates stored")
					return nil
				}

				rows := make([][]string, 0, len(templates))
				for _, t := range templates {
					rows = append(rows, []string{
						t.ID[:8],
						t.Name,
						string(t.Config.Format),
						truncate(t.Config.Prefix, 24),
						truncate(t.Config.Suffix, 24),
						yesNo(t.Config.IncludeMetadata),
						t.UpdatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				writeTable(cmd,
					[]string{"ID", "Name", "Format", "Prefix", "Suffix", "Metadata", "Updated"},
					rows,
					nil,
				)
				return nil
			})
		},
	}
}

func newTemplatesImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.toml>",
		Short: "Import templates from a TOML file, replacing same-named ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			return ctx.withStore(func(svc *store.Service) error {
				res, err := svc.ImportTOML(cmd.Context(), data)
				if err != nil {
					return err
				}
				if ctx.explicitJSON() {
					return writeJSON(cmd, res)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported templates: %d created, %d updated\n", res.Created, res.Updated)
				return nil
			})
		},
	}
}

func newTemplatesExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.toml]",
		Short: "Write all templates as TOML to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(svc *store.Service) error {
				data, err := svc.ExportTOML(cmd.Context())
				if err != nil {
					return err
				}
				if len(args) == 0 || args[0] == "-" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(args[0], data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote templates to %s\n", args[0])
				return nil
			})
		},
	}
}

func newTemplatesDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a stored template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(svc *store.Service) error {
				t, err := svc.ResolveTemplate(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("template %q: %w", args[0], err)
				}
				if err := svc.DeleteTemplate(cmd.Context(), t.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", t.Name)
				return nil
			})
		},
	}
}
