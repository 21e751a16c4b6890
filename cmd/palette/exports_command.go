package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/directorspalette/palette-agent/internal/logging"
	"github.com/directorspalette/palette-agent/internal/store"
)

func newExportsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "exports",
		Short: "Show recently written export files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be positive")
			}
			return ctx.withStore(func(svc *store.Service) error {
				records, err := svc.ListExports(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("list exports: %w", err)
				}
				if records == nil {
					records = []*store.ExportRecord{}
				}

				if ctx.wantJSON(cmd.OutOrStdout()) {
					return writeJSON(cmd, records)
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No exports recorded")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{
						rec.CreatedAt.Local().Format("2006-01-02 15:04"),
						rec.ProjectName,
						string(rec.Format),
						strconv.Itoa(rec.TotalShots),
						logging.SanitizePath(rec.OutputPath),
					})
				}
				writeTable(cmd,
					[]string{"Written", "Project", "Format", "Shots", "Path"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of exports to show")
	return cmd
}
