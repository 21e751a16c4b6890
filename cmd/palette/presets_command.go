package main

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/directorspalette/palette-agent/internal/chunking"
)

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Show word limits per content type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.wantJSON(cmd.OutOrStdout()) {
				return writeJSON(cmd, chunking.ContentPresets)
			}

			types := make([]string, 0, len(chunking.ContentPresets))
			for ct := range chunking.ContentPresets {
				types = append(types, string(ct))
			}
			sort.Strings(types)

			rows := make([][]string, 0, len(types))
			for _, ct := range types {
				p := chunking.ContentPresets[chunking.ContentType(ct)]
				rows = append(rows, []string{
					ct,
					strconv.Itoa(p.MinWordsPerShot),
					strconv.Itoa(p.MaxWordsPerShot),
					yesNo(p.PreferNaturalBreaks),
				})
			}
			writeTable(cmd,
				[]string{"Content Type", "Min Words", "Max Words", "Natural Breaks"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
			)
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
