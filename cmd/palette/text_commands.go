package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/directorspalette/palette-agent/internal/chunking"
	"github.com/directorspalette/palette-agent/internal/source"
)

// textFlags are shared by the commands that read source text.
type textFlags struct {
	mode        string
	inputFormat string
}

func (f *textFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "Parsing mode: punctuation, lines or hybrid (default from PALETTE_PARSING_MODE)")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "Input format: text, markdown or pdf (default from file extension)")
}

// chunker reads the input named by args (stdin when absent or "-") and
// builds a TextChunker for it.
func (f *textFlags) chunker(ctx *commandContext, cmd *cobra.Command, args []string) (*chunking.TextChunker, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}

	mode := cfg.ParsingMode()
	if f.mode != "" {
		if !chunking.IsValidMode(f.mode) {
			return nil, fmt.Errorf("invalid --mode %q (want punctuation, lines or hybrid)", f.mode)
		}
		mode = chunking.ParsingMode(f.mode)
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	text, err := readSource(cmd, path, f.inputFormat)
	if err != nil {
		return nil, err
	}
	return chunking.New(text, mode), nil
}

func readSource(cmd *cobra.Command, path, format string) (string, error) {
	if format == "" && path != "" && path != "-" {
		return source.Load(path)
	}

	f, ok := source.ParseFormat(format)
	if !ok {
		return "", fmt.Errorf("invalid --input-format %q (want text, markdown or pdf)", format)
	}

	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return source.FromBytes(f, data)
}

func newChunkCommand(ctx *commandContext) *cobra.Command {
	var tf textFlags
	var opts chunking.ChunkingOptions
	var contentType string

	cmd := &cobra.Command{
		Use:   "chunk [file]",
		Short: "Split text into shots at the strongest boundaries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if contentType != "" {
				if _, ok := chunking.ContentPresets[chunking.ContentType(contentType)]; !ok {
					return fmt.Errorf("unknown --content-type %q", contentType)
				}
				opts.ContentType = chunking.ContentType(contentType)
			}
			if opts.TargetShotCount < 0 || opts.MinWordsPerShot < 0 || opts.MaxWordsPerShot < 0 {
				return fmt.Errorf("--shots, --min-words and --max-words must not be negative")
			}

			c, err := tf.chunker(ctx, cmd, args)
			if err != nil {
				return err
			}
			chunks := c.GenerateChunks(opts)
			report := chunking.Analyze(chunks, opts)

			if ctx.wantJSON(cmd.OutOrStdout()) {
				return writeJSON(cmd, struct {
					Chunks []chunking.ShotChunk `json:"chunks"`
					Report chunking.Report      `json:"report"`
				}{chunks, report})
			}

			rows := make([][]string, 0, len(chunks))
			for i, ch := range chunks {
				rows = append(rows, []string{
					ch.ID,
					strconv.Itoa(ch.StartPos),
					strconv.Itoa(ch.EndPos),
					strconv.Itoa(ch.BoundaryScore),
					strconv.Itoa(report.Chunks[i].WordCount),
					truncate(ch.Text, 60),
				})
			}
			writeTable(cmd,
				[]string{"Shot", "Start", "End", "Score", "Words", "Text"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
			)
			for _, w := range report.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			return nil
		},
	}

	tf.register(cmd)
	cmd.Flags().IntVarP(&opts.TargetShotCount, "shots", "n", 5, "Number of shots to produce")
	cmd.Flags().IntVar(&opts.MinWordsPerShot, "min-words", 0, "Warn about shots shorter than this")
	cmd.Flags().IntVar(&opts.MaxWordsPerShot, "max-words", 0, "Warn about shots longer than this")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Preset: "+presetNames())
	return cmd
}

func newBoundariesCommand(ctx *commandContext) *cobra.Command {
	var tf textFlags

	cmd := &cobra.Command{
		Use:   "boundaries [file]",
		Short: "List scored boundary candidates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := tf.chunker(ctx, cmd, args)
			if err != nil {
				return err
			}
			boundaries := c.Boundaries()
			if boundaries == nil {
				boundaries = []chunking.TextBoundary{}
			}

			if ctx.wantJSON(cmd.OutOrStdout()) {
				return writeJSON(cmd, boundaries)
			}

			rows := make([][]string, 0, len(boundaries))
			for _, b := range boundaries {
				rows = append(rows, []string{
					strconv.Itoa(b.Position),
					strconv.Itoa(b.Score),
					string(b.Type),
					truncate(b.Reason, 70),
				})
			}
			writeTable(cmd,
				[]string{"Position", "Score", "Type", "Reason"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft},
			)
			return nil
		},
	}

	tf.register(cmd)
	return cmd
}

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var tf textFlags

	cmd := &cobra.Command{
		Use:   "suggest [file]",
		Short: "Suggest shot counts for a text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := tf.chunker(ctx, cmd, args)
			if err != nil {
				return err
			}
			suggestions := c.SuggestShotCounts()
			if suggestions == nil {
				suggestions = []chunking.ShotCountSuggestion{}
			}

			if ctx.wantJSON(cmd.OutOrStdout()) {
				return writeJSON(cmd, suggestions)
			}

			rows := make([][]string, 0, len(suggestions))
			for _, s := range suggestions {
				rows = append(rows, []string{strconv.Itoa(s.Count), strconv.Itoa(s.Confidence), s.Reason})
			}
			writeTable(cmd,
				[]string{"Shots", "Confidence", "Reason"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft},
			)
			return nil
		},
	}

	tf.register(cmd)
	return cmd
}

func presetNames() string {
	names := []string{
		string(chunking.ContentChildrenBook),
		string(chunking.ContentLyrics),
		string(chunking.ContentStory),
		string(chunking.ContentCommercial),
	}
	return strings.Join(names, ", ")
}
