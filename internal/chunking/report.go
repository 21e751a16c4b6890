package chunking

import (
	"fmt"
	"strings"
)

type ChunkStat struct {
	ID        string `json:"id"`
	WordCount int    `json:"wordCount"`
	Warning   string `json:"warning,omitempty"`
}

type Report struct {
	Chunks       []ChunkStat `json:"chunks"`
	TotalWords   int         `json:"totalWords"`
	AverageWords float64     `json:"averageWords"`
	Warnings     []string    `json:"warnings,omitempty"`
}

// Analyze measures chunks against the word limits in opts (filled from the
// content preset when unset). It only reports; chunk selection is unaffected.
func Analyze(chunks []ShotChunk, opts ChunkingOptions) Report {
	opts = opts.WithPreset()
	report := Report{Chunks: make([]ChunkStat, 0, len(chunks))}

	for _, ch := range chunks {
		words := len(strings.Fields(ch.Text))
		stat := ChunkStat{ID: ch.ID, WordCount: words}
		switch {
		case opts.MinWordsPerShot > 0 && words < opts.MinWordsPerShot:
			stat.Warning = fmt.Sprintf("%d words, below minimum of %d", words, opts.MinWordsPerShot)
		case opts.MaxWordsPerShot > 0 && words > opts.MaxWordsPerShot:
			stat.Warning = fmt.Sprintf("%d words, above maximum of %d", words, opts.MaxWordsPerShot)
		}
		if stat.Warning != "" {
			report.Warnings = append(report.Warnings, ch.ID+": "+stat.Warning)
		}
		report.TotalWords += words
		report.Chunks = append(report.Chunks, stat)
	}

	if len(chunks) > 0 {
		report.AverageWords = float64(report.TotalWords) / float64(len(chunks))
	}
	if opts.TargetShotCount > 1 && len(chunks) < opts.TargetShotCount {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("produced %d of %d requested shots", len(chunks), opts.TargetShotCount))
	}
	return report
}
