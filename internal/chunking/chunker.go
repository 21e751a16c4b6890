// Package chunking splits stories and lyrics into shots.
//
// A TextChunker scores every candidate boundary in the text (sentence ends,
// punctuation, line breaks, section markers) and partitions the text at the
// highest-scoring ones. All methods are pure and never fail: degenerate input
// yields a single chunk or none at all.
package chunking

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	singleChunkScore = 10
	finalChunkScore  = 5

	highScoreThreshold = 7
	wordsPerShot       = 25
	maxSuggestedShots  = 20
)

var paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

// TextChunker holds a trimmed text together with its sentences and scored
// boundaries for one parsing mode.
type TextChunker struct {
	text       string
	mode       ParsingMode
	sentences  []string
	boundaries []TextBoundary
}

// New trims text and detects its boundaries. An unknown mode is treated as
// hybrid.
func New(text string, mode ParsingMode) *TextChunker {
	mode = ParseMode(string(mode))
	trimmed := strings.TrimSpace(text)
	return &TextChunker{
		text:       trimmed,
		mode:       mode,
		sentences:  splitSentences(trimmed),
		boundaries: detectBoundaries(trimmed, mode),
	}
}

// Text returns the trimmed text all positions refer to.
func (c *TextChunker) Text() string {
	return c.text
}

// Mode is the parsing mode the boundaries were detected with.
func (c *TextChunker) Mode() ParsingMode {
	return c.mode
}

func (c *TextChunker) Sentences() []string {
	return slices.Clone(c.sentences)
}

// Boundaries returns every detected boundary in position order.
func (c *TextChunker) Boundaries() []TextBoundary {
	return slices.Clone(c.boundaries)
}

// GenerateChunks partitions the text into at most opts.TargetShotCount chunks.
//
// Boundaries are picked greedily: the TargetShotCount-1 highest scores win
// regardless of spacing, then chunks are cut in position order. The text
// after the last selected boundary becomes the final chunk.
func (c *TextChunker) GenerateChunks(opts ChunkingOptions) []ShotChunk {
	if c.text == "" {
		return []ShotChunk{}
	}
	if opts.TargetShotCount <= 1 {
		return []ShotChunk{{
			ID:            shotID(1),
			Text:          c.text,
			StartPos:      0,
			EndPos:        len(c.text),
			BoundaryScore: singleChunkScore,
		}}
	}

	boundaries := c.boundaries
	if opts.ParsingMode != "" {
		if mode := ParseMode(string(opts.ParsingMode)); mode != c.mode {
			boundaries = detectBoundaries(c.text, mode)
		}
	}
	selected := selectTopBoundaries(boundaries, opts.TargetShotCount-1)

	chunks := make([]ShotChunk, 0, len(selected)+1)
	current := 0
	for _, b := range selected {
		end := wordEnd(c.text, b.Position)
		next := skipSpace(c.text, end)

		if end > current {
			if text := strings.TrimSpace(c.text[current:end]); text != "" {
				chunks = append(chunks, ShotChunk{
					ID:            shotID(len(chunks) + 1),
					Text:          text,
					StartPos:      current,
					EndPos:        end,
					BoundaryScore: b.Score,
				})
			}
		}
		if next > current {
			current = next
		}
	}

	if current < len(c.text) {
		if text := strings.TrimSpace(c.text[current:]); text != "" {
			chunks = append(chunks, ShotChunk{
				ID:            shotID(len(chunks) + 1),
				Text:          text,
				StartPos:      current,
				EndPos:        len(c.text),
				BoundaryScore: finalChunkScore,
			})
		}
	}
	return chunks
}

// SuggestShotCounts proposes shot counts from the paragraph structure, the
// number of strong boundaries and the word density, most confident first.
func (c *TextChunker) SuggestShotCounts() []ShotCountSuggestion {
	suggestions := make([]ShotCountSuggestion, 0, 3)
	if c.text == "" {
		return suggestions
	}

	paragraphs := 0
	for _, p := range paragraphSplitRe.Split(c.text, -1) {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	if paragraphs >= 3 {
		suggestions = append(suggestions, ShotCountSuggestion{
			Count:      paragraphs,
			Reason:     fmt.Sprintf("One shot per paragraph (%d paragraphs)", paragraphs),
			Confidence: 8,
		})
	}

	strong := 0
	for _, b := range c.boundaries {
		if b.Score >= highScoreThreshold {
			strong++
		}
	}
	if strong > 0 {
		suggestions = append(suggestions, ShotCountSuggestion{
			Count:      strong + 1,
			Reason:     fmt.Sprintf("Split at %d strong narrative breaks", strong),
			Confidence: 7,
		})
	}

	words := len(strings.Fields(c.text))
	if words > 0 {
		count := int(math.Ceil(float64(words) / wordsPerShot))
		suggestions = append(suggestions, ShotCountSuggestion{
			Count:      min(count, maxSuggestedShots),
			Reason:     fmt.Sprintf("About %d words per shot (%d words)", wordsPerShot, words),
			Confidence: 6,
		})
	}

	slices.SortStableFunc(suggestions, func(a, b ShotCountSuggestion) int {
		return b.Confidence - a.Confidence
	})
	return suggestions
}

func selectTopBoundaries(boundaries []TextBoundary, k int) []TextBoundary {
	if k <= 0 || len(boundaries) == 0 {
		return nil
	}
	ranked := slices.Clone(boundaries)
	slices.SortStableFunc(ranked, func(a, b TextBoundary) int {
		return b.Score - a.Score
	})
	ranked = ranked[:min(k, len(ranked))]
	slices.SortStableFunc(ranked, func(a, b TextBoundary) int {
		return a.Position - b.Position
	})
	return ranked
}

// splitSentences splits after . ! or ? when whitespace and an upper-case
// letter follow.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
		default:
			continue
		}
		j := skipSpace(text, i+1)
		if j == i+1 || j >= len(text) {
			continue
		}
		r, _ := utf8.DecodeRuneInString(text[j:])
		if !unicode.IsUpper(r) {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = j
		i = j - 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// wordEnd advances from i to the end of the word it sits in.
func wordEnd(text string, i int) int {
	if i < 0 {
		i = 0
	}
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func shotID(n int) string {
	return fmt.Sprintf("shot_%d", n)
}
