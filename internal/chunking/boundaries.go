package chunking

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	maxScore       = 10
	contextWindow  = 100
	dedupeDistance = 5
)

var (
	sectionMarkerRe = regexp.MustCompile(`^\[.*\]$`)
	sectionHeaderRe = regexp.MustCompile(`(?i)\[\s*(intro|verse|chorus|hook|bridge|outro)[^\]]*\]`)
	emotionRe       = regexp.MustCompile(`(?i)\b(love|hate|fear|joy|pain|hope|dream|nightmare)\b`)
	alphaWordRe     = regexp.MustCompile(`[a-z]+`)

	punctuationRe    = regexp.MustCompile(`[.!?,;:]\s`)
	paragraphBreakRe = regexp.MustCompile(`^\s*\n\s*\n`)
	timeTransitionRe = regexp.MustCompile(`(?i)^(later|meanwhile|afterwards|the next (day|morning|night)|that (night|evening|morning)|(hours|days|weeks|months|years) later)\b`)

	introPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(meet|this is|there was|there lived)\b`),
		regexp.MustCompile(`(?i)^(at|in|on) (the|a) `),
		regexp.MustCompile(`^[A-Z][a-z]+ (was|is|had)\b`),
	}
)

func detectBoundaries(text string, mode ParsingMode) []TextBoundary {
	switch mode {
	case ModeLines:
		return findLineBoundaries(text)
	case ModePunctuation:
		return findPunctuationBoundaries(text)
	default:
		merged := append(findLineBoundaries(text), findPunctuationBoundaries(text)...)
		return dedupeBoundaries(merged)
	}
}

// dedupeBoundaries keeps the first boundary of every cluster closer than
// dedupeDistance and returns the survivors ordered by position.
func dedupeBoundaries(in []TextBoundary) []TextBoundary {
	kept := make([]TextBoundary, 0, len(in))
	for _, b := range in {
		dup := false
		for _, k := range kept {
			if abs(k.Position-b.Position) < dedupeDistance {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, b)
		}
	}
	slices.SortStableFunc(kept, func(a, b TextBoundary) int {
		return a.Position - b.Position
	})
	return kept
}

func findLineBoundaries(text string) []TextBoundary {
	lines := strings.Split(text, "\n")
	boundaries := make([]TextBoundary, 0)

	offset := 0
	for i := 0; i < len(lines)-1; i++ {
		newline := offset + len(lines[i])
		offset = newline + 1

		current := strings.TrimSpace(lines[i])
		next := strings.TrimSpace(lines[i+1])
		if current == "" || next == "" {
			continue
		}
		if isSectionMarker(current) || isSectionMarker(next) {
			continue
		}

		score := 4
		typ := BoundaryParagraph
		reasons := []string{"line break"}

		if linesRhyme(current, next) {
			score++
			reasons = append(reasons, "rhyming line endings")
		}
		if emotionRe.MatchString(current) != emotionRe.MatchString(next) {
			score += 2
			reasons = append(reasons, "emotional transition")
		}
		if sectionHeaderRe.MatchString(current) || sectionHeaderRe.MatchString(next) {
			score += 3
			typ = BoundarySceneChange
			reasons = append(reasons, "section header transition")
		}

		boundaries = append(boundaries, TextBoundary{
			Position: newline,
			Score:    min(score, maxScore),
			Type:     typ,
			Reason:   strings.Join(reasons, ", "),
		})
	}
	return boundaries
}

func findPunctuationBoundaries(text string) []TextBoundary {
	boundaries := make([]TextBoundary, 0)

	for _, m := range punctuationRe.FindAllStringIndex(text, -1) {
		mark := text[m[0]]
		pos := m[0] + 1

		before := text[windowStart(text, pos-contextWindow):pos]
		after := text[pos:windowEnd(text, pos+contextWindow)]
		trimmedBefore := strings.TrimSpace(before)
		trimmedAfter := strings.TrimSpace(after)
		if trimmedBefore == "" || trimmedAfter == "" {
			continue
		}
		if isSectionMarker(lastLine(trimmedBefore)) || isSectionMarker(firstLine(trimmedAfter)) {
			continue
		}

		score := 2
		var typ BoundaryType
		var reasons []string
		switch mark {
		case '.':
			score += 3
			typ = BoundarySentence
			reasons = append(reasons, "sentence end")
		case '!', '?':
			score += 2
			typ = BoundarySentence
			reasons = append(reasons, "exclamation or question")
		case ',':
			score++
			typ = BoundarySceneChange
			reasons = append(reasons, "comma pause")
		case ';', ':':
			score += 2
			typ = BoundaryDialogue
			reasons = append(reasons, "clause break")
		}

		if hasQuote(before) != hasQuote(after) {
			score += 2
			reasons = append(reasons, "dialogue edge")
		}
		if paragraphBreakRe.MatchString(after) {
			score += 3
			reasons = append(reasons, "paragraph break")
		}
		if isIntroduction(trimmedAfter) {
			score++
			reasons = append(reasons, "introduction")
		}
		if timeTransitionRe.MatchString(trimmedAfter) {
			typ = BoundaryTimeTransition
			reasons = append(reasons, "time transition")
		}

		boundaries = append(boundaries, TextBoundary{
			Position: pos,
			Score:    min(score, maxScore),
			Type:     typ,
			Reason:   fmt.Sprintf("%q: %s", mark, strings.Join(reasons, ", ")),
		})
	}
	return boundaries
}

func isSectionMarker(line string) bool {
	return sectionMarkerRe.MatchString(line)
}

// linesRhyme compares the last two letters of the final alphabetic word of
// each line.
func linesRhyme(a, b string) bool {
	wa := lastAlphaWord(a)
	wb := lastAlphaWord(b)
	if len(wa) < 2 || len(wb) < 2 {
		return false
	}
	return wa[len(wa)-2:] == wb[len(wb)-2:]
}

func lastAlphaWord(line string) string {
	words := alphaWordRe.FindAllString(strings.ToLower(line), -1)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

func hasQuote(s string) bool {
	return strings.ContainsAny(s, "\"“”")
}

func isIntroduction(s string) bool {
	for _, re := range introPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// windowStart clamps i into text and backs up to the start of a rune.
func windowStart(text string, i int) int {
	if i <= 0 {
		return 0
	}
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

func windowEnd(text string, i int) int {
	if i >= len(text) {
		return len(text)
	}
	for i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
