package chunking

// ParsingMode selects which boundary detectors run.
type ParsingMode string

const (
	ModePunctuation ParsingMode = "punctuation"
	ModeLines       ParsingMode = "lines"
	ModeHybrid      ParsingMode = "hybrid"
)

// ParseMode maps a user supplied mode name to a ParsingMode. Unknown or empty
// names fall back to hybrid.
func ParseMode(s string) ParsingMode {
	switch ParsingMode(s) {
	case ModePunctuation, ModeLines, ModeHybrid:
		return ParsingMode(s)
	default:
		return ModeHybrid
	}
}

// IsValidMode reports whether s names a parsing mode exactly.
func IsValidMode(s string) bool {
	switch ParsingMode(s) {
	case ModePunctuation, ModeLines, ModeHybrid:
		return true
	}
	return false
}

type BoundaryType string

const (
	BoundarySentence       BoundaryType = "sentence"
	BoundaryParagraph      BoundaryType = "paragraph"
	BoundaryDialogue       BoundaryType = "dialogue"
	BoundarySceneChange    BoundaryType = "scene_change"
	BoundaryTimeTransition BoundaryType = "time_transition"
)

// TextBoundary is a candidate split point. Position is a byte offset into the
// trimmed text and always lands on a whitespace character.
type TextBoundary struct {
	Position int          `json:"position"`
	Score    int          `json:"score"`
	Type     BoundaryType `json:"type"`
	Reason   string       `json:"reason"`
}

// ShotChunk is one contiguous span of the trimmed text assigned to a shot.
// [StartPos, EndPos) are byte offsets into the trimmed text.
type ShotChunk struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	StartPos      int    `json:"startPos"`
	EndPos        int    `json:"endPos"`
	BoundaryScore int    `json:"boundaryScore"`
}

type ContentType string

const (
	ContentChildrenBook ContentType = "children_book"
	ContentLyrics       ContentType = "lyrics"
	ContentStory        ContentType = "story"
	ContentCommercial   ContentType = "commercial"
)

type ChunkingOptions struct {
	TargetShotCount     int         `json:"targetShotCount"`
	MinWordsPerShot     int         `json:"minWordsPerShot,omitempty"`
	MaxWordsPerShot     int         `json:"maxWordsPerShot,omitempty"`
	PreferNaturalBreaks bool        `json:"preferNaturalBreaks,omitempty"`
	ContentType         ContentType `json:"contentType,omitempty"`
	ParsingMode         ParsingMode `json:"parsingMode,omitempty"`
}

type ShotCountSuggestion struct {
	Count      int    `json:"count"`
	Reason     string `json:"reason"`
	Confidence int    `json:"confidence"`
}
