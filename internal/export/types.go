package export

type Format string

const (
	FormatNumbered Format = "numbered"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// ParseFormat reports whether s names a supported export format.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case FormatNumbered, FormatText, FormatJSON, FormatCSV:
		return f, true
	}
	return "", false
}

type ShotMetadata struct {
	DirectorStyle string `json:"directorStyle,omitempty" toml:"director_style"`
	SourceType    string `json:"sourceType,omitempty" toml:"source_type"`
	Timestamp     string `json:"timestamp,omitempty" toml:"timestamp"`
	Section       string `json:"section,omitempty" toml:"section"`
}

type ShotData struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Chapter     string        `json:"chapter,omitempty"`
	Metadata    *ShotMetadata `json:"metadata,omitempty"`
	ShotNumber  int           `json:"shotNumber"`
}

type ExportConfig struct {
	Prefix                string `json:"prefix" toml:"prefix"`
	Suffix                string `json:"suffix" toml:"suffix"`
	UseArtistDescriptions bool   `json:"useArtistDescriptions" toml:"use_artist_descriptions"`
	Format                Format `json:"format" toml:"format"`
	Separator             string `json:"separator" toml:"separator"`
	IncludeMetadata       bool   `json:"includeMetadata" toml:"include_metadata"`
}

// DefaultConfig is a numbered list with a blank line between shots.
func DefaultConfig() ExportConfig {
	return ExportConfig{
		Format:    FormatNumbered,
		Separator: "\n\n",
	}
}

type ExportResult struct {
	FormattedText  string `json:"formattedText"`
	TotalShots     int    `json:"totalShots"`
	ProcessingTime int64  `json:"processingTime"`
}
