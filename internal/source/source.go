// Package source turns story and lyric files into plain text for chunking.
// Markdown is flattened through goldmark, PDFs through ledongthuc/pdf, and
// everything else is read as UTF-8 text.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

var ErrNotText = errors.New("input is not valid UTF-8 text")

// DetectFormat picks the input format from a file name's extension.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".pdf":
		return FormatPDF
	default:
		return FormatText
	}
}

// ParseFormat maps a user supplied format name. Empty means text.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "", "text", "txt", "plain":
		return FormatText, true
	case "markdown", "md":
		return FormatMarkdown, true
	case "pdf":
		return FormatPDF, true
	}
	return "", false
}

func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return FromBytes(DetectFormat(path), data)
}

func FromBytes(format Format, data []byte) (string, error) {
	switch format {
	case FormatPDF:
		return PDF(data)
	case FormatMarkdown:
		if !utf8.Valid(data) {
			return "", ErrNotText
		}
		return Markdown(string(data)), nil
	default:
		if !utf8.Valid(data) {
			return "", ErrNotText
		}
		return normalizeNewlines(string(data)), nil
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
