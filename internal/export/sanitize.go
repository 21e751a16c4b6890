package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

var (
	ErrOutputDirRequired  = errors.New("output_dir is required")
	ErrOutputDirTraversal = errors.New("output_dir cannot contain path traversal")
	ErrOutputDirNotClean  = errors.New("output_dir must be clean path")
	ErrOutputDirMissing   = errors.New("output_dir does not exist")
	ErrOutputDirNotDir    = errors.New("output_dir is not a directory")
)

// SanitizeName makes a project name safe to use as a file name. Control
// characters are dropped, runs of whitespace collapse to one space and any
// other disallowed rune becomes '_'. maxLen counts runes; 0 means no limit.
func SanitizeName(s string, maxLen int) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		switch {
		case unicode.IsControl(r) && !unicode.IsSpace(r):
			continue
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
			}
			lastSpace = true
			continue
		case isAllowedNameRune(r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
		lastSpace = false
	}

	cleaned := strings.Trim(strings.TrimSpace(b.String()), ".")
	if maxLen > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLen {
			cleaned = strings.TrimSpace(string(runes[:maxLen]))
		}
	}
	return cleaned
}

func isAllowedNameRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '-', '_', '.', ',', '(', ')', '\'':
		return true
	default:
		return false
	}
}

func ValidateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return ErrOutputDirRequired
	}

	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == ".." {
			return ErrOutputDirTraversal
		}
	}

	if filepath.Clean(dir) != dir {
		return ErrOutputDirNotClean
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrOutputDirMissing
		}
		return fmt.Errorf("invalid output_dir: %w", err)
	}
	if !info.IsDir() {
		return ErrOutputDirNotDir
	}

	return nil
}
