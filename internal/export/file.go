package export

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultProjectName = "palette_export"
	maxProjectNameLen  = 120
)

// FileExtension returns the file extension used when writing format to disk.
func FileExtension(f Format) string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	default:
		return ".txt"
	}
}

// WriteExport writes the rendered text to outputDir, naming the file after
// the sanitized project name. It returns the path written.
func WriteExport(result ExportResult, format Format, outputDir, projectName string) (string, error) {
	if err := ValidateOutputDir(outputDir); err != nil {
		return "", err
	}

	name := SanitizeName(projectName, maxProjectNameLen)
	if name == "" {
		name = DefaultProjectName
	}

	path := filepath.Join(outputDir, name+FileExtension(format))
	if err := os.WriteFile(path, []byte(result.FormattedText), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
