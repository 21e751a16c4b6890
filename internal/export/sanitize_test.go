package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeName_ControlChars(t *testing.T) {
	got := SanitizeName(" A\nB\rC\tD\x00 ", 100)
	if strings.ContainsAny(got, "\n\r\t\x00") {
		t.Fatalf("sanitize output contains control chars: %q", got)
	}
	if got != "A B C D" {
		t.Fatalf("SanitizeName control char behavior mismatch, got %q", got)
	}
}

func TestSanitizeName_MaxLength(t *testing.T) {
	got := SanitizeName("abcdefghijklmnopqrstuvwxyz", 10)
	if len([]rune(got)) != 10 {
		t.Fatalf("expected length 10, got %d (%q)", len([]rune(got)), got)
	}
}

func TestSanitizeName_AllowedChars(t *testing.T) {
	input := "Az09 -_.,()"
	got := SanitizeName(input, 100)
	if got != input {
		t.Fatalf("SanitizeName changed allowed chars: got %q want %q", got, input)
	}
}

func TestSanitizeName_ReplacesDisallowed(t *testing.T) {
	got := SanitizeName("bad<>|\"name", 100)
	if got != "bad____name" {
		t.Fatalf("SanitizeName disallowed replacement mismatch: got %q", got)
	}
}

func TestSanitizeName_StripsDots(t *testing.T) {
	if got := SanitizeName("..hidden..", 0); got != "hidden" {
		t.Fatalf("SanitizeName(..hidden..) = %q, want hidden", got)
	}
}

func TestValidateOutputDir(t *testing.T) {
	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	tests := []struct {
		name string
		dir  string
		want error
	}{
		{name: "valid", dir: tmp, want: nil},
		{name: "empty", dir: "  ", want: ErrOutputDirRequired},
		{name: "missing", dir: filepath.Join(tmp, "missing"), want: ErrOutputDirMissing},
		{name: "traversal", dir: "/tmp/../etc", want: ErrOutputDirTraversal},
		{name: "unclean", dir: tmp + "/./sub", want: ErrOutputDirNotClean},
		{name: "not a dir", dir: filePath, want: ErrOutputDirNotDir},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOutputDir(tc.dir)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ValidateOutputDir(%q) = %v, want %v", tc.dir, err, tc.want)
			}
		})
	}
}
