package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/directorspalette/palette-agent/internal/chunking"
	"github.com/directorspalette/palette-agent/internal/export"
)

func TestFromEnv_Defaults(t *testing.T) {
	unsetEnv(t, EnvPort, EnvParsingMode, EnvExportFormat)
	t.Setenv(EnvDataDir, "/tmp/palette-test")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port() != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port(), DefaultPort)
	}
	if cfg.ParsingMode() != chunking.ModeHybrid {
		t.Errorf("ParsingMode = %s, want hybrid", cfg.ParsingMode())
	}
	if cfg.ExportFormat() != export.FormatNumbered {
		t.Errorf("ExportFormat = %s, want numbered", cfg.ExportFormat())
	}
	if cfg.DBPath() != filepath.Join("/tmp/palette-test", DBFilename) {
		t.Errorf("DBPath = %s", cfg.DBPath())
	}
	if cfg.LockPath() != filepath.Join("/tmp/palette-test", LockFilename) {
		t.Errorf("LockPath = %s", cfg.LockPath())
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvPort, "9000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvParsingMode, "lines")
	t.Setenv(EnvExportFormat, "csv")
	t.Setenv(EnvExportDir, "/srv/exports")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port() != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port())
	}
	if cfg.LogLevel() != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel())
	}
	if cfg.ParsingMode() != chunking.ModeLines {
		t.Errorf("ParsingMode = %s, want lines", cfg.ParsingMode())
	}
	if cfg.ExportFormat() != export.FormatCSV {
		t.Errorf("ExportFormat = %s, want csv", cfg.ExportFormat())
	}
	if cfg.ExportDir() != "/srv/exports" {
		t.Errorf("ExportDir = %q", cfg.ExportDir())
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port not a number", key: EnvPort, value: "abc"},
		{name: "port out of range", key: EnvPort, value: "70000"},
		{name: "unknown parsing mode", key: EnvParsingMode, value: "sentences"},
		{name: "unknown export format", key: EnvExportFormat, value: "edl"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestWithDataDir(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/palette-env")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	moved := cfg.WithDataDir("/tmp/palette-flag")
	if moved.DBPath() != filepath.Join("/tmp/palette-flag", DBFilename) {
		t.Errorf("DBPath = %s", moved.DBPath())
	}
	if cfg.DataDir() != "/tmp/palette-env" {
		t.Errorf("original DataDir changed to %s", cfg.DataDir())
	}
	if cfg.WithDataDir("") != cfg {
		t.Error("empty dir should return the same config")
	}
}
