// Package config provides configuration management for the palette agent.
// Configuration is loaded from environment variables (optionally seeded from a
// .env file) with sensible defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/directorspalette/palette-agent/internal/chunking"
	"github.com/directorspalette/palette-agent/internal/export"
)

const (
	// Default values
	DefaultPort         = 8787
	DefaultLogLevel     = "info"
	DefaultDataDir      = ".palette"
	DefaultParsingMode  = string(chunking.ModeHybrid)
	DefaultExportFormat = string(export.FormatNumbered)

	// Environment variable names
	EnvPort         = "PALETTE_PORT"
	EnvLogLevel     = "PALETTE_LOG_LEVEL"
	EnvDataDir      = "PALETTE_DATA_DIR"
	EnvParsingMode  = "PALETTE_PARSING_MODE"
	EnvExportFormat = "PALETTE_EXPORT_FORMAT"
	EnvExportDir    = "PALETTE_EXPORT_DIR"

	DBFilename   = "palette.db"
	LockFilename = "palette.lock"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	LockPath() string
	ParsingMode() chunking.ParsingMode
	ExportFormat() export.Format
	ExportDir() string
}

type envValues struct {
	Port         int    `env:"PALETTE_PORT" envDefault:"8787"`
	LogLevel     string `env:"PALETTE_LOG_LEVEL" envDefault:"info"`
	DataDir      string `env:"PALETTE_DATA_DIR"`
	ParsingMode  string `env:"PALETTE_PARSING_MODE" envDefault:"hybrid"`
	ExportFormat string `env:"PALETTE_EXPORT_FORMAT" envDefault:"numbered"`
	ExportDir    string `env:"PALETTE_EXPORT_DIR"`
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port         int
	logLevel     string
	dataDir      string
	parsingMode  chunking.ParsingMode
	exportFormat export.Format
	exportDir    string
}

// New loads ./.env when present and builds an EnvConfig from the environment.
func New() (*EnvConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds an EnvConfig from the current environment only.
func FromEnv() (*EnvConfig, error) {
	var v envValues
	if err := env.Parse(&v); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if v.Port < 1 || v.Port > 65535 {
		return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
	}
	if !chunking.IsValidMode(v.ParsingMode) {
		return nil, fmt.Errorf("invalid %s: %q is not one of punctuation, lines, hybrid", EnvParsingMode, v.ParsingMode)
	}
	format, ok := export.ParseFormat(v.ExportFormat)
	if !ok {
		return nil, fmt.Errorf("invalid %s: %q is not one of numbered, text, json, csv", EnvExportFormat, v.ExportFormat)
	}

	cfg := &EnvConfig{
		port:         v.Port,
		logLevel:     v.LogLevel,
		dataDir:      v.DataDir,
		parsingMode:  chunking.ParsingMode(v.ParsingMode),
		exportFormat: format,
		exportDir:    v.ExportDir,
	}
	if cfg.dataDir == "" {
		cfg.dataDir = defaultDataDir()
	}
	return cfg, nil
}

// WithDataDir returns a copy of c rooted at dir. An empty dir returns c.
func (c *EnvConfig) WithDataDir(dir string) *EnvConfig {
	if dir == "" {
		return c
	}
	cp := *c
	cp.dataDir = dir
	return &cp
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// LockPath returns the file locked while a server owns the data directory
func (c *EnvConfig) LockPath() string {
	return filepath.Join(c.dataDir, LockFilename)
}

func (c *EnvConfig) ParsingMode() chunking.ParsingMode {
	return c.parsingMode
}

func (c *EnvConfig) ExportFormat() export.Format {
	return c.exportFormat
}

// ExportDir is the default output directory for file exports; may be empty.
func (c *EnvConfig) ExportDir() string {
	return c.exportDir
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
