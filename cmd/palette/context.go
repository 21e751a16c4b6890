package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/directorspalette/palette-agent/internal/config"
	"github.com/directorspalette/palette-agent/internal/db"
	"github.com/directorspalette/palette-agent/internal/logging"
	"github.com/directorspalette/palette-agent/internal/store"
)

const (
	outputAuto  = "auto"
	outputTable = "table"
	outputJSON  = "json"
)

type commandContext struct {
	dataDirFlag *string
	outputFlag  *string
	jsonFlag    *bool

	configOnce sync.Once
	config     *config.EnvConfig
	configErr  error
}

func newCommandContext(dataDirFlag, outputFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		dataDirFlag: dataDirFlag,
		outputFlag:  outputFlag,
		jsonFlag:    jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.EnvConfig, error) {
	c.configOnce.Do(func() {
		cfg, err := config.New()
		if err != nil {
			c.configErr = err
			return
		}
		if c.dataDirFlag != nil {
			cfg = cfg.WithDataDir(strings.TrimSpace(*c.dataDirFlag))
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) validateOutput() error {
	switch strings.ToLower(strings.TrimSpace(*c.outputFlag)) {
	case outputAuto, outputTable, outputJSON:
		return nil
	}
	return fmt.Errorf("invalid --output %q (want auto, table or json)", *c.outputFlag)
}

// wantJSON reports whether results should be printed as JSON. In auto mode
// JSON is used unless stdout is a terminal.
func (c *commandContext) wantJSON(out io.Writer) bool {
	if c.jsonFlag != nil && *c.jsonFlag {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(*c.outputFlag)) {
	case outputJSON:
		return true
	case outputTable:
		return false
	}
	return !isTerminal(out)
}

func (c *commandContext) explicitJSON() bool {
	if c.jsonFlag != nil && *c.jsonFlag {
		return true
	}
	return strings.ToLower(strings.TrimSpace(*c.outputFlag)) == outputJSON
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *commandContext) logger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logging.NewCLILogger(config.DefaultLogLevel)
	}
	return logging.NewCLILogger(cfg.LogLevel())
}

// withStore opens the database for the duration of fn.
func (c *commandContext) withStore(fn func(*store.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger := c.logger()

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	svc := store.NewService(store.NewRepository(database.Conn()), logger)
	return fn(svc)
}
