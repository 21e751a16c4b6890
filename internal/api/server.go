package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/directorspalette/palette-agent/internal/chunking"
	"github.com/directorspalette/palette-agent/internal/export"
	"github.com/directorspalette/palette-agent/internal/store"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// Defaults are applied when a request leaves a setting out.
type Defaults struct {
	ParsingMode  chunking.ParsingMode
	ExportFormat export.Format
	ExportDir    string
}

type ServerConfig struct {
	Port      int
	Templates store.TemplateService
	Settings  ConfigReader
	Defaults  Defaults
	Logger    *slog.Logger
	StartTime time.Time
	Version   string
}

func NewServer(cfg ServerConfig) *Server {
	router := NewRouter(cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}
