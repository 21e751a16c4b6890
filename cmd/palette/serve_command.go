package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/directorspalette/palette-agent/internal/api"
	"github.com/directorspalette/palette-agent/internal/config"
	"github.com/directorspalette/palette-agent/internal/db"
	"github.com/directorspalette/palette-agent/internal/logging"
	"github.com/directorspalette/palette-agent/internal/store"
)

var errAlreadyRunning = errors.New("another palette server is already using this data directory")

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") && (port < 1 || port > 65535) {
				return fmt.Errorf("invalid --port %d", port)
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Port()
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(sigCtx, cfg, port, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on (default from PALETTE_PORT)")
	return cmd
}

// acquireLock takes the data directory lock so only one server writes the
// database at a time.
func acquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errAlreadyRunning
	}
	return lock, nil
}

func runServer(ctx context.Context, cfg config.Config, port int, out io.Writer) error {
	startTime := time.Now()

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	lock, err := acquireLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer lock.Unlock()

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting palette agent", "version", config.Version, "data_dir", logging.SanitizePath(cfg.DataDir()))

	database, err := db.New(cfg.DBPath(), logging.WithComponent(logger, "db"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := store.NewRepository(database.Conn())
	svc := store.NewService(repo, logging.WithComponent(logger, "store"))

	authToken, err := svc.EnsureAuthToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}

	printBanner(out, port, authToken)

	apiServer := api.NewServer(api.ServerConfig{
		Port:      port,
		Templates: svc,
		Settings:  repo,
		Defaults: api.Defaults{
			ParsingMode:  cfg.ParsingMode(),
			ExportFormat: cfg.ExportFormat(),
			ExportDir:    cfg.ExportDir(),
		},
		Logger:    logging.WithComponent(logger, "api"),
		StartTime: startTime,
		Version:   config.Version,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	logger.Info("initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func printBanner(out io.Writer, port int, authToken string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "╔═══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintf(out, "║  PALETTE AGENT %-62s ║\n", "v"+config.Version)
	fmt.Fprintln(out, "╠═══════════════════════════════════════════════════════════════════════════════╣")
	fmt.Fprintf(out, "║  API URL:    http://127.0.0.1:%-47d ║\n", port)
	fmt.Fprintf(out, "║  Auth Token: %-64s ║\n", authToken)
	fmt.Fprintln(out, "╚═══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(out)
}
