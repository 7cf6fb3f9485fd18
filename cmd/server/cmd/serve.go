package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/config"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/database"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/handlers"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/records"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/server"

	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort string
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

The server opens the database (creating the schema if needed), serves the
JSON API and shuts down gracefully on SIGINT/SIGTERM.

Examples:
  daydream-sydney-db serve
  daydream-sydney-db serve --port 8080 --log-format console`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd)
		},
	}

	cmd.Flags().StringVar(&serverHost, "host", "", "listen address (default: 0.0.0.0)")
	cmd.Flags().StringVar(&serverPort, "port", "", "listen port (default: 1234)")
	return cmd
}

func runServer(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != "" {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("version", Version).Msg("starting records server")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("close database")
		}
	}()

	h := handlers.New(records.NewService(store), store, Version)
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           server.NewRouter(cfg, h, logger),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
