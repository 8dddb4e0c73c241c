package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"weather-mcp-client/internal/loop"
	"weather-mcp-client/internal/mcp"
	"weather-mcp-client/internal/server"
	"weather-mcp-client/internal/session"
	"weather-mcp-client/internal/telemetry"
	"weather-mcp-client/internal/tui"
)

// NewRootCommand creates the command tree. The root command serves the web
// form; the tui subcommand runs the same form in the terminal.
func NewRootCommand(cfg server.Config, logger zerolog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "weather-client",
		Short:        "Weather MCP test client",
		Long:         "A small client that connects to a remote weather tool server over SSE and shows the current weather for a location.",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeb(cmd.Context(), cfg, logger)
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Run the weather form in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cfg, logger)
		},
	})

	return rootCmd
}

// app holds the wired session stack shared by both display surfaces
type app struct {
	loop     *loop.Loop
	manager  *session.Manager
	client   session.Client
	metrics  *telemetry.Metrics
	registry *prometheus.Registry
	logger   zerolog.Logger
}

func newApp(cfg server.Config, logger zerolog.Logger) *app {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := telemetry.NewMetrics(registry)

	l := loop.New(logger)
	dialer := telemetry.NewDialerWrapper(
		mcp.NewSSEDialer(cfg.EndpointURL, cfg.ClientName, cfg.ClientVersion, logger),
		metrics,
	)
	manager := session.NewManager(dialer, l, logger)

	return &app{
		loop:     l,
		manager:  manager,
		client:   telemetry.NewClientWrapper(manager, metrics),
		metrics:  metrics,
		registry: registry,
		logger:   logger,
	}
}

// close releases the session before stopping the loop it runs on
func (a *app) close() {
	if err := a.manager.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to close session")
	}
	if err := a.loop.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to stop loop")
	}
}

func runWeb(ctx context.Context, cfg server.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, logger)
	defer a.close()

	collector := telemetry.NewSystemMetricsCollector(a.metrics, logger, cfg.MetricsInterval)
	go collector.Start(ctx)
	defer collector.Stop()

	handler, err := server.New(a.client, a.metrics, a.registry, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.Addr).
			Str("endpoint", cfg.EndpointURL).
			Msg("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

func runTUI(cfg server.Config, logger zerolog.Logger) error {
	// Log lines would tear the alternate screen
	a := newApp(cfg, logger.Level(zerolog.Disabled))
	defer a.close()

	return tui.Run(a.client)
}
