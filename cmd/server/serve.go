package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa911/portfolio-backend/internal/config"
	"github.com/osa911/portfolio-backend/internal/logging"
	"github.com/osa911/portfolio-backend/internal/server"
	"github.com/osa911/portfolio-backend/internal/telemetry"
	"github.com/osa911/portfolio-backend/internal/version"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on PORT and serve until SIGINT or SIGTERM.
In-flight requests are drained before the process exits.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger configuration
	logging.Configure(cfg.LogConfig())
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting portfolio backend %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version.Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	deps, cleanup, err := server.BuildDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize dependencies: %v", err)
		return err
	}
	defer cleanup()

	srv, err := server.NewServer(cfg, logger, deps)
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		return err
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("Failed to start server: %v", err)
		return err
	}
	return nil
}
