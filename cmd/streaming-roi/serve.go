package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/streaming-roi/internal/server"
	"github.com/iwvelando/streaming-roi/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var (
		configLocation string
		address        string
		logLevel       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive calculator and projection API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load server configuration at %s: %w", configLocation, err)
			}
			if address != "" {
				cfg.Address = address
			}

			logger, err := initializeLogger(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := server.NewHandler(logger, cfg.BodySizeBytes(), version)
			if err := server.Serve(ctx, logger, cfg.Address, handler, cfg.ShutdownTimeoutDuration()); err != nil {
				logger.Error("server exited with error",
					zap.String("op", "main.serve"),
					zap.Error(err),
				)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configLocation, "config", "c", constants.DefaultServerConfigFile, "path to server configuration file")
	flags.StringVarP(&address, "address", "a", "", "listen address override, e.g. :8080")
	flags.StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}
