package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/saint0x/gitreadme/pkg/log"
	"github.com/saint0x/gitreadme/pkg/server"
)

func newServeCommand(debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the README HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handleServe(cmd.Context(), *debug)
		},
	}
}

func handleServe(parent context.Context, debug bool) error {
	container, err := buildContainer(debug)
	if err != nil {
		return err
	}
	logger, err := resolve[*log.Logger](container)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	srv, err := resolve[*server.Server](container)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// first signal stops gracefully, a second one exits immediately
	go func() {
		shuttingDown := false
		for sig := range sigCh {
			if shuttingDown {
				logger.Error("Force stopping...")
				os.Exit(1)
			}
			shuttingDown = true
			logger.Info("Received signal: %v", sig)
			logger.Info("Press Ctrl+C again to force stop")
			cancel()
		}
	}()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Success("Server shutdown complete")
	return nil
}
