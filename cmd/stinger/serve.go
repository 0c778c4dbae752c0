package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HerbHall/stinger/internal/catalog"
	"github.com/HerbHall/stinger/internal/metrics"
	"github.com/HerbHall/stinger/internal/server"
	"github.com/HerbHall/stinger/internal/trailer"
	"github.com/HerbHall/stinger/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	return withDeps(ctx, opts, func(d *deps) error {
		logger := d.logger
		logger.Info("Stinger server starting",
			zap.String("version", version.Short()),
			zap.String("catalog", catalogSource(d.settings.Catalog.Path)),
			zap.Int("items", d.catalog.Len()),
		)
		metrics.CatalogItems.Set(float64(d.catalog.Len()))

		registrars := []server.RouteRegistrar{catalog.NewHandler(d.engine, logger)}
		if d.settings.Trailer.Enabled {
			svc, err := newTrailerService(d.catalog, d.settings.Trailer, logger)
			if err != nil {
				return err
			}
			registrars = append(registrars, trailer.NewHandler(svc, logger))
		} else {
			logger.Info("trailer lookup disabled")
		}

		srv := server.New(serverOptions(d.settings), logger, registrars...)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			logger.Info("received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), d.settings.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("Stinger server stopped")
		return nil
	})
}
