package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/names"
	"github.com/vanshika/degrees/internal/search"
	"github.com/vanshika/degrees/internal/server"
	"github.com/vanshika/degrees/internal/service"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve degrees queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return a.runServe(ctx)
		},
	}
	cmd.Flags().Int("port", 0, "listen port (overrides SERVER_PORT)")
	cmd.Flags().Bool("metrics", false, "expose /metrics (overrides SERVER_METRICS_ENABLED)")
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = a.v.BindPFlag("server.metrics_enabled", cmd.Flags().Lookup("metrics"))
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	logger := a.logger
	strategy, err := search.ParseStrategy(a.cfg.Search.Strategy)
	if err != nil {
		return err
	}

	ds, err := a.loadDataset(ctx)
	if err != nil {
		return err
	}
	defer ds.close()

	opts := []search.Option{
		search.WithStrategy(strategy),
		search.WithLogger(logger.With("component", "search")),
	}
	var collector *metrics.Collector
	if a.cfg.HTTP.MetricsEnabled {
		collector = metrics.New()
		collector.SetDataset(ds.stats.People, ds.stats.Works, ds.stats.Participations)
		opts = append(opts, search.WithObserver(collector))
	}

	engine := search.New(ds.store, opts...)
	svc := service.NewDegreesService(ds.store, engine, names.NewResolver(ds.store),
		service.WithSearchTimeout(a.cfg.Search.Timeout))

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.GraphHealthService{Client: ds.client},
		API:              server.NewAPIHandlers(logger.With("component", "api"), svc),
		Dataset:          ds.store,
		Metrics:          collector,
		AllowedOrigins:   a.cfg.HTTP.AllowedOrigins(),
		AllowCredentials: true,
	})

	srv := server.New(logger, a.cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped unexpectedly", "error", err)
			return err
		}
		return nil
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}
	return nil
}
