package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/degrees/internal/loader"
	"github.com/vanshika/degrees/internal/repository"
	"github.com/vanshika/degrees/internal/service"
)

func newIngestCmd(a *app) *cobra.Command {
	var (
		workers    int
		skipSchema bool
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load a CSV dataset directory into Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return a.runIngest(ctx, workers, skipSchema)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent workers for ingestion")
	cmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "do not create uniqueness constraints")
	return cmd
}

func (a *app) runIngest(ctx context.Context, workers int, skipSchema bool) error {
	logger := a.logger.With("component", "ingest")

	ds, err := loader.ReadDir(ctx, a.cfg.Data.Dir)
	if err != nil {
		return err
	}
	if len(ds.People) == 0 {
		return fmt.Errorf("dataset %s has no people", a.cfg.Data.Dir)
	}

	client, err := buildGraphClient(ctx, logger, a.cfg)
	if err != nil {
		return fmt.Errorf("create graph client: %w", err)
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(client)
	if !skipSchema {
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	start := time.Now()
	logger.Info("ingesting dataset",
		"dir", a.cfg.Data.Dir,
		"people", len(ds.People),
		"movies", len(ds.Works),
		"participations", len(ds.Participations),
		"workers", workers,
	)
	stats, err := service.NewBulkIngestor(repo, workers).Ingest(ctx, ds)
	if err != nil {
		logger.Error("ingestion failed", "error", err, "people", stats.People, "movies", stats.Works)
		return err
	}

	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"people", stats.People,
		"movies", stats.Works,
		"participations", stats.Participations,
		"dropped", stats.Dropped,
	)
	return nil
}
