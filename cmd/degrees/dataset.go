package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/graph"
	"github.com/vanshika/degrees/internal/loader"
	"github.com/vanshika/degrees/internal/repository"
	"github.com/vanshika/degrees/internal/store"
)

type dataset struct {
	store  *store.Store
	stats  loader.Stats
	client graph.Client
	logger *slog.Logger
}

// loadDataset builds the in-memory store from the configured source. The graph client is
// kept open for health probes and must be released with close.
func (a *app) loadDataset(ctx context.Context) (*dataset, error) {
	logger := a.logger.With("component", "loader")
	start := time.Now()

	ds := &dataset{logger: logger}
	var err error
	switch strings.ToLower(a.cfg.Data.Source) {
	case config.SourceGraph:
		ds.client, err = buildGraphClient(ctx, logger, a.cfg)
		if err != nil {
			return nil, fmt.Errorf("create graph client: %w", err)
		}
		ds.store, ds.stats, err = loader.LoadFrom(ctx, repository.New(ds.client), logger)
	default:
		ds.store, ds.stats, err = loader.LoadDir(ctx, a.cfg.Data.Dir, logger)
	}
	if err != nil {
		ds.close()
		return nil, err
	}

	logger.Info("dataset loaded",
		"source", a.cfg.Data.Source,
		"people", ds.stats.People,
		"movies", ds.stats.Works,
		"participations", ds.stats.Participations,
		"dropped", ds.stats.Dropped,
		"skipped", ds.stats.SkippedRows,
		"duration", time.Since(start).String(),
	)
	return ds, nil
}

func (d *dataset) close() {
	if d.client == nil {
		return
	}
	if err := d.client.Close(context.Background()); err != nil {
		d.logger.Warn("closing graph client failed", "error", err)
	}
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, graph.ErrMissingURI
	}

	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	if !cfg.Breaker.Enabled {
		return client, nil
	}
	return graph.NewBreakerClient(client, graph.BreakerSettings{
		Name:             "neo4j",
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		ReadyToTripRatio: cfg.Breaker.ReadyToTripRatio,
	}, logger), nil
}
