package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanshika/degrees/internal/store"
)

// Exporter produces a full dataset from an external source such as the graph database.
type Exporter interface {
	Export(ctx context.Context) (Dataset, error)
}

// LoadFrom reads a dataset from the exporter into a new store.
func LoadFrom(ctx context.Context, exp Exporter, logger *slog.Logger) (*store.Store, Stats, error) {
	ds, err := exp.Export(ctx)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("export dataset: %w", err)
	}
	st := store.New()
	return st, Apply(ds, st, logger), nil
}
