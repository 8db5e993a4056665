package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanshika/degrees/internal/store"
)

// Sink receives records in load order. *store.Store satisfies it.
type Sink interface {
	AddPerson(id, name string, birth *int) error
	AddWork(id, title string, year int) error
	LinkParticipation(personID, workID string) bool
}

// Stats reports what a load did.
type Stats struct {
	People         int
	Works          int
	Participations int
	SkippedRows    int
	Dropped        int
}

// Apply feeds a dataset into the sink: people, then works, then participations.
// Participations naming an unknown person or work are dropped and counted.
func Apply(ds Dataset, sink Sink, logger *slog.Logger) Stats {
	var stats Stats

	for _, p := range ds.People {
		if err := sink.AddPerson(p.ID, p.Name, p.Birth); err != nil {
			stats.SkippedRows++
			continue
		}
		stats.People++
	}
	for _, w := range ds.Works {
		if err := sink.AddWork(w.ID, w.Title, w.Year); err != nil {
			stats.SkippedRows++
			continue
		}
		stats.Works++
	}
	for _, link := range ds.Participations {
		if !sink.LinkParticipation(link.PersonID, link.WorkID) {
			stats.Dropped++
			if logger != nil {
				logger.Debug("dropped dangling participation", "personId", link.PersonID, "movieId", link.WorkID)
			}
			continue
		}
		stats.Participations++
	}
	return stats
}

// LoadDir reads a CSV dataset directory into a new store.
func LoadDir(ctx context.Context, dir string, logger *slog.Logger) (*store.Store, Stats, error) {
	ds, err := ReadDir(ctx, dir)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("load dataset %s: %w", dir, err)
	}
	st := store.New()
	return st, Apply(ds, st, logger), nil
}
