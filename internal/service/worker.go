package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vanshika/degrees/internal/loader"
)

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// GraphWriter is the persistence contract the ingestor pushes records into.
type GraphWriter interface {
	UpsertPerson(ctx context.Context, p loader.PersonRecord) error
	UpsertWork(ctx context.Context, w loader.WorkRecord) error
	LinkParticipation(ctx context.Context, link loader.ParticipationRecord) (bool, error)
}

// IngestStats counts what a bulk ingest wrote.
type IngestStats struct {
	People         int
	Works          int
	Participations int
	Dropped        int
}

// BulkIngestor writes large datasets to the graph using worker pools.
type BulkIngestor struct {
	writer  GraphWriter
	workers int
}

// NewBulkIngestor creates a new BulkIngestor instance with the provided concurrency.
func NewBulkIngestor(writer GraphWriter, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{
		writer:  writer,
		workers: workers,
	}
}

// Ingest writes people and movies, then links them. Links are only attempted once both
// node batches succeeded.
func (bi *BulkIngestor) Ingest(ctx context.Context, ds loader.Dataset) (IngestStats, error) {
	var stats IngestStats

	if err := bi.IngestPeople(ctx, ds.People); err != nil {
		return stats, err
	}
	stats.People = len(ds.People)

	if err := bi.IngestWorks(ctx, ds.Works); err != nil {
		return stats, err
	}
	stats.Works = len(ds.Works)

	linked, err := bi.IngestParticipations(ctx, ds.Participations)
	stats.Participations = linked
	stats.Dropped = len(ds.Participations) - linked
	return stats, err
}

// IngestPeople upserts person records concurrently.
func (bi *BulkIngestor) IngestPeople(ctx context.Context, people []loader.PersonRecord) error {
	return bi.run(ctx, len(people), func(idx int) error {
		return bi.writer.UpsertPerson(ctx, people[idx])
	})
}

// IngestWorks upserts movie records concurrently.
func (bi *BulkIngestor) IngestWorks(ctx context.Context, works []loader.WorkRecord) error {
	return bi.run(ctx, len(works), func(idx int) error {
		return bi.writer.UpsertWork(ctx, works[idx])
	})
}

// IngestParticipations links people to movies concurrently and returns how many links
// matched both endpoints.
func (bi *BulkIngestor) IngestParticipations(ctx context.Context, links []loader.ParticipationRecord) (int, error) {
	var linked atomic.Int64
	err := bi.run(ctx, len(links), func(idx int) error {
		ok, err := bi.writer.LinkParticipation(ctx, links[idx])
		if ok {
			linked.Add(1)
		}
		return err
	})
	return int(linked.Load()), err
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
