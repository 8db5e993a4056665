package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/loader"
)

type stubWriter struct {
	mu        sync.Mutex
	people    []string
	works     []string
	links     []loader.ParticipationRecord
	personErr error
	known     map[string]bool
}

func (s *stubWriter) UpsertPerson(_ context.Context, p loader.PersonRecord) error {
	if s.personErr != nil {
		return s.personErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = append(s.people, p.ID)
	return nil
}

func (s *stubWriter) UpsertWork(_ context.Context, w loader.WorkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.works = append(s.works, w.ID)
	return nil
}

func (s *stubWriter) LinkParticipation(_ context.Context, link loader.ParticipationRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.known[link.PersonID] || !s.known[link.WorkID] {
		return false, nil
	}
	s.links = append(s.links, link)
	return true, nil
}

func TestBulkIngestor_Ingest(t *testing.T) {
	writer := &stubWriter{known: map[string]bool{"1": true, "2": true, "m": true}}
	ingestor := NewBulkIngestor(writer, 3)

	stats, err := ingestor.Ingest(context.Background(), loader.Dataset{
		People: []loader.PersonRecord{{ID: "1"}, {ID: "2"}},
		Works:  []loader.WorkRecord{{ID: "m"}},
		Participations: []loader.ParticipationRecord{
			{PersonID: "1", WorkID: "m"},
			{PersonID: "2", WorkID: "m"},
			{PersonID: "9", WorkID: "m"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, IngestStats{People: 2, Works: 1, Participations: 2, Dropped: 1}, stats)
	assert.ElementsMatch(t, []string{"1", "2"}, writer.people)
	assert.Len(t, writer.links, 2)
}

func TestBulkIngestorAggregatesErrors(t *testing.T) {
	boom := errors.New("boom")
	writer := &stubWriter{personErr: boom}
	ingestor := NewBulkIngestor(writer, 2)

	stats, err := ingestor.Ingest(context.Background(), loader.Dataset{
		People: []loader.PersonRecord{{ID: "1"}, {ID: "2"}},
		Works:  []loader.WorkRecord{{ID: "m"}},
	})
	require.Error(t, err)

	var taskErr *TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Len(t, taskErr.Errors, 2)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, writer.works, "movies are not written after a failed people batch")
	assert.Zero(t, stats.People)
}

func TestBulkIngestor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ingestor := NewBulkIngestor(&stubWriter{}, 2)
	err := ingestor.IngestPeople(ctx, []loader.PersonRecord{{ID: "1"}, {ID: "2"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBulkIngestor_Empty(t *testing.T) {
	ingestor := NewBulkIngestor(&stubWriter{}, 0)
	stats, err := ingestor.Ingest(context.Background(), loader.Dataset{})
	require.NoError(t, err)
	assert.Equal(t, IngestStats{}, stats)
}
