package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/names"
	"github.com/vanshika/degrees/internal/search"
)

// Directory looks up people and works by id.
type Directory interface {
	Person(id string) (domain.Person, bool)
	Work(id string) (domain.Work, bool)
}

// PathFinder computes the hops between two person ids.
type PathFinder interface {
	ShortestPath(ctx context.Context, source, target string) (domain.Path, error)
}

// NameResolver maps display names to person ids.
type NameResolver interface {
	Candidates(name string) []domain.Person
	Resolve(ctx context.Context, name string, chooser names.Chooser) (string, error)
}

// DegreesService answers degrees-of-separation queries and hydrates the result.
type DegreesService struct {
	dir      Directory
	finder   PathFinder
	resolver NameResolver
	timeout  time.Duration
}

// Option customises a DegreesService.
type Option func(*DegreesService)

// WithSearchTimeout bounds each path search. Zero disables the bound.
func WithSearchTimeout(d time.Duration) Option {
	return func(s *DegreesService) { s.timeout = d }
}

// NewDegreesService wires the store, engine and resolver together.
func NewDegreesService(dir Directory, finder PathFinder, resolver NameResolver, opts ...Option) *DegreesService {
	s := &DegreesService{dir: dir, finder: finder, resolver: resolver}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect resolves both names and connects the chosen people. Name errors are returned
// wrapped so callers can still match names.ErrPersonNotFound or *names.AmbiguousError.
func (s *DegreesService) Connect(ctx context.Context, sourceName, targetName string, chooser names.Chooser) (domain.Connection, error) {
	sourceID, err := s.resolver.Resolve(ctx, sourceName, chooser)
	if err != nil {
		return domain.Connection{}, fmt.Errorf("source %q: %w", sourceName, err)
	}
	targetID, err := s.resolver.Resolve(ctx, targetName, chooser)
	if err != nil {
		return domain.Connection{}, fmt.Errorf("target %q: %w", targetName, err)
	}
	return s.ConnectIDs(ctx, sourceID, targetID)
}

// ConnectIDs connects two person ids. An unreachable pair is a successful answer with
// Connected false; unknown ids yield search.ErrUnknownPerson.
func (s *DegreesService) ConnectIDs(ctx context.Context, sourceID, targetID string) (domain.Connection, error) {
	source, ok := s.dir.Person(sourceID)
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: source %q", search.ErrUnknownPerson, sourceID)
	}
	target, ok := s.dir.Person(targetID)
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: target %q", search.ErrUnknownPerson, targetID)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	path, err := s.finder.ShortestPath(ctx, sourceID, targetID)
	if errors.Is(err, search.ErrNoPath) {
		return domain.Connection{Source: source, Target: target}, nil
	}
	if err != nil {
		return domain.Connection{}, fmt.Errorf("connect %s to %s: %w", sourceID, targetID, err)
	}
	return s.hydrate(source, target, path)
}

// Person returns the person with the given id.
func (s *DegreesService) Person(id string) (domain.Person, bool) {
	return s.dir.Person(id)
}

// SearchPeople lists everyone sharing the given name.
func (s *DegreesService) SearchPeople(name string) []domain.Person {
	return s.resolver.Candidates(name)
}

func (s *DegreesService) hydrate(source, target domain.Person, path domain.Path) (domain.Connection, error) {
	conn := domain.Connection{
		Source:    source,
		Target:    target,
		Connected: true,
		Links:     make([]domain.Link, 0, len(path)),
	}
	prev := source
	for _, step := range path {
		next, ok := s.dir.Person(step.PersonID)
		if !ok {
			return domain.Connection{}, fmt.Errorf("hydrate path: person %q vanished", step.PersonID)
		}
		work, ok := s.dir.Work(step.WorkID)
		if !ok {
			return domain.Connection{}, fmt.Errorf("hydrate path: movie %q vanished", step.WorkID)
		}
		conn.Links = append(conn.Links, domain.Link{From: prev, To: next, Work: work})
		prev = next
	}
	return conn, nil
}
