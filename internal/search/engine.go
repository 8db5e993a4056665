package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vanshika/degrees/internal/domain"
)

var (
	// ErrNoPath means the search explored everything reachable from the source without
	// meeting the target. It is an expected outcome.
	ErrNoPath = errors.New("no connecting path")
	// ErrUnknownPerson means the source or target id is not in the graph.
	ErrUnknownPerson = errors.New("unknown person")
)

// Adjacency is the read-only view of the graph the engine walks.
type Adjacency interface {
	HasPerson(id string) bool
	Neighbors(personID string) []domain.Step
}

// Outcome labels how a search finished.
type Outcome string

const (
	OutcomeFound     Outcome = "found"
	OutcomeSame      Outcome = "same"
	OutcomeNoPath    Outcome = "no_path"
	OutcomeUnknown   Outcome = "unknown_person"
	OutcomeCancelled Outcome = "cancelled"
)

// Stats describes a finished search.
type Stats struct {
	Strategy Strategy
	Outcome  Outcome
	Expanded int
	Degrees  int
	Elapsed  time.Duration
}

// Observer receives Stats after every search.
type Observer interface {
	ObserveSearch(stats Stats)
}

// Engine runs shortest-path queries against an Adjacency. An Engine holds no per-query
// state, so one instance serves concurrent searches.
type Engine struct {
	adj      Adjacency
	strategy Strategy
	observer Observer
	logger   *slog.Logger
	nowFn    func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithStrategy selects the frontier removal order. Only BreadthFirst guarantees minimal paths.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithObserver registers a stats observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New builds an engine over the given adjacency.
func New(adj Adjacency, opts ...Option) *Engine {
	e := &Engine{
		adj:      adj,
		strategy: BreadthFirst,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		nowFn:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the configured removal strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// ShortestPath returns the hops connecting source to target. It returns ErrNoPath when the
// two are not connected and ErrUnknownPerson when either id is missing. Cancellation of ctx
// is checked once per expanded node.
func (e *Engine) ShortestPath(ctx context.Context, source, target string) (domain.Path, error) {
	if source == target {
		e.observe(Stats{Strategy: e.strategy, Outcome: OutcomeSame})
		return domain.Path{}, nil
	}

	start := e.nowFn()
	path, expanded, err := e.search(ctx, source, target)

	stats := Stats{
		Strategy: e.strategy,
		Expanded: expanded,
		Degrees:  len(path),
		Elapsed:  e.nowFn().Sub(start),
	}
	switch {
	case err == nil:
		stats.Outcome = OutcomeFound
	case errors.Is(err, ErrNoPath):
		stats.Outcome = OutcomeNoPath
	case errors.Is(err, ErrUnknownPerson):
		stats.Outcome = OutcomeUnknown
	default:
		stats.Outcome = OutcomeCancelled
	}
	e.observe(stats)

	e.logger.Debug("search finished",
		"source", source,
		"target", target,
		"strategy", e.strategy.String(),
		"outcome", string(stats.Outcome),
		"expanded", expanded,
		"degrees", len(path),
	)
	return path, err
}

func (e *Engine) search(ctx context.Context, source, target string) (domain.Path, int, error) {
	if !e.adj.HasPerson(source) {
		return nil, 0, fmt.Errorf("%w: source %q", ErrUnknownPerson, source)
	}
	if !e.adj.HasPerson(target) {
		return nil, 0, fmt.Errorf("%w: target %q", ErrUnknownPerson, target)
	}

	arena := []Node{{State: source, Parent: -1, Index: 0}}
	frontier := NewFrontier(e.strategy)
	frontier.Add(arena[0])
	explored := map[string]struct{}{source: {}}

	expanded := 0
	for !frontier.Empty() {
		if err := ctx.Err(); err != nil {
			return nil, expanded, err
		}

		node, err := frontier.Remove()
		if err != nil {
			return nil, expanded, fmt.Errorf("internal search error: %w", err)
		}
		expanded++

		for _, step := range e.adj.Neighbors(node.State) {
			if _, seen := explored[step.PersonID]; seen {
				continue
			}
			child := Node{
				State:  step.PersonID,
				Action: step.WorkID,
				Parent: node.Index,
				Index:  len(arena),
			}
			if step.PersonID == target {
				return reconstruct(arena, child), expanded, nil
			}
			explored[step.PersonID] = struct{}{}
			arena = append(arena, child)
			frontier.Add(child)
		}
	}
	return nil, expanded, ErrNoPath
}

// reconstruct walks parent indexes from the terminal node back to the root.
func reconstruct(arena []Node, terminal Node) domain.Path {
	var path domain.Path
	for node := terminal; node.Parent >= 0; node = arena[node.Parent] {
		path = append(path, domain.Step{WorkID: node.Action, PersonID: node.State})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (e *Engine) observe(stats Stats) {
	if e.observer != nil {
		e.observer.ObserveSearch(stats)
	}
}
