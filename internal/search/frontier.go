package search

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyFrontier is returned by Remove on an empty frontier. The engine never triggers
// it because it checks Empty first; seeing it means a bug in the caller.
var ErrEmptyFrontier = errors.New("empty frontier")

// Strategy selects which node a frontier hands out next.
type Strategy int

const (
	// BreadthFirst removes the oldest node. Required for shortest paths.
	BreadthFirst Strategy = iota
	// DepthFirst removes the newest node. It still finds a path when one exists but the
	// path is not guaranteed to be the shortest.
	DepthFirst
)

func (s Strategy) String() string {
	switch s {
	case BreadthFirst:
		return "bfs"
	case DepthFirst:
		return "dfs"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps a configuration value onto a Strategy.
func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "bfs", "breadth", "breadth-first":
		return BreadthFirst, nil
	case "dfs", "depth", "depth-first":
		return DepthFirst, nil
	default:
		return 0, fmt.Errorf("unknown search strategy %q", value)
	}
}

// Node is one step of exploration. Parent and Index are positions in the per-search arena;
// the root has Parent -1 and an empty Action.
type Node struct {
	State  string
	Action string
	Parent int
	Index  int
}

// Frontier is the set of discovered nodes waiting to be expanded.
type Frontier struct {
	strategy Strategy
	nodes    []Node
	head     int
	states   map[string]int
}

// NewFrontier returns an empty frontier using the given removal strategy.
func NewFrontier(strategy Strategy) *Frontier {
	return &Frontier{
		strategy: strategy,
		states:   make(map[string]int),
	}
}

// Add pushes a node onto the frontier.
func (f *Frontier) Add(node Node) {
	f.nodes = append(f.nodes, node)
	f.states[node.State]++
}

// ContainsState reports whether a node with the given state is waiting in the frontier.
func (f *Frontier) ContainsState(state string) bool {
	return f.states[state] > 0
}

// Empty reports whether there is nothing left to remove.
func (f *Frontier) Empty() bool {
	return f.Len() == 0
}

// Len returns the number of waiting nodes.
func (f *Frontier) Len() int {
	return len(f.nodes) - f.head
}

// Remove takes the next node according to the strategy.
func (f *Frontier) Remove() (Node, error) {
	if f.Empty() {
		return Node{}, ErrEmptyFrontier
	}

	var node Node
	switch f.strategy {
	case DepthFirst:
		last := len(f.nodes) - 1
		node = f.nodes[last]
		f.nodes = f.nodes[:last]
	default:
		node = f.nodes[f.head]
		f.nodes[f.head] = Node{}
		f.head++
		// reclaim the consumed prefix once it dominates the backing array
		if f.head > 64 && f.head*2 >= len(f.nodes) {
			f.nodes = append(f.nodes[:0], f.nodes[f.head:]...)
			f.head = 0
		}
	}

	if n := f.states[node.State]; n <= 1 {
		delete(f.states, node.State)
	} else {
		f.states[node.State] = n - 1
	}
	return node, nil
}
