package graph

import (
	"context"
	"sync"
)

// AccessMode tells read calls from write calls in a MemoryClient log.
type AccessMode string

const (
	AccessRead  AccessMode = "read"
	AccessWrite AccessMode = "write"
)

// Call is one statement executed against a MemoryClient.
type Call struct {
	Mode   AccessMode
	Query  string
	Params map[string]any
}

// MemoryClient is an in-memory Client for tests. It records every call and answers each
// query with the results stubbed for that exact statement, in order.
type MemoryClient struct {
	mu           sync.Mutex
	calls        []Call
	stubs        map[string][]Result
	failures     map[string]error
	err          error
	connectivity error
}

// NewMemoryClient returns a client with no stubs.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		stubs:    make(map[string][]Result),
		failures: make(map[string]error),
	}
}

// Stub queues results returned by successive executions of query. Once the queue is
// drained the query returns an empty result.
func (m *MemoryClient) Stub(query string, results ...Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs[query] = append(m.stubs[query], results...)
	return m
}

// FailQuery makes every execution of query return err.
func (m *MemoryClient) FailQuery(query string, err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[query] = err
	return m
}

// WithError makes every statement return err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(AccessWrite, cypher, params)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(AccessRead, cypher, params)
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// Calls returns a snapshot of executed statements, optionally filtered by mode.
func (m *MemoryClient) Calls(mode AccessMode) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.calls {
		if mode == "" || c.Mode == mode {
			out = append(out, c)
		}
	}
	return out
}

func (m *MemoryClient) execute(mode AccessMode, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}
	m.calls = append(m.calls, Call{Mode: mode, Query: cypher, Params: cloneMap(params)})

	if err, ok := m.failures[cypher]; ok {
		return Result{}, err
	}
	queue := m.stubs[cypher]
	if len(queue) == 0 {
		return Result{}, nil
	}
	m.stubs[cypher] = queue[1:]
	return queue[0], nil
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
