package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_BreadthFirstIsFIFO(t *testing.T) {
	f := NewFrontier(BreadthFirst)
	f.Add(Node{State: "a"})
	f.Add(Node{State: "b"})
	f.Add(Node{State: "c"})

	var order []string
	for !f.Empty() {
		n, err := f.Remove()
		require.NoError(t, err)
		order = append(order, n.State)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestFrontier_DepthFirstIsLIFO(t *testing.T) {
	f := NewFrontier(DepthFirst)
	f.Add(Node{State: "a"})
	f.Add(Node{State: "b"})
	f.Add(Node{State: "c"})

	var order []string
	for !f.Empty() {
		n, err := f.Remove()
		require.NoError(t, err)
		order = append(order, n.State)
	}
	assert.Equal(t, []string{"c", "b", "a"}, order)
}

func TestFrontier_RemoveEmpty(t *testing.T) {
	for _, s := range []Strategy{BreadthFirst, DepthFirst} {
		f := NewFrontier(s)
		_, err := f.Remove()
		assert.ErrorIs(t, err, ErrEmptyFrontier, s.String())
	}
}

func TestFrontier_ContainsStateTracksMembership(t *testing.T) {
	f := NewFrontier(BreadthFirst)
	f.Add(Node{State: "a", Action: "m1"})
	f.Add(Node{State: "a", Action: "m2"})
	f.Add(Node{State: "b"})

	assert.True(t, f.ContainsState("a"))
	assert.False(t, f.ContainsState("z"))

	_, _ = f.Remove()
	assert.True(t, f.ContainsState("a"), "second node with the same state is still queued")
	_, _ = f.Remove()
	assert.False(t, f.ContainsState("a"))
	assert.True(t, f.ContainsState("b"))
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_BreadthFirstCompactionKeepsOrder(t *testing.T) {
	f := NewFrontier(BreadthFirst)
	next := 0
	for i := 0; i < 500; i++ {
		f.Add(Node{State: string(rune('a' + i%26)), Index: i})
		if i%3 == 0 {
			n, err := f.Remove()
			require.NoError(t, err)
			require.Equal(t, next, n.Index)
			next++
		}
	}
	for !f.Empty() {
		n, err := f.Remove()
		require.NoError(t, err)
		require.Equal(t, next, n.Index)
		next++
	}
	assert.Equal(t, 500, next)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("BFS")
	require.NoError(t, err)
	assert.Equal(t, BreadthFirst, s)

	s, err = ParseStrategy("depth-first")
	require.NoError(t, err)
	assert.Equal(t, DepthFirst, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, BreadthFirst, s)

	_, err = ParseStrategy("astar")
	assert.Error(t, err)
}
