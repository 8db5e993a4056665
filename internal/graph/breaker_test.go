package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerClient_TripsAfterFailures(t *testing.T) {
	boom := errors.New("connection refused")
	mem := NewMemoryClient().FailQuery("MATCH (n) RETURN n", boom)
	client := NewBreakerClient(mem, BreakerSettings{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		ReadyToTripRatio: 0.5,
	}, nil)

	for i := 0; i < 3; i++ {
		_, err := client.ExecuteRead(context.Background(), "MATCH (n) RETURN n", nil)
		require.ErrorIs(t, err, boom)
	}
	assert.Equal(t, gobreaker.StateOpen, client.State())

	_, err := client.ExecuteRead(context.Background(), "MATCH (n) RETURN n", nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, mem.Calls(AccessRead), 3, "open breaker does not reach the database")
}

func TestBreakerClient_PassesResults(t *testing.T) {
	want := Result{Records: []Record{{"id": "102"}}}
	mem := NewMemoryClient().Stub("RETURN 1", want)
	client := NewBreakerClient(mem, BreakerSettings{Name: "test"}, nil)

	got, err := client.ExecuteWrite(context.Background(), "RETURN 1", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	calls := mem.Calls(AccessWrite)
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Params["a"])
}

func TestRecord_Accessors(t *testing.T) {
	rec := Record{"name": "Kevin Bacon", "birth": int64(1958), "raw": []byte("x")}
	assert.Equal(t, "Kevin Bacon", rec.String("name"))
	assert.Equal(t, "x", rec.String("raw"))
	assert.Equal(t, "", rec.String("missing"))

	birth, ok := rec.Int("birth")
	assert.True(t, ok)
	assert.Equal(t, 1958, birth)

	_, ok = rec.Int("name")
	assert.False(t, ok)
}
