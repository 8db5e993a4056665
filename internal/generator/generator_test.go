package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/loader"
)

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := Config{NumPeople: 50, NumMovies: 20, CastSize: 4, SharedNameChance: 0.1, UnknownBirthChance: 0.2, Seed: 7}

	first, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.People, 50)
	assert.Len(t, first.Works, 20)
	assert.GreaterOrEqual(t, len(first.Participations), 20)
	assert.LessOrEqual(t, len(first.Participations), 80)
}

func TestGenerateCastIsUniquePerMovie(t *testing.T) {
	ds, err := New(Config{NumPeople: 3, NumMovies: 30, CastSize: 10, Seed: 3}).Generate(context.Background())
	require.NoError(t, err)

	seen := make(map[loader.ParticipationRecord]bool)
	for _, link := range ds.Participations {
		assert.False(t, seen[link], "duplicate appearance %v", link)
		seen[link] = true
	}
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(DefaultConfig()).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteDatasetLoadsBack(t *testing.T) {
	ds, err := New(Config{NumPeople: 40, NumMovies: 15, Seed: 11}).Generate(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteDataset(ds, dir))

	st, stats, err := loader.LoadDir(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, stats.People)
	assert.Equal(t, 15, stats.Works)
	assert.Equal(t, len(ds.Participations), stats.Participations)
	assert.Zero(t, stats.Dropped)
	assert.Equal(t, 40, st.Stats().People)
}
