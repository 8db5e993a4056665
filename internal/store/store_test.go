package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestStore_LinkParticipation(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson("102", "Kevin Bacon", intPtr(1958)))
	require.NoError(t, s.AddWork("104257", "A Few Good Men", 1992))

	assert.True(t, s.LinkParticipation("102", "104257"))
	assert.True(t, s.LinkParticipation("102", "104257"), "relinking is a no-op, not a failure")

	stats := s.Stats()
	assert.Equal(t, Stats{People: 1, Works: 1, Participations: 1}, stats)

	person, ok := s.Person("102")
	require.True(t, ok)
	assert.Equal(t, []string{"104257"}, person.WorkIDs)
	require.NotNil(t, person.Birth)
	assert.Equal(t, 1958, *person.Birth)

	work, ok := s.Work("104257")
	require.True(t, ok)
	assert.Equal(t, []string{"102"}, work.PersonIDs)
}

func TestStore_DanglingParticipationIsDropped(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson("1", "Alice", nil))
	require.NoError(t, s.AddWork("m1", "First", 2001))

	before := s.Stats()
	assert.False(t, s.LinkParticipation("1", "missing-work"))
	assert.False(t, s.LinkParticipation("missing-person", "m1"))
	assert.Equal(t, before, s.Stats())

	person, _ := s.Person("1")
	assert.Empty(t, person.WorkIDs)
	work, _ := s.Work("m1")
	assert.Empty(t, work.PersonIDs)
}

func TestStore_RejectsEmptyID(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.AddPerson("  ", "Nobody", nil), ErrEmptyID)
	assert.ErrorIs(t, s.AddWork("", "Untitled", 0), ErrEmptyID)
	assert.Equal(t, Stats{}, s.Stats())
}

func TestStore_PersonIDsByName(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson("2", "Emma Watson", intPtr(1990)))
	require.NoError(t, s.AddPerson("1", "emma watson", intPtr(1970)))
	require.NoError(t, s.AddPerson("3", "Tom Hanks", nil))

	assert.Equal(t, []string{"1", "2"}, s.PersonIDsByName("EMMA WATSON"))
	assert.Equal(t, []string{"3"}, s.PersonIDsByName(" tom hanks "))
	assert.Empty(t, s.PersonIDsByName("Nobody"))
}

func TestStore_AddPersonRenameMovesIndex(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson("1", "Old Name", nil))
	require.NoError(t, s.AddWork("m1", "Film", 2000))
	require.True(t, s.LinkParticipation("1", "m1"))

	require.NoError(t, s.AddPerson("1", "New Name", intPtr(1980)))

	assert.Empty(t, s.PersonIDsByName("old name"))
	assert.Equal(t, []string{"1"}, s.PersonIDsByName("new name"))
	person, _ := s.Person("1")
	assert.Equal(t, []string{"m1"}, person.WorkIDs)
	assert.Equal(t, 1, s.Stats().People)
}

func TestStore_Neighbors(t *testing.T) {
	s := New()
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, s.AddPerson(id, id, nil))
	}
	require.NoError(t, s.AddWork("M1", "M1", 0))
	require.NoError(t, s.AddWork("M2", "M2", 0))
	s.LinkParticipation("A", "M1")
	s.LinkParticipation("B", "M1")
	s.LinkParticipation("B", "M2")
	s.LinkParticipation("C", "M2")

	assert.Equal(t, []domain.Step{
		{WorkID: "M1", PersonID: "A"},
		{WorkID: "M1", PersonID: "B"},
	}, s.Neighbors("A"))

	assert.Equal(t, []domain.Step{
		{WorkID: "M1", PersonID: "A"},
		{WorkID: "M1", PersonID: "B"},
		{WorkID: "M2", PersonID: "B"},
		{WorkID: "M2", PersonID: "C"},
	}, s.Neighbors("B"))

	assert.Nil(t, s.Neighbors("unknown"))
	assert.Equal(t, s.Neighbors("B"), s.Neighbors("B"))
}

func TestStore_PersonReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson("1", "Alice", intPtr(1900)))
	require.NoError(t, s.AddWork("m1", "Film", 2000))
	s.LinkParticipation("1", "m1")

	p, _ := s.Person("1")
	p.WorkIDs[0] = "tampered"
	*p.Birth = 2000

	again, _ := s.Person("1")
	assert.Equal(t, []string{"m1"}, again.WorkIDs)
	assert.Equal(t, 1900, *again.Birth)
}
