package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = `id,name,birth
102,Kevin Bacon,1958
129,Tom Cruise,1962
144,Cary Elwes,
1597,Mandy Patinkin,not-a-year
`

const moviesCSV = `id,title,year
104257,A Few Good Men,1992
93779,The Princess Bride,1987
`

const starsCSV = `person_id,movie_id
102,104257
129,104257
144,93779
1597,93779
129,999999
777,93779
`

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PeopleFile), []byte(peopleCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MoviesFile), []byte(moviesCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, StarsFile), []byte(starsCSV), 0o600))
	return dir
}

func TestLoadDir(t *testing.T) {
	st, stats, err := LoadDir(context.Background(), writeDataset(t), nil)
	require.NoError(t, err)

	assert.Equal(t, Stats{People: 4, Works: 2, Participations: 4, Dropped: 2}, stats)

	storeStats := st.Stats()
	assert.Equal(t, 4, storeStats.People)
	assert.Equal(t, 2, storeStats.Works)
	assert.Equal(t, 4, storeStats.Participations)

	bacon, ok := st.Person("102")
	require.True(t, ok)
	require.NotNil(t, bacon.Birth)
	assert.Equal(t, 1958, *bacon.Birth)

	elwes, _ := st.Person("144")
	assert.Nil(t, elwes.Birth)
	patinkin, _ := st.Person("1597")
	assert.Nil(t, patinkin.Birth, "malformed birth years read as unknown")

	cruise, _ := st.Person("129")
	assert.Equal(t, []string{"104257"}, cruise.WorkIDs, "link to the missing movie was dropped")
	assert.Equal(t, []string{"102"}, st.PersonIDsByName("kevin bacon"))
}

func TestLoadDir_MissingFile(t *testing.T) {
	dir := writeDataset(t)
	require.NoError(t, os.Remove(filepath.Join(dir, MoviesFile)))

	_, _, err := LoadDir(context.Background(), dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MoviesFile)
}

func TestParsePeople_ColumnsByHeader(t *testing.T) {
	records, err := ParsePeople(context.Background(), strings.NewReader("\ufeffbirth,name,id\n1958,Kevin Bacon,102\n,Short Row\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "102", records[0].ID)
	assert.Equal(t, "Kevin Bacon", records[0].Name)
	assert.Equal(t, "", records[1].ID)
}

func TestParseParticipations_MissingColumn(t *testing.T) {
	_, err := ParseParticipations(context.Background(), strings.NewReader("person_id,film\n1,2\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingColumn))
}

func TestApply_SkipsRowsWithoutID(t *testing.T) {
	people, err := ParsePeople(context.Background(), strings.NewReader("id,name,birth\n,Ghost,\n1,Alice,\n"))
	require.NoError(t, err)

	ds := Dataset{People: people}
	st, _, err := LoadFrom(context.Background(), staticExporter(ds), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Stats().People)
	assert.Equal(t, Stats{People: 1, SkippedRows: 1}, Apply(ds, st, nil))
}

type staticExporter Dataset

func (s staticExporter) Export(context.Context) (Dataset, error) {
	return Dataset(s), nil
}
