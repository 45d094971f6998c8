package yamlfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ storage.Storage = (*File)(nil)

func TestLoad_MissingFile(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "students.yaml"))

	_, err := f.Load()

	assert.ErrorIs(t, err, storage.ErrNoData)
}

func TestSaveLoad_RoundTripKeepsCommas(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "students.yaml"))
	students := []types.Student{
		{ID: 3, FirstName: "Anna", LastName: "Lee, Jr", Age: 20, Group: "G1"},
		{ID: 1, FirstName: "Boris", LastName: "Ivanov", Age: 19, Group: "A,1"},
		{ID: 2, FirstName: "", LastName: "", Age: -1, Group: ""},
	}

	require.NoError(t, f.Save(students))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, students, got)
}

func TestLoad_SkipsBadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.yaml")
	doc := `students:
  - id: 1
    first_name: Anna
    last_name: Petrova
    age: 21
    group: B2
  - id: 2
    first_name: Boris
    last_name: Ivanov
    age: nineteen
    group: A1
  - id: 3
    first_name: Clara
    last_name: Annenkova
    age: 20
    group: C3
  - first_name: Dina
    last_name: Volkova
    age: 22
    group: D4
  - id: 5
    first_name: Egor
    last_name: Orlov
    group: D4
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := New(path).Load()

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestLoad_NotYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.yaml")
	require.NoError(t, os.WriteFile(path, []byte("students: [unclosed"), 0o644))

	_, err := New(path).Load()

	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNoData)
}

func TestSave_EmptyRoster(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "students.yaml"))

	require.NoError(t, f.Save(nil))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}
