package shell

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aanand-mishra/roster/internal/roster"
	"github.com/aanand-mishra/roster/internal/storage/flatfile"
	"github.com/aanand-mishra/roster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *roster.Store
	dataPath string
	xlsxPath string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dataPath: filepath.Join(dir, "students.txt"),
		xlsxPath: filepath.Join(dir, "students.xlsx"),
	}
	f.store = roster.New(flatfile.New(f.dataPath))
	return f
}

// run feeds the given lines to a new Shell and returns everything it printed.
func (f *fixture) run(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer

	sh := New(f.store, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out,
		WithExportPath(f.xlsxPath),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	require.NoError(t, sh.Run())
	return out.String()
}

func TestRun_ExitAndEOF(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "0")
	assert.Contains(t, out, "1. Add student")
	assert.Contains(t, out, "0. Exit")

	// No exit command: input just ends.
	f.run(t)
}

func TestRun_InvalidChoice(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "42", "0")

	assert.Contains(t, out, "Error: Invalid choice.")
}

func TestAdd(t *testing.T) {
	f := newFixture(t)

	out := f.run(t,
		"1", "Anna", "Petrova", "21", "B2",
		"1", "", "", " 19 ", "",
		"0",
	)

	assert.Contains(t, out, "Student added with ID 1.")
	assert.Contains(t, out, "Student added with ID 2.")
	assert.Equal(t, []types.Student{
		{ID: 1, FirstName: "Anna", LastName: "Petrova", Age: 21, Group: "B2"},
		{ID: 2, Age: 19},
	}, f.store.All())
}

func TestAdd_RejectsBadAge(t *testing.T) {
	f := newFixture(t)

	out := f.run(t,
		"1", "Anna", "Petrova", "twenty", "B2",
		"1", "Anna", "Petrova", "", "B2",
		"1", "Anna", "Petrova", "20.5", "B2",
		"0",
	)

	assert.Contains(t, out, "Error: field Age must be a number")
	assert.Contains(t, out, "Error: field Age is required")
	assert.Contains(t, out, "Error: field Age must be a whole number")
	assert.Zero(t, f.store.Len())
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	f.store.Add("Anna", "Petrova", 21, "B2")
	f.store.Add("Boris", "Ivanov", 19, "A1")

	out := f.run(t, "2", "1", "2", "9", "2", "x", "0")

	assert.Contains(t, out, "Student removed.")
	assert.Contains(t, out, "Error: Student with ID 9 not found.")
	assert.Contains(t, out, "Error: field ID must be a number")
	require.Equal(t, 1, f.store.Len())
	assert.Equal(t, 2, f.store.All()[0].ID)
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	f.store.Add("Anna", "Petrova", 21, "B2")

	out := f.run(t,
		"3", "1", "Anya", "Petrova-Lee", "22", "C3",
		"3", "7", "X", "Y", "1", "Z",
		"0",
	)

	assert.Contains(t, out, "New first name: ")
	assert.Contains(t, out, "Student updated.")
	assert.Contains(t, out, "Error: Student with ID 7 not found.")
	assert.Equal(t, []types.Student{
		{ID: 1, FirstName: "Anya", LastName: "Petrova-Lee", Age: 22, Group: "C3"},
	}, f.store.All())
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	f.store.Add("Anna", "Petrova", 21, "B2")
	f.store.Add("Boris", "Sokolov", 19, "A1")

	out := f.run(t, "4", "ANN", "4", "zzz", "0")

	assert.Contains(t, out, "ID: 1, First name: Anna")
	assert.NotContains(t, out, "First name: Boris")
	assert.Contains(t, out, "No students found.")
}

func TestSort(t *testing.T) {
	f := newFixture(t)
	f.store.Add("Anna", "Petrova", 21, "B2")
	f.store.Add("Boris", "Sokolov", 19, "A1")

	out := f.run(t, "5", "Age", "0")

	boris := strings.Index(out, "First name: Boris")
	anna := strings.Index(out, "First name: Anna")
	require.NotEqual(t, -1, boris)
	require.NotEqual(t, -1, anna)
	assert.Less(t, boris, anna)

	// The sort is a view: the roster keeps insertion order.
	assert.Equal(t, 1, f.store.All()[0].ID)
}

func TestSort_UnknownCriterion(t *testing.T) {
	f := newFixture(t)
	f.store.Add("Boris", "Sokolov", 19, "A1")
	f.store.Add("Anna", "Petrova", 21, "B2")

	out := f.run(t, "5", "height", "0")

	assert.Contains(t, out, `Unknown criterion "height", showing current order.`)
	assert.Less(t, strings.Index(out, "First name: Boris"), strings.Index(out, "First name: Anna"))
}

func TestShowAll_Empty(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "6", "0")

	assert.Contains(t, out, "The roster is empty.")
}

func TestSaveAndLoad(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "8", "1", "Anna", "Petrova", "21", "B2", "7", "0")
	assert.Contains(t, out, "Error: File not found.")
	assert.Contains(t, out, "Saved 1 students.")

	raw, err := os.ReadFile(f.dataPath)
	require.NoError(t, err)
	assert.Equal(t, "1,Anna,Petrova,21,B2\n", string(raw))

	fresh := &fixture{dataPath: f.dataPath, xlsxPath: f.xlsxPath, store: roster.New(flatfile.New(f.dataPath))}
	out = fresh.run(t, "8", "6", "0")
	assert.Contains(t, out, "Loaded 1 students.")
	assert.Contains(t, out, "ID: 1, First name: Anna, Last name: Petrova, Age: 21, Group: B2")
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	f.store.Add("Anna", "Petrova", 21, "B2")

	out := f.run(t, "9", "0")

	assert.Contains(t, out, "Exported 1 students to "+f.xlsxPath+".")
	assert.FileExists(t, f.xlsxPath)
}

func TestEOFMidAction(t *testing.T) {
	f := newFixture(t)

	f.run(t, "1", "Anna")

	assert.Zero(t, f.store.Len())
}
