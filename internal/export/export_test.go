package export

import (
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/roster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.xlsx")

	err := WriteXLSX(path, []types.Student{
		{ID: 1, FirstName: "Anna", LastName: "Lee, Jr", Age: 21, Group: "B2"},
		{ID: 4, FirstName: "Clara", LastName: "Annenkova", Age: 20, Group: "C3"},
	})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"ID", "First name", "Last name", "Age", "Group"},
		{"1", "Anna", "Lee, Jr", "21", "B2"},
		{"4", "Clara", "Annenkova", "20", "C3"},
	}, readRows(t, path))
}

func TestWriteXLSX_EmptyRosterHasHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.xlsx")

	require.NoError(t, WriteXLSX(path, nil))

	rows := readRows(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, "ID", rows[0][0])
}
