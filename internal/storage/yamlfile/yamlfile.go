// Package yamlfile stores the roster as a YAML document:
//
//	students:
//	  - id: 1
//	    first_name: Anna
//	    last_name: Lee, Jr
//	    age: 20
//	    group: G1
//
// Unlike the flat-file format, YAML quotes values as needed, so commas and
// other punctuation in names survive a save/load round-trip.
package yamlfile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/types"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape used by Save.
type document struct {
	Students []types.Student `yaml:"students"`
}

// rawDocument is the shape used by Load. Keeping each entry as a
// yaml.Node lets one bad entry be skipped without failing the others.
type rawDocument struct {
	Students []yaml.Node `yaml:"students"`
}

// entry is one list item as read back. The numeric fields are pointers so
// that an entry missing "id" or "age" can be told apart from one holding 0.
type entry struct {
	ID        *int   `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Age       *int   `yaml:"age"`
	Group     string `yaml:"group"`
}

// File is the YAML implementation of storage.Storage.
type File struct {
	path string
}

// New returns a File backed by the YAML document at path.
func New(path string) *File {
	return &File{path: path}
}

// Load reads the document. A missing file is storage.ErrNoData; a file
// that is not YAML at all is an error. Entries that do not decode into a
// student (e.g. a non-integer age, or no id at all) are dropped.
func (f *File) Load() ([]types.Student, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("yamlfile.Load: read: %w", err)
	}

	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yamlfile.Load: unmarshal: %w", err)
	}

	students := make([]types.Student, 0, len(raw.Students))
	skipped := 0
	for i := range raw.Students {
		var e entry
		if err := raw.Students[i].Decode(&e); err != nil || e.ID == nil || e.Age == nil {
			skipped++
			continue
		}
		students = append(students, types.Student{
			ID:        *e.ID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Age:       *e.Age,
			Group:     e.Group,
		})
	}

	if skipped > 0 {
		slog.Debug("skipped malformed entries",
			slog.String("path", f.path),
			slog.Int("count", skipped))
	}

	return students, nil
}

// Save replaces the document with students.
func (f *File) Save(students []types.Student) error {
	if students == nil {
		students = []types.Student{}
	}

	data, err := yaml.Marshal(document{Students: students})
	if err != nil {
		return fmt.Errorf("yamlfile.Save: marshal: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("yamlfile.Save: write: %w", err)
	}

	return nil
}
