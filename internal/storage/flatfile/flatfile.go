// Package flatfile stores the roster as a plain text file: one student
// per line, fields joined by a literal comma in the fixed order
//
//	id,firstName,lastName,age,group
//
// There is no header line and no quoting or escaping. A comma typed into a
// name or group therefore produces a line with more than five fields, and
// that record is dropped on the next load. This is a known limitation of
// the format; the yaml backend exists for rosters that need such values.
package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/types"
)

const (
	separator = ","
	numFields = 5
)

// File is the flat-file implementation of storage.Storage.
type File struct {
	path string
}

// New returns a File backed by the text file at path. Nothing is opened
// until Load or Save is called.
func New(path string) *File {
	return &File{path: path}
}

// Load reads every well-formed line from the file.
// A missing file is reported as storage.ErrNoData.
func (f *File) Load() ([]types.Student, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("flatfile.Load: open: %w", err)
	}
	defer file.Close()

	students, skipped, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("flatfile.Load: %w", err)
	}

	if skipped > 0 {
		slog.Debug("skipped malformed lines",
			slog.String("path", f.path),
			slog.Int("count", skipped))
	}

	return students, nil
}

// Save truncates the file and writes one line per student.
func (f *File) Save(students []types.Student) (err error) {
	file, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("flatfile.Save: create: %w", err)
	}
	// The close error matters for writes: a full disk can surface here.
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("flatfile.Save: close: %w", cerr)
		}
	}()

	if err := Encode(file, students); err != nil {
		return fmt.Errorf("flatfile.Save: %w", err)
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Decode parses r line by line and returns the records that parse, plus
// the number of lines that did not.
//
// Malformed lines are not errors. Only a failure to read r is.
// ─────────────────────────────────────────────────────────────────────────────
func Decode(r io.Reader) (students []types.Student, skipped int, err error) {
	students = make([]types.Student, 0)

	// bufio.Reader, not bufio.Scanner: lines have no length limit.
	br := bufio.NewReader(r)

	for {
		line, rerr := br.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return nil, 0, fmt.Errorf("decode: read: %w", rerr)
		}

		line = strings.TrimSuffix(line, "\n")
		if line != "" || rerr == nil {
			st, ok := ParseLine(line)
			if ok {
				students = append(students, st)
			} else {
				skipped++
			}
		}

		if rerr != nil {
			return students, skipped, nil
		}
	}
}

// Encode writes students to w, one FormatLine per record.
func Encode(w io.Writer, students []types.Student) error {
	bw := bufio.NewWriter(w)

	for _, st := range students {
		if _, err := bw.WriteString(FormatLine(st) + "\n"); err != nil {
			return fmt.Errorf("encode: write: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("encode: flush: %w", err)
	}

	return nil
}

// ParseLine parses a single line. It accepts the line only if it splits
// into exactly five fields and the id and age fields are integers.
//
// Whitespace around the two numbers is tolerated; the text fields are kept
// verbatim. A trailing carriage return (files edited on Windows) is
// stripped first.
func ParseLine(line string) (types.Student, bool) {
	line = strings.TrimSuffix(line, "\r")

	fields := strings.Split(line, separator)
	if len(fields) != numFields {
		return types.Student{}, false
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return types.Student{}, false
	}

	age, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return types.Student{}, false
	}

	return types.Student{
		ID:        id,
		FirstName: fields[1],
		LastName:  fields[2],
		Age:       age,
		Group:     fields[4],
	}, true
}

// FormatLine renders st as one line (without the newline).
func FormatLine(st types.Student) string {
	return strings.Join([]string{
		strconv.Itoa(st.ID),
		st.FirstName,
		st.LastName,
		strconv.Itoa(st.Age),
		st.Group,
	}, separator)
}
