// Package storage defines the Storage interface — a contract that any
// persistence backend must satisfy to back the roster.
//
// WHY AN INTERFACE?
// ─────────────────
// The roster core should not know or care whether records end up in a
// comma-separated text file, a YAML document or a SQLite database. By
// depending only on this interface:
//
//   - Switching formats = implement the interface for the new format,
//     change one line in main.go. Zero changes in the roster.
//
//   - Writing tests = pass an in-memory fake that satisfies the
//     interface. No files needed for unit tests of the roster.
package storage

import (
	"errors"

	"github.com/aanand-mishra/roster/internal/types"
)

// ErrNoData is returned by Load when nothing has ever been saved, e.g.
// the backing file does not exist yet. It is an outcome, not a failure:
// callers check for it with errors.Is and report "file not found".
var ErrNoData = errors.New("storage: no saved data")

// Storage is the persistence contract.
//
// Every call is a complete, scoped unit of work: the backend opens its
// resource, reads or writes everything, and closes the resource on every
// exit path. Nothing stays open between calls.
type Storage interface {
	// Load returns every well-formed record in saved order.
	// Records that cannot be parsed are dropped silently.
	// Returns ErrNoData if there is nothing to load.
	Load() ([]types.Student, error)

	// Save replaces all previously saved content with students,
	// preserving their order.
	Save(students []types.Student) error
}
