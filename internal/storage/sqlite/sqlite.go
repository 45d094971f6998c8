// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. For the roster it acts as a snapshot file: every Save replaces
// the table contents, every Load reads them back in the saved order.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
//
// Unlike a long-running server, the roster touches its storage only on
// explicit load/save. So no *sql.DB is held between calls: each
// operation opens the file, does its work and closes it again.
type SQLite struct {
	path string
}

// New returns a SQLite storage for the database file at path.
// The file is not created until the first Save.
func New(path string) *SQLite {
	return &SQLite{path: path}
}

// open connects to the database and makes sure the students table exists.
//
// CREATE TABLE IF NOT EXISTS is idempotent — safe to run every time.
//
// Schema:
//
//	position   — 0-based insertion order; the primary key
//	id         — the roster id (not unique at the SQL level: the roster
//	             owns id assignment, the table only mirrors it)
//	first_name, last_name, group_name — free text
//	age        — integer
func (s *SQLite) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			position   INTEGER PRIMARY KEY,
			id         INTEGER NOT NULL,
			first_name TEXT    NOT NULL,
			last_name  TEXT    NOT NULL,
			age        INTEGER NOT NULL,
			group_name TEXT    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return db, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Load returns every saved student in insertion order.
//
// The existence check comes first because sql.Open + CREATE TABLE would
// otherwise create an empty database file, and "never saved" would look
// the same as "saved an empty roster".
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Load() ([]types.Student, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNoData
	}

	db, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("sqlite.Load: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(
		"SELECT id, first_name, last_name, age, group_name FROM students ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Load: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	students := make([]types.Student, 0)

	for rows.Next() {
		var st types.Student

		if err := rows.Scan(
			&st.ID,
			&st.FirstName,
			&st.LastName,
			&st.Age,
			&st.Group,
		); err != nil {
			return nil, fmt.Errorf("sqlite.Load: scan row: %w", err)
		}

		students = append(students, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite.Load: rows iteration: %w", err)
	}

	return students, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save replaces the table contents with students inside one transaction.
//
// WHY A TRANSACTION?
// ──────────────────
// DELETE followed by N INSERTs is N+1 statements. If the program died
// halfway through without a transaction, the file would hold a partial
// roster. Inside a transaction either all of it lands or none of it does.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Save(students []types.Student) error {
	db, err := s.open()
	if err != nil {
		return fmt.Errorf("sqlite.Save: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite.Save: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning ErrTxDone.
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM students"); err != nil {
		return fmt.Errorf("sqlite.Save: clear: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO students (position, id, first_name, last_name, age, group_name) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("sqlite.Save: prepare: %w", err)
	}
	defer stmt.Close()

	for i, st := range students {
		if _, err := stmt.Exec(i, st.ID, st.FirstName, st.LastName, st.Age, st.Group); err != nil {
			return fmt.Errorf("sqlite.Save: insert id %d: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite.Save: commit: %w", err)
	}

	return nil
}
