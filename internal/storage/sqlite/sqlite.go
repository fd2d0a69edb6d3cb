// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The roster lives in one table; the row id keeps insertion order. Like
// the JSON file store, a save replaces the whole roster (inside a single
// transaction) and a load requires the database file to exist already.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aanand-mishra/course-registration/internal/config"
	"github.com/aanand-mishra/course-registration/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL,
		course_name TEXT NOT NULL
	)
`

// SQLite is the concrete implementation of storage.Storage.
type SQLite struct {
	Db             *sql.DB
	path           string
	validateOnLoad bool
}

// New prepares a handle on the database at cfg.Storage.Path.
//
// sql.Open does NOT open a real connection yet, so nothing is created on
// disk here; Load can still tell a missing database apart from an empty
// one.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	return &SQLite{Db: db, path: cfg.Storage.Path, validateOnLoad: cfg.ValidateOnLoad}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Load returns every student in insertion order.
func (s *SQLite) Load() ([]types.Student, error) {
	if _, err := os.Stat(s.path); err != nil {
		kind := types.ErrIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = types.ErrNotFound
		}
		return []types.Student{}, &types.StorageError{Op: "load", Path: s.path, Kind: kind, Err: err}
	}

	students, err := s.getStudents()
	if err != nil {
		return []types.Student{}, &types.StorageError{Op: "load", Path: s.path, Kind: types.ErrIO, Err: err}
	}

	if s.validateOnLoad {
		return types.KeepValid(students)
	}
	return students, nil
}

func (s *SQLite) getStudents() ([]types.Student, error) {
	// CREATE TABLE IF NOT EXISTS is idempotent: an empty database file
	// loads as an empty roster.
	if _, err := s.Db.Exec(schema); err != nil {
		return nil, fmt.Errorf("GetStudents: create table: %w", err)
	}

	rows, err := s.Db.Query("SELECT first_name, last_name, course_name FROM students ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var first, last, course string
		if err := rows.Scan(&first, &last, &course); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, types.NewStudent(first, last, course))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// Save replaces the stored roster with students in one transaction, so a
// failure rolls back to the previous roster.
func (s *SQLite) Save(students []types.Student) error {
	if err := s.replaceStudents(students); err != nil {
		return &types.StorageError{Op: "save", Path: s.path, Kind: types.ErrIO, Err: err}
	}
	return nil
}

func (s *SQLite) replaceStudents(students []types.Student) (err error) {
	if _, err := s.Db.Exec(schema); err != nil {
		return fmt.Errorf("ReplaceStudents: create table: %w", err)
	}

	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("ReplaceStudents: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.Exec("DELETE FROM students"); err != nil {
		return fmt.Errorf("ReplaceStudents: clear: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO students (first_name, last_name, course_name) VALUES (?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("ReplaceStudents: prepare: %w", err)
	}
	defer stmt.Close()

	for _, st := range students {
		if _, err := stmt.Exec(st.FirstName(), st.LastName(), st.CourseName()); err != nil {
			return fmt.Errorf("ReplaceStudents: insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceStudents: commit: %w", err)
	}
	return nil
}
