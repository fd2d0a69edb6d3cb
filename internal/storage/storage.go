// Package storage defines the Storage interface — a contract that any
// roster backend must satisfy to work with this application.
//
// The roster and the console only depend on this interface, so the JSON
// file store and the SQLite store are interchangeable, and tests can pass
// a fake that satisfies it.
package storage

import "github.com/aanand-mishra/course-registration/internal/types"

// Storage persists a whole roster at once.
type Storage interface {
	// Load returns every persisted student in insertion order. On failure
	// it returns an empty (non-nil) slice and a *types.StorageError whose
	// kind is types.ErrNotFound or types.ErrIO.
	Load() ([]types.Student, error)

	// Save replaces the persisted roster with students. On failure the
	// previous contents are left in place.
	Save(students []types.Student) error
}
