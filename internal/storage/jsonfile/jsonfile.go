// Package jsonfile stores the roster as a single JSON array in a file:
//
//	[{"FirstName":"Jane","LastName":"Doe","CourseName":"CS101"}]
//
// Loads read the whole file; saves replace it in full by writing a
// temporary sibling file and renaming it over the target.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/course-registration/internal/config"
	"github.com/aanand-mishra/course-registration/internal/types"
)

const filePerm = 0o644

// Store is the JSON file implementation of storage.Storage.
type Store struct {
	path           string
	validateOnLoad bool
}

// New returns a Store for the roster file named in cfg. The file is not
// touched until the first Load or Save.
func New(cfg *config.Config) *Store {
	return &Store{path: cfg.Storage.Path, validateOnLoad: cfg.ValidateOnLoad}
}

// Path is the roster file this store reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads the roster. With validate_on_load enabled, students that
// fail validation are dropped and reported in a joined error next to the
// ones that passed.
func (s *Store) Load() ([]types.Student, error) {
	students, err := Load(s.path)
	if err != nil || !s.validateOnLoad {
		return students, err
	}
	return types.KeepValid(students)
}

func (s *Store) Save(students []types.Student) error {
	return Save(s.path, students)
}

// Load reads path as a JSON array of records.
//
// A missing file yields a *types.StorageError of kind types.ErrNotFound;
// the file is not created. Any other failure (read error, bad JSON, a
// null or non-string value, a missing key) yields kind types.ErrIO. In both cases
// the returned roster is empty, never nil.
func Load(path string) ([]types.Student, error) {
	students, err := load(path)
	if err != nil {
		kind := types.ErrIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = types.ErrNotFound
		}
		return []types.Student{}, &types.StorageError{Op: "load", Path: path, Kind: kind, Err: err}
	}
	return students, nil
}

func load(path string) ([]types.Student, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// The handle is released on every return path below.
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	students, err := types.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return students, nil
}

// decodeRecords parses data as a JSON array of objects whose values are
// all strings. A top-level null and null values are rejected; plain
// json.Unmarshal would read them as an empty roster and empty strings.
func decodeRecords(data []byte) ([]types.Record, error) {
	var raw []map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("roster is null, want a JSON array")
	}

	records := make([]types.Record, 0, len(raw))
	for i, obj := range raw {
		if obj == nil {
			return nil, fmt.Errorf("record %d is null, want an object", i)
		}
		record := make(types.Record, len(obj))
		for key, value := range obj {
			if value == nil {
				return nil, fmt.Errorf("record %d: key %q is null, want a string", i, key)
			}
			record[key] = *value
		}
		records = append(records, record)
	}
	return records, nil
}

// Save encodes students as a JSON array and replaces path with it. The
// previous file stays intact if anything fails before the final rename.
func Save(path string, students []types.Student) error {
	data, err := json.Marshal(types.ToRecords(students))
	if err != nil {
		return &types.StorageError{Op: "save", Path: path, Kind: types.ErrIO, Err: fmt.Errorf("encode: %w", err)}
	}
	if err := writeFileAtomic(path, data, filePerm); err != nil {
		return &types.StorageError{Op: "save", Path: path, Kind: types.ErrIO, Err: err}
	}
	return nil
}

// writeFileAtomic writes data to a temporary file next to path, syncs it
// and renames it into place. The temporary file is removed unless the
// rename succeeded.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	committed = true
	return nil
}
