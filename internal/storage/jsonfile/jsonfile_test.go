package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/course-registration/internal/config"
	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/types"
)

var _ storage.Storage = (*Store)(nil)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Enrollments.json")

	students, err := Load(path)
	require.Error(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
	assert.True(t, types.IsNotFound(err))

	var se *types.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "load", se.Op)
	assert.Equal(t, path, se.Path)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "load must not create the file")
}

func TestLoad_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Enrollments.json")
	writeFile(t, path, `[{"FirstName":"Jane","LastName":"Doe","CourseName":"CS101"},
		{"CourseName":"Math","LastName":"Lee","FirstName":"Ann"}]`)

	students, err := Load(path)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Jane,Doe,CS101", students[0].String())
	assert.Equal(t, "Ann,Lee,Math", students[1].String())
}

func TestLoad_Failures(t *testing.T) {
	cases := map[string]string{
		"syntax":        `[{"FirstName":`,
		"not an array":  `{"FirstName":"Jane","LastName":"Doe","CourseName":"CS101"}`,
		"number value":  `[{"FirstName":"Jane","LastName":"Doe","CourseName":101}]`,
		"missing field": `[{"FirstName":"Jane","LastName":"Doe"}]`,
		"empty file":    ``,
		"null roster":   `null`,
		"null record":   `[null]`,
		"null value":    `[{"FirstName":null,"LastName":"Doe","CourseName":"CS101"}]`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Enrollments.json")
			writeFile(t, path, content)

			students, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrIO)
			assert.False(t, types.IsNotFound(err))
			assert.NotNil(t, students)
			assert.Empty(t, students)
		})
	}
}

func TestLoad_NullValueNamesTheKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Enrollments.json")
	writeFile(t, path, `[{"FirstName":"Jane","LastName":null,"CourseName":"CS101"}]`)

	students, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)
	assert.Contains(t, err.Error(), `"LastName" is null`)
	assert.Empty(t, students)
}

func TestLoad_EmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Enrollments.json")
	writeFile(t, path, `[]`)

	students, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestLoad_MissingFieldIsReachable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Enrollments.json")
	writeFile(t, path, `[{"FirstName":"Jane","LastName":"Doe"}]`)

	_, err := Load(path)
	assert.ErrorIs(t, err, types.ErrMissingField)
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	rosters := map[string][]types.Student{
		"empty": {},
		"one":   {types.NewStudent("Ann", "Lee", "Math")},
		"many": {
			types.NewStudent("Ann", "Lee", "Math"),
			types.NewStudent("Mary-Jane", "O'Brien", "Intro to Go"),
			types.NewStudent("", "", "Art"),
		},
	}

	for name, roster := range rosters {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Enrollments.json")
			require.NoError(t, Save(path, roster))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, roster, loaded)
		})
	}
}

func TestSave_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Enrollments.json")

	require.NoError(t, Save(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	require.NoError(t, Save(path, []types.Student{types.NewStudent("Jane", "Doe", "CS101")}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"FirstName":"Jane","LastName":"Doe","CourseName":"CS101"}]`, string(data))
}

func TestSave_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Enrollments.json")

	require.NoError(t, Save(path, []types.Student{
		types.NewStudent("Ann", "Lee", "Math"),
		types.NewStudent("Bo", "Ng", "Art"),
	}))
	require.NoError(t, Save(path, []types.Student{types.NewStudent("Cy", "Oh", "Bio")}))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Cy,Oh,Bio", loaded[0].String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_FailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Enrollments.json")
	writeFile(t, path, `[{"FirstName":"Jane","LastName":"Doe","CourseName":"CS101"}]`)

	// The target is fine but the temp file cannot be created next to a
	// path whose directory does not exist.
	err := Save(filepath.Join(dir, "missing", "Enrollments.json"), []types.Student{types.NewStudent("A", "B", "C")})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)

	// Renaming onto a directory fails after the temp file was written.
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))
	writeFile(t, filepath.Join(target, "keep"), "x")
	err = Save(target, []types.Student{types.NewStudent("A", "B", "C")})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Jane,Doe,CS101", loaded[0].String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp files must be cleaned up")
}

func TestStore_ValidateOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Enrollments.json")
	writeFile(t, path, `[
		{"FirstName":"Jane","LastName":"Doe","CourseName":"CS101"},
		{"FirstName":"J4ne","LastName":"Doe","CourseName":"CS101"},
		{"FirstName":"Ann","LastName":"Lee","CourseName":"   "}
	]`)

	trusting := New(&config.Config{Storage: config.Storage{Path: path}})
	students, err := trusting.Load()
	require.NoError(t, err)
	assert.Len(t, students, 3)

	verifying := New(&config.Config{Storage: config.Storage{Path: path, ValidateOnLoad: true}})
	students, err = verifying.Load()
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	require.Len(t, students, 1)
	assert.Equal(t, "Jane,Doe,CS101", students[0].String())
	assert.Len(t, types.ValidationErrors(err), 2)
}

func TestStore_SaveAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Enrollments.json")
	s := New(&config.Config{Storage: config.Storage{Path: path}})
	assert.Equal(t, path, s.Path())

	require.NoError(t, s.Save([]types.Student{types.NewStudent("Ann", "Lee", "Math")}))
	students, err := s.Load()
	require.NoError(t, err)
	require.Len(t, students, 1)
}
