package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/course-registration/internal/types"
)

// mockStorage is an in-memory storage.Storage.
type mockStorage struct {
	students []types.Student
	loadErr  error
	saveErr  error
	saved    [][]types.Student
}

func (m *mockStorage) Load() ([]types.Student, error) {
	if m.loadErr != nil {
		return []types.Student{}, m.loadErr
	}
	return append([]types.Student{}, m.students...), nil
}

func (m *mockStorage) Save(students []types.Student) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, students)
	m.students = students
	return nil
}

func TestRegister_AppendsValidStudent(t *testing.T) {
	students, err := Register([]types.Student{}, "Ann", "Lee", "Math")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ann,Lee,Math", students[0].String())

	students, err = Register(students, "Bo", "Ng", "Art")
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Ann,Lee,Math", students[0].String())
	assert.Equal(t, "Bo,Ng,Art", students[1].String())
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	existing := []types.Student{types.NewStudent("Ann", "Lee", "Math")}

	cases := []struct {
		name                string
		first, last, course string
	}{
		{"empty course", "Bo", "Ng", ""},
		{"blank course", "Bo", "Ng", "   "},
		{"digit in first name", "B0", "Ng", "Art"},
		{"symbol in last name", "Bo", "N!g", "Art"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Register(existing, tc.first, tc.last, tc.course)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrValidation)
			assert.Equal(t, existing, got)
			assert.Len(t, got, 1)
		})
	}
}

func TestListAll_IsPure(t *testing.T) {
	students := []types.Student{types.NewStudent("Ann", "Lee", "Math")}
	assert.Equal(t, students, ListAll(students))
	assert.Len(t, students, 1)
}

func TestRoster_RegisterAndList(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Len())

	s, err := r.Register("Ann", "Lee", "Math")
	require.NoError(t, err)
	assert.Equal(t, "Ann,Lee,Math", s.String())

	_, err = r.Register("Bo", "Ng", "")
	require.Error(t, err)
	assert.Equal(t, 1, r.Len())

	list := r.List()
	require.Len(t, list, 1)

	// List hands out a copy.
	list[0] = types.NewStudent("X", "Y", "Z")
	assert.Equal(t, "Ann,Lee,Math", r.List()[0].String())
}

func TestRoster_LoadReplaces(t *testing.T) {
	r := New(types.NewStudent("Old", "Entry", "History"))
	store := &mockStorage{students: []types.Student{
		types.NewStudent("Ann", "Lee", "Math"),
		types.NewStudent("Bo", "Ng", "Art"),
	}}

	require.NoError(t, r.Load(store))
	require.Equal(t, 2, r.Len())
	assert.Equal(t, "Ann,Lee,Math", r.List()[0].String())
}

func TestRoster_LoadFailureLeavesEmptyRoster(t *testing.T) {
	r := New(types.NewStudent("Old", "Entry", "History"))
	loadErr := &types.StorageError{Op: "load", Path: "x.json", Kind: types.ErrNotFound}

	err := r.Load(&mockStorage{loadErr: loadErr})
	require.Error(t, err)
	assert.True(t, types.IsNotFound(err))
	assert.Equal(t, 0, r.Len())
}

func TestRoster_Save(t *testing.T) {
	r := New()
	_, err := r.Register("Ann", "Lee", "Math")
	require.NoError(t, err)

	store := &mockStorage{}
	require.NoError(t, r.Save(store))
	require.Len(t, store.saved, 1)
	assert.Equal(t, r.List(), store.saved[0])

	store.saveErr = errors.New("file is locked")
	require.Error(t, r.Save(store))
	assert.Equal(t, 1, r.Len(), "failed save keeps the roster")
}
