// Package roster owns the in-memory list of registered students for one
// session and mediates every change to it.
package roster

import (
	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/types"
)

// Register validates the three values and appends the resulting student
// to existing. On any validation failure existing is returned unchanged
// together with the (possibly joined) *types.ValidationError.
func Register(existing []types.Student, first, last, course string) ([]types.Student, error) {
	student, err := types.NewValidatedStudent(first, last, course)
	if err != nil {
		return existing, err
	}
	return append(existing, student), nil
}

// ListAll returns students unchanged. It exists so the presentation layer
// reads the roster through the same package that changes it.
func ListAll(students []types.Student) []types.Student {
	return students
}

// Roster is the session's ordered student list. The driver creates one
// and passes it by reference to whoever needs it.
type Roster struct {
	students []types.Student
}

// New returns a roster holding students (copied).
func New(students ...types.Student) *Roster {
	r := &Roster{}
	r.Replace(students)
	return r
}

// Register appends a validated student and returns it. The roster is left
// unchanged when validation fails.
func (r *Roster) Register(first, last, course string) (types.Student, error) {
	updated, err := Register(r.students, first, last, course)
	if err != nil {
		return types.Student{}, err
	}
	r.students = updated
	return updated[len(updated)-1], nil
}

// List returns a copy of the students in insertion order.
func (r *Roster) List() []types.Student {
	return append([]types.Student(nil), ListAll(r.students)...)
}

// Len is the number of registered students.
func (r *Roster) Len() int { return len(r.students) }

// Replace swaps the whole list, e.g. after a reload.
func (r *Roster) Replace(students []types.Student) {
	r.students = append(make([]types.Student, 0, len(students)), students...)
}

// Load replaces the roster with what s holds. Whatever s returns is kept,
// so a failed load leaves an empty roster and a verify-on-load failure
// keeps the valid students; the error is handed back for reporting.
func (r *Roster) Load(s storage.Storage) error {
	students, err := s.Load()
	r.Replace(students)
	return err
}

// Save writes the roster to s. The in-memory list is untouched whatever
// the outcome.
func (r *Roster) Save(s storage.Storage) error {
	return s.Save(r.List())
}
