// Package types holds the roster's data structures (models) and the rules
// that keep their fields valid. Keeping them in one place prevents import
// cycles: the stores, the roster and the console can all import types
// without depending on each other.
package types

import (
	"errors"
	"strings"
)

// Named is the capability shared by Person and Student: reading and
// validated writing of the two name fields.
type Named interface {
	FirstName() string
	LastName() string
	SetFirstName(value string) error
	SetLastName(value string) error
}

// ─────────────────────────────────────────────────────────────────────────────
// Person holds a first and a last name.
//
// The fields are unexported so the only way to change them is through the
// setters, which validate before mutating. The zero value (two empty
// names) is a valid Person.
// ─────────────────────────────────────────────────────────────────────────────
type Person struct {
	firstName string
	lastName  string
}

// NewPerson builds a Person from raw strings without validating them.
// Use the setters when the values come from user input.
func NewPerson(firstName, lastName string) Person {
	return Person{firstName: firstName, lastName: lastName}
}

func (p Person) FirstName() string { return p.firstName }

func (p Person) LastName() string { return p.lastName }

// SetFirstName accepts letters, hyphens and apostrophes only. On failure
// the previous first name is kept and a *ValidationError is returned.
func (p *Person) SetFirstName(value string) error {
	if err := checkName(fieldFirstName, value); err != nil {
		return err
	}
	p.firstName = value
	return nil
}

// SetLastName follows the same rule as SetFirstName.
func (p *Person) SetLastName(value string) error {
	if err := checkName(fieldLastName, value); err != nil {
		return err
	}
	p.lastName = value
	return nil
}

// String returns "first,last".
func (p Person) String() string {
	return p.firstName + "," + p.lastName
}

// ─────────────────────────────────────────────────────────────────────────────
// Student is a Person enrolled in a course.
//
// Person is embedded (not a pointer) so FirstName, SetFirstName and friends
// are promoted: *Student satisfies Named exactly like *Person does.
// ─────────────────────────────────────────────────────────────────────────────
type Student struct {
	Person
	courseName string
}

// NewStudent builds a Student from raw strings without validating them.
// The stores use it to rebuild persisted records.
func NewStudent(firstName, lastName, courseName string) Student {
	return Student{
		Person:     NewPerson(firstName, lastName),
		courseName: courseName,
	}
}

// NewValidatedStudent builds a Student through the validating setters.
// Every rejected field is reported (joined) and the zero Student is
// returned, so a caller can never end up with a half-filled record.
func NewValidatedStudent(firstName, lastName, courseName string) (Student, error) {
	var s Student
	err := errors.Join(
		s.SetFirstName(firstName),
		s.SetLastName(lastName),
		s.SetCourseName(courseName),
	)
	if err != nil {
		return Student{}, err
	}
	return s, nil
}

func (s Student) CourseName() string { return s.courseName }

// SetCourseName rejects values that are empty once surrounding whitespace
// is trimmed. The value itself is stored untrimmed.
func (s *Student) SetCourseName(value string) error {
	if err := checkCourse(value); err != nil {
		return err
	}
	s.courseName = value
	return nil
}

// Validate re-runs every field rule on an existing Student, e.g. one that
// was rebuilt from a file with NewStudent.
func (s Student) Validate() error {
	return errors.Join(
		checkName(fieldFirstName, s.firstName),
		checkName(fieldLastName, s.lastName),
		checkCourse(s.courseName),
	)
}

// String returns "first,last,course".
func (s Student) String() string {
	return strings.Join([]string{s.firstName, s.lastName, s.courseName}, ",")
}
