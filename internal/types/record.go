package types

import (
	"errors"
	"fmt"
)

// Record keys, exactly as they appear in the persisted JSON file.
const (
	KeyFirstName  = "FirstName"
	KeyLastName   = "LastName"
	KeyCourseName = "CourseName"
)

// recordKeys lists the required keys in declaration order. FromRecord
// reports the first one missing.
var recordKeys = [...]string{KeyFirstName, KeyLastName, KeyCourseName}

// Record is the persistence form of a Student: one JSON object with three
// string values. Key order is not significant.
type Record map[string]string

// ToRecord maps s to its persisted form.
func ToRecord(s Student) Record {
	return Record{
		KeyFirstName:  s.firstName,
		KeyLastName:   s.lastName,
		KeyCourseName: s.courseName,
	}
}

// FromRecord rebuilds a Student from r. Field values are trusted as they
// are; call Student.Validate to verify them. A *MissingFieldError is
// returned when any of the three keys is absent.
func FromRecord(r Record) (Student, error) {
	for _, key := range recordKeys {
		if _, ok := r[key]; !ok {
			return Student{}, &MissingFieldError{Field: key}
		}
	}
	return NewStudent(r[KeyFirstName], r[KeyLastName], r[KeyCourseName]), nil
}

// ToRecords maps every student, preserving order. The result is never nil
// so an empty roster encodes as [] rather than null.
func ToRecords(students []Student) []Record {
	records := make([]Record, 0, len(students))
	for _, s := range students {
		records = append(records, ToRecord(s))
	}
	return records
}

// FromRecords maps every record, preserving order, and stops at the first
// failure.
func FromRecords(records []Record) ([]Student, error) {
	students := make([]Student, 0, len(records))
	for i, r := range records {
		s, err := FromRecord(r)
		if err != nil {
			return nil, &recordError{index: i, err: err}
		}
		students = append(students, s)
	}
	return students, nil
}

// KeepValid splits students into the ones that pass Validate, in their
// original order, and a joined error describing the rest. It is used by
// the stores when verify-on-load is enabled.
func KeepValid(students []Student) ([]Student, error) {
	valid := make([]Student, 0, len(students))
	var errs []error
	for i, s := range students {
		if err := s.Validate(); err != nil {
			errs = append(errs, &recordError{index: i, err: err})
			continue
		}
		valid = append(valid, s)
	}
	return valid, errors.Join(errs...)
}

type recordError struct {
	index int
	err   error
}

func (e *recordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.index, e.err)
}

func (e *recordError) Unwrap() error { return e.err }
