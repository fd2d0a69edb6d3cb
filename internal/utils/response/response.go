// Package response provides helpers for writing consistent messages to
// the console.
//
// Every handler reports failures the same way: a user-facing sentence,
// then a technical section with the error text and its Go type. Rather
// than repeating those lines in every handler, we centralise them here,
// together with the roster rendering shared by "show" and "save".
package response

import (
	"fmt"
	"io"
	"strings"

	"github.com/aanand-mishra/course-registration/internal/types"
)

// User-facing messages, one per failure the console can report. Use these
// instead of raw string literals so every handler words things the same.
const (
	MsgFileMustExist  = "Text file must exist before running this script!"
	MsgFileReadFailed = "There was a non-specific error when reading the file!"
	MsgInvalidValues  = "One of the values was not the correct type of data!"
	MsgInvalidData    = "Error: There was a problem with your entered data."

	MsgFileWriteFailed = "Error: There was a problem with writing to the file.\n" +
		"Please check that the file is not open by another program."
)

const (
	technicalHeader = "-- Technical Error Message -- "
	separatorWidth  = 50
)

// ─────────────────────────────────────────────────────────────────────────────
// Error writes message followed by a blank line and, when err is not nil,
// the technical details:
//
//	There was a non-specific error when reading the file!
//
//	-- Technical Error Message --
//	load Enrollments.json: decode: invalid character 'x' ...
//	*types.StorageError
//
// ─────────────────────────────────────────────────────────────────────────────
func Error(w io.Writer, message string, err error) {
	fmt.Fprintf(w, "%s\n\n", message)
	if err == nil {
		return
	}
	fmt.Fprintln(w, technicalHeader)
	fmt.Fprintln(w, err.Error())
	fmt.Fprintf(w, "%T\n", err)
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts every rejected field contained in err into one
// line, so the user sees all problems with their input at once.
//
// Example output:
//
//	One of the values was not the correct type of data!
//
//	-- Technical Error Message --
//	First name must contain only letters, hyphens, and apostrophes
//	Course name cannot be empty
//	*types.ValidationError
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(w io.Writer, err error) {
	errs := types.ValidationErrors(err)
	if len(errs) == 0 {
		Error(w, MsgInvalidData, err)
		return
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}

	fmt.Fprintf(w, "%s\n\n", MsgInvalidValues)
	fmt.Fprintln(w, technicalHeader)
	fmt.Fprintln(w, strings.Join(messages, "\n"))
	fmt.Fprintf(w, "%T\n", errs[0])
}

// InvalidChoice builds the re-prompt notice for a menu choice outside
// choices, e.g. "Please, choose only 1, 2, 3, or 4".
func InvalidChoice(choices []string) string {
	switch len(choices) {
	case 0:
		return "There is nothing to choose from"
	case 1:
		return "Please, choose only " + choices[0]
	}
	last := len(choices) - 1
	return "Please, choose only " + strings.Join(choices[:last], ", ") + ", or " + choices[last]
}

// LoadError picks the message for a failed roster load: the "must exist"
// notice for a missing file, the validation report for dropped records,
// and the generic read failure for anything else.
func LoadError(w io.Writer, err error) {
	switch {
	case types.IsNotFound(err):
		Error(w, MsgFileMustExist, err)
	case types.IsValidation(err):
		ValidationError(w, err)
	default:
		Error(w, MsgFileReadFailed, err)
	}
}

// Students renders the roster between two separator lines, one student
// per line:
//
//	Student Jane Doe is enrolled in CS101
func Students(w io.Writer, students []types.Student) {
	separator := strings.Repeat("-", separatorWidth)
	fmt.Fprintln(w, separator)
	for _, s := range students {
		fmt.Fprintf(w, "Student %s %s is enrolled in %s\n", s.FirstName(), s.LastName(), s.CourseName())
	}
	fmt.Fprintln(w, separator)
}
