package types

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced by the roster, its entities and its
// stores matches exactly one of these through errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrMissingField = errors.New("missing field")
	ErrNotFound     = errors.New("not found")
	ErrIO           = errors.New("i/o error")
)

// ValidationError reports a field value that was rejected by a setter.
// The entity that produced it still holds its previous value.
type ValidationError struct {
	Field   string // human readable field name, e.g. "First name"
	Value   string // the rejected value
	Message string // complete sentence shown to the user
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MissingFieldError reports a persisted record without one of the
// required keys.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record is missing required key %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// StorageError is returned by the roster stores. Kind is either
// ErrNotFound (the backing file is absent) or ErrIO (anything else).
type StorageError struct {
	Op   string // "load" or "save"
	Path string
	Kind error
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
}

// Unwrap exposes the underlying cause so callers can still reach, for
// example, a *MissingFieldError behind an ErrIO failure.
func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// IsNotFound reports whether err means the backing file does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err carries at least one rejected field.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ValidationErrors flattens err, which may be a join of several failures,
// into the individual *ValidationError values it contains.
func ValidationErrors(err error) []*ValidationError {
	switch e := err.(type) {
	case nil:
		return nil
	case *ValidationError:
		return []*ValidationError{e}
	case interface{ Unwrap() []error }:
		var out []*ValidationError
		for _, inner := range e.Unwrap() {
			out = append(out, ValidationErrors(inner)...)
		}
		return out
	default:
		return ValidationErrors(errors.Unwrap(err))
	}
}
