package types

import (
	"errors"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Human readable field names, used in error messages.
const (
	fieldFirstName  = "First name"
	fieldLastName   = "Last name"
	fieldCourseName = "Course name"
)

// Validation tags understood by the package validator.
//
//	personname — every rune is a letter, '-' or '\'' (empty passes)
//	notblank   — not empty after trimming whitespace
const (
	tagPersonName = "personname"
	tagNotBlank   = "notblank"
)

// validate is shared by every setter. A *validator.Validate caches tag
// parsing and is safe for concurrent use once its rules are registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// RegisterValidation only fails for an empty tag or a nil func, so a
	// failure here is a programming error.
	if err := v.RegisterValidation(tagPersonName, isPersonName); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation(tagNotBlank, validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func isPersonName(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

// checkName validates a single name value with validate.Var and converts a
// rule failure into a *ValidationError naming field.
func checkName(field, value string) error {
	if err := validate.Var(value, tagPersonName); err != nil {
		return asValidationError(err, &ValidationError{
			Field:   field,
			Value:   value,
			Message: field + " must contain only letters, hyphens, and apostrophes",
		})
	}
	return nil
}

func checkCourse(value string) error {
	if err := validate.Var(value, tagNotBlank); err != nil {
		return asValidationError(err, &ValidationError{
			Field:   fieldCourseName,
			Value:   value,
			Message: fieldCourseName + " cannot be empty",
		})
	}
	return nil
}

// asValidationError returns ve when err is a rule failure. Anything else
// (an *InvalidValidationError from a misuse of the validator) is passed
// through untouched.
func asValidationError(err error, ve *ValidationError) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return ve
	}
	return err
}
