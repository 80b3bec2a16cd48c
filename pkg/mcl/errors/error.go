package errors

import (
	"fmt"
	"strings"

	"mercator-hq/ganymede/pkg/mcl/value"
)

// ErrorType categorizes the kind of failure encountered while parsing,
// writing, or marshalling an MCL document.
type ErrorType string

const (
	ErrorTypeParse        ErrorType = "parse"         // Lexical or grammar failure, duplicate key at parse time
	ErrorTypeTypeMismatch ErrorType = "type_mismatch" // Wrong value variant for the expected decode step
	ErrorTypeRequired     ErrorType = "required"      // Required field missing from the source dict
	ErrorTypeFormat       ErrorType = "value_format"  // Malformed integer, float, argb32, enum, or bool literal
	ErrorTypeCapacity     ErrorType = "capacity"      // Buffer or fixed char-buffer too small
	ErrorTypeIO           ErrorType = "io"            // File I/O error
)

// Error represents a rich error with location and an optional suggestion.
// It provides detailed information for debugging document issues.
type Error struct {
	Type       ErrorType      // Category of error
	Message    string         // Error message
	Location   value.Location // Source location (file, line, column)
	Suggestion string         // Suggested fix (optional)
}

// Error implements the error interface.
// It returns a formatted message with location and suggestion.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// ErrorList represents a collection of errors. The schema engine uses it to
// accumulate per-element array decode failures instead of failing on the
// first error.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, location value.Location) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Location: location,
	})
}

// Append merges another error into the list. ErrorList arguments are
// flattened; plain errors are wrapped as format errors.
func (el *ErrorList) Append(err error) {
	switch e := err.(type) {
	case nil:
	case *ErrorList:
		el.Errors = append(el.Errors, e.Errors...)
	case *Error:
		el.Add(e)
	default:
		el.Add(&Error{Type: ErrorTypeFormat, Message: err.Error()})
	}
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s):\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("\nerror %d:\n%s\n", i+1, err.Error()))
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the list contains at least one error of the
// given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
