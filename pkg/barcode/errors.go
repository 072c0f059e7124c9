package barcode

import (
	"errors"
	"fmt"
)

var (
	// ErrUnusedField is matched by UnusedFieldError.
	ErrUnusedField = errors.New("field is not used by this barcode format")
	// ErrNotImplemented is matched by NotImplementedError.
	ErrNotImplemented = errors.New("symbology identifier is not implemented")
	// ErrTypeMismatch is returned when a value of the wrong Go type is
	// assigned to a field.
	ErrTypeMismatch = errors.New("value type does not match field type")
	// ErrUnknownField is returned when a field identifier is not part of a
	// barcode's field collection.
	ErrUnknownField = errors.New("unknown field identifier")
	// ErrNilBarcode is returned when a nil barcode of an unexpected kind is
	// handed to a builder.
	ErrNilBarcode = errors.New("barcode is nil")
	// ErrNoCandidate is returned when no candidate parser accepted a payload.
	ErrNoCandidate = errors.New("no parser could accept barcode")
)

// ParseError is the top level failure of a format parser.
type ParseError struct {
	Format Type
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse %s Barcode :\n%v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidateError reports a single value that failed its length, grammar or
// checksum check. Value always carries the rejected raw text.
type ValidateError struct {
	Field    string
	Value    string
	Found    string
	Expected string
	Message  string
	Err      error
}

func (e *ValidateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (field '%s')", e.Message, e.Field)
	}
	return e.Message
}

func (e *ValidateError) Unwrap() error { return e.Err }

// NewValidateError builds a ValidateError for value with a formatted message.
func NewValidateError(value string, format string, args ...any) *ValidateError {
	return &ValidateError{Value: value, Message: fmt.Sprintf(format, args...)}
}

// UnusedFieldError signals that a barcode format does not define a semantic
// field at all, as opposed to the field being defined but empty.
type UnusedFieldError struct {
	Format Type
	Field  Semantic
}

func (e *UnusedFieldError) Error() string {
	return fmt.Sprintf("%s barcode does not use the %s field", e.Format, e.Field)
}

func (e *UnusedFieldError) Is(target error) bool { return target == ErrUnusedField }

// NotImplementedError is returned by the symbology dispatcher for AIM
// modifiers of a known code letter that it does not handle.
type NotImplementedError struct {
	Identifier string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("symbology identifier '%s' is not implemented", e.Identifier)
}

func (e *NotImplementedError) Is(target error) bool { return target == ErrNotImplemented }
