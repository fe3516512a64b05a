// Package errors provides standardized error types for Frame operations.
// This package defines FrameError for consistent error handling across
// all public APIs, with an error kind taxonomy, operation context and
// error wrapping support.
package errors

import (
	"fmt"
)

// Kind classifies a FrameError. Structural failures (bad index, bad name,
// bad arity, incompatible schemas) always surface as one of these kinds;
// value coercion failures never do, they degrade to a null cell instead.
type Kind int

const (
	// KindUnknown is the zero kind for errors without a classification.
	KindUnknown Kind = iota
	// KindOutOfRange indicates a row or column index outside the frame.
	KindOutOfRange
	// KindNotFound indicates a column name that does not exist.
	KindNotFound
	// KindDuplicateName indicates a column name already present in the frame.
	KindDuplicateName
	// KindArityMismatch indicates a row whose value count differs from the column count.
	KindArityMismatch
	// KindSchemaMismatch indicates incompatible schemas in a strict-mode union.
	KindSchemaMismatch
	// KindTypeError indicates an operation applied to a column of an unsuitable type.
	KindTypeError
	// KindFormatError indicates malformed input text (CSV parse failure).
	KindFormatError
	// KindIOError indicates a failure reading or writing an external resource.
	KindIOError
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindOutOfRange:
		return "out of range"
	case KindNotFound:
		return "not found"
	case KindDuplicateName:
		return "duplicate name"
	case KindArityMismatch:
		return "arity mismatch"
	case KindSchemaMismatch:
		return "schema mismatch"
	case KindTypeError:
		return "type error"
	case KindFormatError:
		return "format error"
	case KindIOError:
		return "io error"
	default:
		return "unknown"
	}
}

// FrameError represents standardized errors across all Frame operations
type FrameError struct {
	Kind    Kind   // Error classification
	Op      string // Operation name (e.g., "AddRow", "Select", "UnionAll")
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *FrameError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s on column %q: %s", e.Op, e.Kind, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *FrameError) Unwrap() error {
	return e.Cause
}

// Is matches any FrameError with the same kind, so callers can test
// errors.Is(err, &FrameError{Kind: KindNotFound}).
func (e *FrameError) Is(target error) bool {
	if fe, ok := target.(*FrameError); ok {
		return e.Kind == fe.Kind
	}
	return false
}

// KindOf returns the kind of err if it is a FrameError, KindUnknown otherwise.
func KindOf(err error) Kind {
	if fe, ok := err.(*FrameError); ok {
		return fe.Kind
	}
	return KindUnknown
}

// Common error constructors for consistent error creation

// NewOutOfRangeError creates an error for out-of-bounds row or column access
func NewOutOfRangeError(op string, index, limit int) *FrameError {
	return &FrameError{
		Kind:    KindOutOfRange,
		Op:      op,
		Message: fmt.Sprintf("index %d outside [0, %d)", index, limit),
	}
}

// NewNotFoundError creates an error for operations on non-existent columns
func NewNotFoundError(op, column string) *FrameError {
	return &FrameError{
		Kind:    KindNotFound,
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewDuplicateNameError creates an error for adding a column name twice
func NewDuplicateNameError(op, column string) *FrameError {
	return &FrameError{
		Kind:    KindDuplicateName,
		Op:      op,
		Column:  column,
		Message: "column already exists",
	}
}

// NewArityMismatchError creates an error for row width disagreements
func NewArityMismatchError(op string, got, want int) *FrameError {
	return &FrameError{
		Kind:    KindArityMismatch,
		Op:      op,
		Message: fmt.Sprintf("got %d values, frame has %d columns", got, want),
	}
}

// NewSchemaMismatchError creates an error for incompatible frame schemas
func NewSchemaMismatchError(op, message string) *FrameError {
	return &FrameError{
		Kind:    KindSchemaMismatch,
		Op:      op,
		Message: message,
	}
}

// NewTypeError creates an error for operations requiring a different column type
func NewTypeError(op, column, message string) *FrameError {
	return &FrameError{
		Kind:    KindTypeError,
		Op:      op,
		Column:  column,
		Message: message,
	}
}

// NewFormatError creates an error for malformed external input
func NewFormatError(op string, cause error) *FrameError {
	return &FrameError{
		Kind:    KindFormatError,
		Op:      op,
		Message: "malformed input",
		Cause:   cause,
	}
}

// NewIOError creates an error for file access failures
func NewIOError(op string, cause error) *FrameError {
	return &FrameError{
		Kind:    KindIOError,
		Op:      op,
		Message: "io failure",
		Cause:   cause,
	}
}
