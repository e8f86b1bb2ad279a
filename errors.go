package typegen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for conversions between generic instances
// and generated model objects.
var (
	// ErrUnregisteredType is returned when a type name has no generated class.
	ErrUnregisteredType = errors.New("typegen: unregistered type")

	// ErrShapeMismatch is returned when a generic value does not fit the
	// field it is converted into (or out of).
	ErrShapeMismatch = errors.New("typegen: shape mismatch")

	// ErrDepthExceeded is returned when an object or instance graph nests
	// deeper than the configured limit.
	ErrDepthExceeded = errors.New("typegen: maximum depth exceeded")
)

// UnregisteredTypeError reports a type name that could not be resolved
// to a generated class.
type UnregisteredTypeError struct {
	Name QName
}

// Error returns the error string.
func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("typegen: no model class registered for type %s", e.Name)
}

// Is reports whether the target error matches UnregisteredTypeError.
// This allows errors.Is(err, ErrUnregisteredType) to return true.
func (e *UnregisteredTypeError) Is(err error) bool {
	return err == ErrUnregisteredType
}

// NewUnregisteredTypeError returns a new UnregisteredTypeError for the given name.
func NewUnregisteredTypeError(name QName) *UnregisteredTypeError {
	return &UnregisteredTypeError{Name: name}
}

// IsUnregisteredType returns true if the error is an UnregisteredTypeError.
func IsUnregisteredType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnregisteredTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnregisteredType)
}

// ShapeMismatchError reports a value whose shape does not fit a field.
type ShapeMismatchError struct {
	Class   QName  // Class owning the field (zero for anonymous groups)
	Field   string // Go name of the field
	Message string
	Cause   error
}

// Error returns the error string.
func (e *ShapeMismatchError) Error() string {
	var b strings.Builder
	b.WriteString("typegen: shape mismatch")
	if !e.Class.IsZero() {
		b.WriteString(" on ")
		b.WriteString(e.Class.String())
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ShapeMismatchError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches ShapeMismatchError.
func (e *ShapeMismatchError) Is(err error) bool {
	return err == ErrShapeMismatch
}

// NewShapeMismatchError returns a new ShapeMismatchError.
func NewShapeMismatchError(class QName, field, message string, cause error) *ShapeMismatchError {
	return &ShapeMismatchError{Class: class, Field: field, Message: message, Cause: cause}
}

// IsShapeMismatch returns true if the error is a ShapeMismatchError.
func IsShapeMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *ShapeMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrShapeMismatch)
}

// DepthError reports a graph nested deeper than Limit.
type DepthError struct {
	Name  QName // Type or class being converted when the limit was hit
	Limit int
}

// Error returns the error string.
func (e *DepthError) Error() string {
	return fmt.Sprintf("typegen: maximum depth %d exceeded at %s", e.Limit, e.Name)
}

// Is reports whether the target error matches DepthError.
func (e *DepthError) Is(err error) bool {
	return err == ErrDepthExceeded
}

// NewDepthError returns a new DepthError.
func NewDepthError(name QName, limit int) *DepthError {
	return &DepthError{Name: name, Limit: limit}
}

// ConversionError wraps a conversion failure with the top-level type
// that was being converted.
type ConversionError struct {
	Type QName  // Declared type of the instance or object
	Op   string // "to-generic" or "to-typed"
	Err  error  // Underlying error
}

// Error returns the error string.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("typegen: %s %s: %v", e.Op, e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError returns a new ConversionError.
func NewConversionError(typ QName, op string, err error) *ConversionError {
	return &ConversionError{Type: typ, Op: op, Err: err}
}

// IsConversionError returns true if the error is a ConversionError.
func IsConversionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConversionError
	return errors.As(err, &e)
}
