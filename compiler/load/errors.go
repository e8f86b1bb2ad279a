package load

import (
	"errors"
	"strings"
)

// ErrSchemaLoad is matched by every error returned while loading a schema.
var ErrSchemaLoad = errors.New("typegen: schema load failed")

// Error describes a schema that could not be read, parsed or resolved.
type Error struct {
	Location string // Schema location, if known
	Type     string // Type being resolved (if applicable)
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("typegen: load schema")
	if e.Location != "" {
		b.WriteString(" ")
		b.WriteString(e.Location)
	}
	if e.Type != "" {
		b.WriteString(" type ")
		b.WriteString(e.Type)
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
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrSchemaLoad.
func (e *Error) Is(target error) bool {
	return target == ErrSchemaLoad
}

// IsLoadError reports whether the error is a load Error.
func IsLoadError(err error) bool {
	var loadErr *Error
	return errors.As(err, &loadErr)
}
