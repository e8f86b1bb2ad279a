package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a schema the compiler cannot turn into code.
	ErrInvalidSchema = errors.New("typegen: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("typegen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("typegen: code generation failed")
)

// Kinds of schema errors. A SchemaError matches its kind and ErrInvalidSchema.
var (
	// ErrUnsupportedConstruct indicates a child that is neither a property nor a group.
	ErrUnsupportedConstruct = errors.New("typegen: unsupported schema construct")
	// ErrMissingConstraint indicates a value type without binding or a child without cardinality.
	ErrMissingConstraint = errors.New("typegen: missing schema constraint")
	// ErrCyclicInheritance indicates a type that is its own supertype.
	ErrCyclicInheritance = errors.New("typegen: cyclic inheritance")
	// ErrImportCycle indicates generated packages that would import each other.
	ErrImportCycle = errors.New("typegen: import cycle between generated packages")
	// ErrDepthExceeded indicates a type graph nested deeper than the configured limit.
	ErrDepthExceeded = errors.New("typegen: maximum schema depth exceeded")
)

// SchemaError represents a schema definition error.
type SchemaError struct {
	Kind    error  // One of the kind sentinels
	Type    string // Qualified type name
	Field   string // Child name (if applicable)
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("typegen: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" child ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches ErrInvalidSchema or the error's kind.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema || (e.Kind != nil && target == e.Kind)
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(kind error, typeName, child, message string) *SchemaError {
	return &SchemaError{
		Kind:    kind,
		Type:    typeName,
		Field:   child,
		Message: message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("typegen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("typegen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "render", "format", "write"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("typegen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
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
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
