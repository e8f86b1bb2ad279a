package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewSchemaError(ErrMissingConstraint, "{urn:x}City", "{urn:x}name", "property has no cardinality")

		assert.Contains(t, err.Error(), "typegen: schema error")
		assert.Contains(t, err.Error(), "type {urn:x}City")
		assert.Contains(t, err.Error(), "child {urn:x}name")
		assert.Contains(t, err.Error(), "property has no cardinality")
	})

	t.Run("Error message with type only", func(t *testing.T) {
		err := &SchemaError{Type: "City"}
		assert.Contains(t, err.Error(), "type City")
		assert.NotContains(t, err.Error(), "child")
	})

	t.Run("Is matches ErrInvalidSchema and kind", func(t *testing.T) {
		err := NewSchemaError(ErrCyclicInheritance, "A", "", "")
		assert.Nil(t, errors.Unwrap(err))
		assert.True(t, errors.Is(err, ErrInvalidSchema))
		assert.True(t, errors.Is(err, ErrCyclicInheritance))
		assert.False(t, errors.Is(err, ErrImportCycle))
	})

	t.Run("IsSchemaError helper", func(t *testing.T) {
		err := NewSchemaError(ErrDepthExceeded, "A", "", "test")
		assert.True(t, IsSchemaError(err))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", -1, "must be positive")

		assert.Contains(t, err.Error(), "typegen: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "-1")
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Package", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Package")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewGenerationError("write", "city/city.go", "", cause)

	assert.Contains(t, err.Error(), "phase write")
	assert.Contains(t, err.Error(), "(file: city/city.go)")
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsGenerationError(err))
}
