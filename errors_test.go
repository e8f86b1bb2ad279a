package typegen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnregisteredTypeError(t *testing.T) {
	err := NewUnregisteredTypeError(Q("urn:x", "City"))
	assert.Contains(t, err.Error(), "{urn:x}City")
	assert.True(t, errors.Is(err, ErrUnregisteredType))
	assert.True(t, IsUnregisteredType(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsUnregisteredType(errors.New("other")))
	assert.False(t, IsUnregisteredType(nil))
}

func TestShapeMismatchError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("bad value")
		err := NewShapeMismatchError(Q("", "City"), "Name", "nested instance", cause)

		assert.Contains(t, err.Error(), "typegen: shape mismatch")
		assert.Contains(t, err.Error(), "on City")
		assert.Contains(t, err.Error(), "field Name")
		assert.Contains(t, err.Error(), "nested instance")
		assert.Contains(t, err.Error(), "bad value")
	})

	t.Run("Anonymous class", func(t *testing.T) {
		err := NewShapeMismatchError(QName{}, "", "x", nil)
		assert.NotContains(t, err.Error(), " on ")
	})

	t.Run("Unwrap and Is", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewShapeMismatchError(QName{}, "F", "", cause)
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrShapeMismatch))
		assert.True(t, IsShapeMismatch(err))
		assert.False(t, IsShapeMismatch(cause))
	})
}

func TestDepthError(t *testing.T) {
	err := NewDepthError(Q("", "Node"), 8)
	assert.Contains(t, err.Error(), "depth 8")
	assert.True(t, errors.Is(err, ErrDepthExceeded))
}

func TestConversionError(t *testing.T) {
	inner := NewUnregisteredTypeError(Q("", "Road"))
	err := NewConversionError(Q("", "Road"), "to-typed", inner)

	assert.Contains(t, err.Error(), "to-typed Road")
	assert.True(t, IsConversionError(err))
	assert.True(t, errors.Is(err, ErrUnregisteredType))
	assert.False(t, IsConversionError(inner))
}
