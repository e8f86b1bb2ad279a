package convert

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/syssam/typegen/schema"
)

// DefaultMaxDepth bounds the nesting of converted graphs.
const DefaultMaxDepth = 128

// Option configures a Converter.
type Option func(*Converter) error

// WithMaxDepth bounds how deep objects and instances may nest. Deeper
// graphs fail with typegen.ErrDepthExceeded.
func WithMaxDepth(n int) Option {
	return func(c *Converter) error {
		if n <= 0 {
			return fmt.Errorf("typegen: convert: max depth must be positive, got %d", n)
		}
		c.maxDepth = n
		return nil
	}
}

// WithSchema makes ToGeneric reject objects whose type is not part of idx.
func WithSchema(idx *schema.Index) Option {
	return func(c *Converter) error {
		c.index = idx
		return nil
	}
}

// WithLogger sets the logger receiving debug events, such as values
// dropped for a single valued field.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) error {
		c.log = l
		return nil
	}
}
