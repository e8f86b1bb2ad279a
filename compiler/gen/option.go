package gen

import (
	"errors"
	"fmt"
	"runtime"
)

// DefaultHeader is the header comment of every generated file.
const DefaultHeader = "Code generated by typegen. DO NOT EDIT."

// DefaultMaxDepth bounds the nesting of types and groups during compilation.
const DefaultMaxDepth = 512

// Layout decides how generated classes are distributed over packages.
type Layout uint8

const (
	// LayoutNamespace places the classes of each namespace in a package
	// derived from the namespace URI.
	LayoutNamespace Layout = iota
	// LayoutFlat places all classes in the root package.
	LayoutFlat
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	if l == LayoutFlat {
		return "flat"
	}
	return "namespace"
}

// ParseLayout parses "namespace" or "flat".
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "namespace", "":
		return LayoutNamespace, nil
	case "flat":
		return LayoutFlat, nil
	}
	return 0, fmt.Errorf("unknown layout %q", s)
}

// Config holds the code generation settings.
type Config struct {
	// Target is the output directory of the root package.
	Target string
	// Package is the import path of the root package.
	Package string
	// Header is the comment at the top of each generated file.
	Header string
	// Layout of the generated packages.
	Layout Layout
	// SkipTypes lists local type names excluded from generation.
	SkipTypes []string
	// MaxDepth bounds the nesting of types and groups.
	MaxDepth int
	// Workers bounds the number of files written in parallel.
	Workers int
}

func (c *Config) skipped(local string) bool {
	for _, s := range c.SkipTypes {
		if s == local {
			return true
		}
	}
	return false
}

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the import path of the root output package.
// For example: "github.com/org/project/model".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithLayout sets the package layout.
func WithLayout(l Layout) Option {
	return func(c *Config) error {
		if l != LayoutNamespace && l != LayoutFlat {
			return NewConfigError("Layout", l, "unsupported layout; use namespace or flat")
		}
		c.Layout = l
		return nil
	}
}

// WithSkipTypes excludes types with the given local names. Properties
// of a skipped type are dropped from the classes referring to them.
func WithSkipTypes(names ...string) Option {
	return func(c *Config) error {
		c.SkipTypes = append(c.SkipTypes, names...)
		return nil
	}
}

// WithMaxDepth bounds how deep types and groups may nest.
func WithMaxDepth(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("MaxDepth", n, "must be positive")
		}
		c.MaxDepth = n
		return nil
	}
}

// WithWorkers sets the number of parallel file writers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Package:  "model",
		Header:   DefaultHeader,
		MaxDepth: DefaultMaxDepth,
		Workers:  runtime.GOMAXPROCS(0),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
