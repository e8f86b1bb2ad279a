// Package gen compiles a schema type graph into Go model classes and
// writes them as source code.
//
// # Pipeline
//
//	load.Provider (schema types, prefixes, main namespace)
//	        ↓
//	   Compile: one Class per type and per group, ModelRegistry
//	        ↓
//	   Emitter: one Go file per class, model.go with the registry
//
// # Classes
//
// Compile walks the types exposed by the provider. Each type yields
// exactly one Class: the class is memoized before its supertype and
// children are compiled, so recursive references resolve to the class
// under construction. A type carrying a value and declaring no children
// is a value type; its class holds a single Value field of the bound
// scalar type, and properties of a value type collapse to that scalar.
// A type without a value whose supertype carries one does not extend the
// supertype's class.
//
// Children that may occur more than once become slices. Optional single
// scalars and the scalar alternatives of a choice become pointers. Groups
// and choices become fields referencing a class generated for the group.
//
// # Naming
//
// All identifiers come from Names and are made unique by a Scope: class
// names per package, field names per struct. Packages follow the
// namespace URIs (reverse host labels, then path segments) unless the
// flat layout is selected.
//
// # Errors
//
// Compilation stops at the first SchemaError; its Kind is one of
// ErrUnsupportedConstruct, ErrMissingConstraint, ErrCyclicInheritance,
// ErrImportCycle or ErrDepthExceeded:
//
//	graph, err := gen.Compile(cfg, schema)
//	if errors.Is(err, gen.ErrImportCycle) {
//	    // retry with gen.WithLayout(gen.LayoutFlat)
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./model"),
//	    gen.WithPackage("github.com/org/project/model"),
//	)
package gen
