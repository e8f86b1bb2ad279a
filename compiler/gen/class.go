package gen

import (
	"fmt"

	"github.com/syssam/typegen"
	"github.com/syssam/typegen/schema"
)

// Class describes a struct to generate, either for a schema type or for
// a group nested in one.
type Class struct {
	// Name of the schema type. For groups it is the group name, which
	// may be zero.
	Name typegen.QName
	// Package is the dotted name of the package holding the class.
	Package string
	// Ident is the Go type name, unique within Package.
	Ident string
	// Super is the class embedded for the schema supertype.
	Super *Class
	// Fields in declaration order, not including those of Super.
	Fields []*Field
	// ValueType marks classes holding only the scalar value of a value type.
	ValueType bool
	// Group and Choice mark classes generated for groups.
	Group  bool
	Choice bool
	// Root marks type classes without a supertype.
	Root bool
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	if c.Name.IsZero() {
		return c.Ident
	}
	return c.Name.String()
}

// MetaIdent returns the name of the package variable holding the class's
// runtime metadata.
func (c *Class) MetaIdent() string {
	return "class" + c.Ident
}

// HasCollections reports whether the class or a class it embeds has a
// collection field.
func (c *Class) HasCollections() bool {
	for cls := c; cls != nil; cls = cls.Super {
		for _, f := range cls.Fields {
			if f.Multiplicity == typegen.Collection {
				return true
			}
		}
	}
	return false
}

// Field describes a struct field of a generated class.
type Field struct {
	// Ident is the Go field name, unique within the class.
	Ident string
	// Name is the qualified name of the schema child. It is zero for
	// the field holding a value type's own value.
	Name typegen.QName
	// Type of a single element of the field.
	Type FieldType
	// Multiplicity of the field.
	Multiplicity typegen.Multiplicity
	// Role of the field.
	Role typegen.Role
	// Optional single scalars are generated as pointers.
	Optional bool
}

// FieldType is the element type of a field: a scalar binding or a
// generated class.
type FieldType struct {
	Binding schema.Binding
	Class   *Class
}

// String implements fmt.Stringer.
func (t FieldType) String() string {
	if t.Class != nil {
		return t.Class.Ident
	}
	return t.Binding.String()
}

// IsScalar reports whether the type is a binding.
func (t FieldType) IsScalar() bool { return t.Class == nil }

// Nullable reports whether the Go type of the binding has nil as its
// zero value, so that absence needs no pointer.
func (t FieldType) Nullable() bool {
	return t.Class != nil || t.Binding == schema.BindingBytes || t.Binding == schema.BindingAny
}

// ModelRegistry maps type names to the classes generated for them.
type ModelRegistry struct {
	classes map[typegen.QName]*Class
	entries []Entry
}

// Entry is a registration in a ModelRegistry.
type Entry struct {
	Name  typegen.QName
	Class *Class
}

// NewModelRegistry returns an empty registry.
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{classes: make(map[typegen.QName]*Class)}
}

// Register records the class generated for the named type.
func (r *ModelRegistry) Register(name typegen.QName, c *Class) error {
	if c == nil {
		return fmt.Errorf("typegen: register nil class for %s", name)
	}
	if _, ok := r.classes[name]; ok {
		return fmt.Errorf("typegen: type %s registered twice", name)
	}
	r.classes[name] = c
	r.entries = append(r.entries, Entry{Name: name, Class: c})
	return nil
}

// Lookup returns the class registered for name.
func (r *ModelRegistry) Lookup(name typegen.QName) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Entries returns the registrations in order.
func (r *ModelRegistry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Len returns the number of registrations.
func (r *ModelRegistry) Len() int { return len(r.entries) }
