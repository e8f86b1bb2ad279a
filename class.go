package typegen

// Role tells the converter how a field maps onto a generic instance.
type Role uint8

const (
	// RoleValue marks the field holding the instance's own scalar value.
	RoleValue Role = iota
	// RoleProperty marks a named property.
	RoleProperty
	// RoleGroup marks a nested sequence group.
	RoleGroup
	// RoleChoice marks a nested choice group.
	RoleChoice
)

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case RoleValue:
		return "value"
	case RoleProperty:
		return "property"
	case RoleGroup:
		return "group"
	case RoleChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Grouping reports whether the role nests a group class.
func (r Role) Grouping() bool { return r == RoleGroup || r == RoleChoice }

// Multiplicity is the shape of a field: one value or an ordered collection.
type Multiplicity uint8

const (
	// Single fields hold at most one value.
	Single Multiplicity = iota
	// Collection fields hold an ordered sequence of values.
	Collection
)

// String implements fmt.Stringer.
func (m Multiplicity) String() string {
	if m == Collection {
		return "collection"
	}
	return "single"
}

// Object is implemented by every generated model and group struct.
type Object interface {
	// Class returns the static metadata of the struct.
	Class() *Class
}

// Extender is implemented by generated structs that embed the struct
// generated for their schema supertype.
type Extender interface {
	Object
	// Super returns the embedded supertype part of the object.
	Super() Object
}

// Class is the metadata table emitted alongside each generated struct.
// It is the contract between generated code and the converter.
type Class struct {
	// Name of the schema type (or group) the struct was generated for.
	Name QName
	// Super is the class of the embedded supertype, if any.
	Super *Class
	// Group marks classes generated for sequence or choice groups.
	Group bool
	// New returns a new object with collection fields initialized empty.
	New func() Object
	// Fields declared by this class, in declaration order. Fields of
	// the super class are not repeated here.
	Fields []*Field
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name.String()
}

// Field describes one struct field of a generated class.
type Field struct {
	// Name is the Go name of the struct field.
	Name string
	// QName is the schema name of the child. It is zero for value fields.
	QName QName
	// Role of the field in the generic instance.
	Role Role
	// Multiplicity of the field, derived from the child's cardinality.
	Multiplicity Multiplicity
	// Class is the generated class of the field's values, nil for scalars.
	Class *Class
	// Get returns the present values of the field on obj. A nil pointer
	// or an empty collection yields no values.
	Get func(obj Object) []any
	// Add sets a single field or appends to a collection field.
	Add func(obj Object, v any) error
}

// IsValue reports whether the field holds the object's own scalar value.
func (f *Field) IsValue() bool { return f.Role == RoleValue }
