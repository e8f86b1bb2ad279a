package schema

import (
	"fmt"
	"strconv"

	"github.com/syssam/typegen"
)

// Unbounded is the maximum occurrence of a child that may repeat without limit.
const Unbounded int64 = -1

// Cardinality is the minimum and maximum occurrence of a child within its parent.
type Cardinality struct {
	Min int64
	Max int64
}

// Exactly returns the cardinality n..n.
func Exactly(n int64) *Cardinality { return &Cardinality{Min: n, Max: n} }

// Optional returns the cardinality 0..1.
func Optional() *Cardinality { return &Cardinality{Min: 0, Max: 1} }

// Many returns the cardinality min..unbounded.
func Many(lower int64) *Cardinality { return &Cardinality{Min: lower, Max: Unbounded} }

// MayOccurMultipleTimes reports whether more than one occurrence is allowed.
func (c Cardinality) MayOccurMultipleTimes() bool {
	return c.Max > 1 || c.Max == Unbounded
}

// String implements fmt.Stringer.
func (c Cardinality) String() string {
	upper := "unbounded"
	if c.Max != Unbounded {
		upper = strconv.FormatInt(c.Max, 10)
	}
	return fmt.Sprintf("%d..%s", c.Min, upper)
}

// Binding is the scalar semantic type of a value type.
type Binding uint8

// Scalar bindings. BindingNone marks a missing binding.
const (
	BindingNone Binding = iota
	BindingString
	BindingBoolean
	BindingInteger
	BindingFloat
	BindingDecimal
	BindingDateTime
	BindingBytes
	BindingAny
)

var bindingNames = [...]string{
	BindingNone:     "",
	BindingString:   "string",
	BindingBoolean:  "boolean",
	BindingInteger:  "integer",
	BindingFloat:    "float",
	BindingDecimal:  "decimal",
	BindingDateTime: "datetime",
	BindingBytes:    "bytes",
	BindingAny:      "any",
}

// String implements fmt.Stringer.
func (b Binding) String() string {
	if int(b) < len(bindingNames) {
		return bindingNames[b]
	}
	return "binding(" + strconv.Itoa(int(b)) + ")"
}

// ParseBinding returns the binding with the given name.
func ParseBinding(s string) (Binding, error) {
	for b, name := range bindingNames {
		if name != "" && name == s {
			return Binding(b), nil
		}
	}
	return BindingNone, fmt.Errorf("schema: unknown binding %q", s)
}

// Type is a node in the schema graph.
type Type struct {
	Name typegen.QName
	// Super is the supertype, nil for types without one.
	Super *Type
	// HasValue is set when instances of the type carry a scalar value.
	HasValue bool
	// Binding is meaningful for value types only.
	Binding Binding
	// Children are the declared children in declaration order.
	// Children inherited from Super are not repeated.
	Children []Child
	// MappingRelevant marks the types code generation starts from.
	MappingRelevant bool
}

// IsValueType reports whether t carries a value and declares no children.
func (t *Type) IsValueType() bool {
	return t.HasValue && len(t.Children) == 0
}

// String implements fmt.Stringer.
func (t *Type) String() string { return t.Name.String() }

// Child is a declared child of a type or a group. Implementations are
// *Property and *Group.
type Child interface {
	// ChildName returns the qualified name of the child. It may be zero
	// for groups.
	ChildName() typegen.QName
	// Occurrence returns the cardinality of the child, nil if missing.
	Occurrence() *Cardinality
	// AsProperty returns the child as a property, or nil.
	AsProperty() *Property
	// AsGroup returns the child as a group, or nil.
	AsGroup() *Group
}

// Property is a named child whose values are of another type.
type Property struct {
	Name        typegen.QName
	Type        *Type
	Cardinality *Cardinality
}

func (p *Property) ChildName() typegen.QName { return p.Name }
func (p *Property) Occurrence() *Cardinality { return p.Cardinality }
func (p *Property) AsProperty() *Property    { return p }
func (p *Property) AsGroup() *Group          { return nil }

// Group nests children as an ordered sequence, or as alternatives when
// Choice is set.
type Group struct {
	// Name of the group. Many schema constructs leave it empty.
	Name typegen.QName
	// DisplayName is a human readable label, possibly empty.
	DisplayName string
	Choice      bool
	Cardinality *Cardinality
	Children    []Child
}

func (g *Group) ChildName() typegen.QName { return g.Name }
func (g *Group) Occurrence() *Cardinality { return g.Cardinality }
func (g *Group) AsProperty() *Property    { return nil }
func (g *Group) AsGroup() *Group          { return g }
