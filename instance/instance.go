// Package instance is the generic, schema-described representation of
// data: an instance holds a scalar value, or an ordered multimap of
// property values keyed by qualified name, or both.
//
// Property values are scalars, nested *Group values, or nested *Instance
// values.
package instance

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/syssam/typegen"
)

// Group is an ordered multimap from property names to values. Names keep
// the order in which they were first added, and values under one name
// keep the order in which they were added. The zero value is empty and
// ready to use.
type Group struct {
	props *linkedhashmap.Map
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{}
}

// Add appends v to the values under name.
func (g *Group) Add(name typegen.QName, v any) {
	if g.props == nil {
		g.props = linkedhashmap.New()
	}
	if vs, ok := g.props.Get(name); ok {
		g.props.Put(name, append(vs.([]any), v))
		return
	}
	g.props.Put(name, []any{v})
}

// Get returns the values under name in insertion order.
func (g *Group) Get(name typegen.QName) []any {
	if g == nil || g.props == nil {
		return nil
	}
	vs, ok := g.props.Get(name)
	if !ok {
		return nil
	}
	return vs.([]any)
}

// First returns the first value under name.
func (g *Group) First(name typegen.QName) (any, bool) {
	vs := g.Get(name)
	if len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

// Names returns the property names in insertion order.
func (g *Group) Names() []typegen.QName {
	if g == nil || g.props == nil {
		return nil
	}
	keys := g.props.Keys()
	names := make([]typegen.QName, len(keys))
	for i, k := range keys {
		names[i] = k.(typegen.QName)
	}
	return names
}

// Len returns the number of distinct property names.
func (g *Group) Len() int {
	if g == nil || g.props == nil {
		return 0
	}
	return g.props.Size()
}

// Each calls fn for every name in insertion order with its values. It
// stops early when fn returns false.
func (g *Group) Each(fn func(name typegen.QName, values []any) bool) {
	if g == nil || g.props == nil {
		return
	}
	it := g.props.Iterator()
	for it.Next() {
		if !fn(it.Key().(typegen.QName), it.Value().([]any)) {
			return
		}
	}
}

// Instance is a generic instance of a schema type.
type Instance struct {
	// Type is the declared type of the instance. Nested instances may
	// leave it zero.
	Type typegen.QName
	// Value is the instance's own scalar value, nil if it has none.
	Value any
	Group
}

// New returns an empty instance of the given type.
func New(typ typegen.QName) *Instance {
	return &Instance{Type: typ}
}

// NewValue returns a leaf instance holding v.
func NewValue(typ typegen.QName, v any) *Instance {
	return &Instance{Type: typ, Value: v}
}

// IsLeaf reports whether the instance has no properties.
func (i *Instance) IsLeaf() bool { return i.Len() == 0 }
