package schema

import (
	"fmt"

	"github.com/syssam/typegen"
)

// Index looks up types by qualified name.
type Index struct {
	types map[typegen.QName]*Type
	order []*Type
}

// NewIndex returns an index of the given types. Types reachable through
// supertypes and properties are indexed too.
func NewIndex(types ...*Type) (*Index, error) {
	idx := &Index{types: make(map[typegen.QName]*Type)}
	for _, t := range types {
		if err := idx.add(t); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (idx *Index) add(t *Type) error {
	if t == nil {
		return nil
	}
	if prev, ok := idx.types[t.Name]; ok {
		if prev != t {
			return fmt.Errorf("schema: type %s defined twice", t.Name)
		}
		return nil
	}
	idx.types[t.Name] = t
	idx.order = append(idx.order, t)
	if err := idx.add(t.Super); err != nil {
		return err
	}
	return idx.addChildren(t.Children)
}

func (idx *Index) addChildren(children []Child) error {
	for _, c := range children {
		if p := c.AsProperty(); p != nil {
			if err := idx.add(p.Type); err != nil {
				return err
			}
		} else if g := c.AsGroup(); g != nil {
			if err := idx.addChildren(g.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

// Lookup returns the type with the given name.
func (idx *Index) Lookup(name typegen.QName) (*Type, bool) {
	t, ok := idx.types[name]
	return t, ok
}

// Types returns all indexed types in the order they were reached.
func (idx *Index) Types() []*Type {
	return append([]*Type(nil), idx.order...)
}

// MappingRelevant returns the indexed types marked mapping relevant.
func (idx *Index) MappingRelevant() []*Type {
	var ts []*Type
	for _, t := range idx.order {
		if t.MappingRelevant {
			ts = append(ts, t)
		}
	}
	return ts
}

// Len returns the number of indexed types.
func (idx *Index) Len() int { return len(idx.order) }
