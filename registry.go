package typegen

import "fmt"

// ModelInfo resolves a schema type name to its generated class.
// Generated packages expose an implementation as their Model variable.
type ModelInfo interface {
	Lookup(name QName) (*Class, error)
}

// Registry maps type names to generated classes.
type Registry struct {
	classes map[QName]*Class
	order   []QName
}

// NewRegistry returns a registry holding the given classes.
func NewRegistry(classes ...*Class) (*Registry, error) {
	r := &Registry{classes: make(map[QName]*Class, len(classes))}
	for _, c := range classes {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. It is used by
// generated code, where a failure means the generator emitted a duplicate.
func MustRegistry(classes ...*Class) *Registry {
	r, err := NewRegistry(classes...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds a class under its type name.
func (r *Registry) Register(c *Class) error {
	if c == nil {
		return fmt.Errorf("typegen: register nil class")
	}
	if c.Group {
		return fmt.Errorf("typegen: group class %s cannot be registered", c.Name)
	}
	if _, ok := r.classes[c.Name]; ok {
		return fmt.Errorf("typegen: class for type %s registered twice", c.Name)
	}
	if r.classes == nil {
		r.classes = make(map[QName]*Class)
	}
	r.classes[c.Name] = c
	r.order = append(r.order, c.Name)
	return nil
}

// Lookup returns the class registered for name.
func (r *Registry) Lookup(name QName) (*Class, error) {
	if c, ok := r.classes[name]; ok {
		return c, nil
	}
	return nil, NewUnregisteredTypeError(name)
}

// Names returns the registered type names in registration order.
func (r *Registry) Names() []QName {
	return append([]QName(nil), r.order...)
}

// Len returns the number of registered classes.
func (r *Registry) Len() int { return len(r.order) }

var _ ModelInfo = (*Registry)(nil)
