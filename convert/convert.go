// Package convert moves data between generic instances and the objects of
// generated model packages.
//
// Conversion is driven by the field tables generated alongside every
// struct (see typegen.Class). Absent data is omitted in both directions:
// nil fields and empty collections produce no entries, and fields without
// matching entries keep the value set by Class.New.
//
//	conv := convert.MustNew()
//	inst, err := conv.ToGeneric(city)
//	...
//	obj, err := conv.Resolve(inst, model.Model)
package convert

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/syssam/typegen"
	"github.com/syssam/typegen/instance"
	"github.com/syssam/typegen/internal/logging"
	"github.com/syssam/typegen/schema"
)

const (
	opToGeneric = "to-generic"
	opToTyped   = "to-typed"
)

// Converter converts between typed objects and generic instances. It is
// safe for concurrent use.
type Converter struct {
	maxDepth int
	index    *schema.Index
	log      zerolog.Logger

	mu    sync.RWMutex
	slots map[*typegen.Class][]slot
}

// slot is a field of a class or of one of its super classes. The field is
// read on the object reached by calling Super hops times.
type slot struct {
	owner *typegen.Class
	field *typegen.Field
	hops  int
}

// New returns a converter configured by opts.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		maxDepth: DefaultMaxDepth,
		log:      logging.Logger,
		slots:    make(map[*typegen.Class][]slot),
	}
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Converter {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// fields returns the flattened fields of cls, super classes first. The
// result is computed once per class.
func (c *Converter) fields(cls *typegen.Class) ([]slot, error) {
	c.mu.RLock()
	s, ok := c.slots[cls]
	c.mu.RUnlock()
	if ok {
		return s, nil
	}
	var chain []*typegen.Class
	for k := cls; k != nil; k = k.Super {
		if len(chain) == c.maxDepth {
			return nil, typegen.NewDepthError(cls.Name, c.maxDepth)
		}
		chain = append(chain, k)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, f := range chain[i].Fields {
			s = append(s, slot{owner: chain[i], field: f, hops: i})
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.slots[cls]; ok {
		return cached, nil
	}
	c.slots[cls] = s
	return s, nil
}

// on returns the part of obj holding the slot's field.
func (s slot) on(obj typegen.Object) (typegen.Object, error) {
	for i := 0; i < s.hops; i++ {
		ext, ok := obj.(typegen.Extender)
		if !ok {
			return nil, typegen.NewShapeMismatchError(obj.Class().Name, s.field.Name,
				fmt.Sprintf("%T has a super class but does not implement Super", obj), nil)
		}
		obj = ext.Super()
	}
	return obj, nil
}

func (s slot) mismatch(msg string, cause error) error {
	return typegen.NewShapeMismatchError(s.owner.Name, s.field.Name, msg, cause)
}

// ToGeneric converts obj into a generic instance of the type it was
// generated for.
func (c *Converter) ToGeneric(obj typegen.Object) (*instance.Instance, error) {
	if obj == nil {
		return nil, typegen.NewConversionError(typegen.QName{}, opToGeneric,
			typegen.NewShapeMismatchError(typegen.QName{}, "", "nil object", nil))
	}
	cls := obj.Class()
	if c.index != nil {
		if _, ok := c.index.Lookup(cls.Name); !ok {
			return nil, typegen.NewConversionError(cls.Name, opToGeneric, typegen.NewUnregisteredTypeError(cls.Name))
		}
	}
	inst := instance.New(cls.Name)
	if err := c.toGeneric(obj, cls, &inst.Group, &inst.Value, 1); err != nil {
		return nil, typegen.NewConversionError(cls.Name, opToGeneric, err)
	}
	return inst, nil
}

// ToGenericAll converts every object, stopping at the first failure.
func (c *Converter) ToGenericAll(objs []typegen.Object) ([]*instance.Instance, error) {
	insts := make([]*instance.Instance, 0, len(objs))
	for _, obj := range objs {
		inst, err := c.ToGeneric(obj)
		if err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}
	return insts, nil
}

// toGeneric adds the fields of obj to g. The value is nil when obj
// becomes a group, which cannot hold a value of its own.
func (c *Converter) toGeneric(obj typegen.Object, cls *typegen.Class, g *instance.Group, value *any, depth int) error {
	if depth > c.maxDepth {
		return typegen.NewDepthError(cls.Name, c.maxDepth)
	}
	slots, err := c.fields(cls)
	if err != nil {
		return err
	}
	for _, s := range slots {
		part, err := s.on(obj)
		if err != nil {
			return err
		}
		vs := s.field.Get(part)
		if len(vs) == 0 {
			continue
		}
		if s.field.IsValue() {
			if value == nil {
				return s.mismatch("value field in a group", nil)
			}
			*value = vs[0]
			continue
		}
		for _, v := range vs {
			gv, err := c.genericValue(s, v, depth)
			if err != nil {
				return err
			}
			g.Add(s.field.QName, gv)
		}
	}
	return nil
}

func (c *Converter) genericValue(s slot, v any, depth int) (any, error) {
	obj, ok := v.(typegen.Object)
	if !ok {
		if s.field.Class != nil || s.field.Role.Grouping() {
			return nil, s.mismatch(fmt.Sprintf("scalar %T for a field of class %s", v, s.field.Class), nil)
		}
		return v, nil
	}
	cls := obj.Class()
	if s.field.Role.Grouping() || cls.Group {
		g := instance.NewGroup()
		if err := c.toGeneric(obj, cls, g, nil, depth+1); err != nil {
			return nil, err
		}
		return g, nil
	}
	inst := instance.New(cls.Name)
	if err := c.toGeneric(obj, cls, &inst.Group, &inst.Value, depth+1); err != nil {
		return nil, err
	}
	return inst, nil
}

// Resolve converts inst into an object of the class model registers for
// the instance's type.
func (c *Converter) Resolve(inst *instance.Instance, model typegen.ModelInfo) (typegen.Object, error) {
	if inst == nil {
		return nil, typegen.NewConversionError(typegen.QName{}, opToTyped,
			typegen.NewShapeMismatchError(typegen.QName{}, "", "nil instance", nil))
	}
	cls, err := model.Lookup(inst.Type)
	if err != nil {
		return nil, typegen.NewConversionError(inst.Type, opToTyped, err)
	}
	return c.ToTyped(inst, cls)
}

// ToTypedAll resolves and converts every instance, stopping at the first
// failure.
func (c *Converter) ToTypedAll(insts []*instance.Instance, model typegen.ModelInfo) ([]typegen.Object, error) {
	objs := make([]typegen.Object, 0, len(insts))
	for _, inst := range insts {
		obj, err := c.Resolve(inst, model)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// ToTyped converts inst into a new object of cls.
func (c *Converter) ToTyped(inst *instance.Instance, cls *typegen.Class) (typegen.Object, error) {
	name := cls.Name
	if inst == nil {
		return nil, typegen.NewConversionError(name, opToTyped,
			typegen.NewShapeMismatchError(name, "", "nil instance", nil))
	}
	if !inst.Type.IsZero() {
		name = inst.Type
	}
	obj, err := c.toTyped(&inst.Group, inst, cls, 1)
	if err != nil {
		return nil, typegen.NewConversionError(name, opToTyped, err)
	}
	return obj, nil
}

// toTyped builds an object of cls from g. The instance is nil when the
// source is a group.
func (c *Converter) toTyped(g *instance.Group, inst *instance.Instance, cls *typegen.Class, depth int) (typegen.Object, error) {
	if depth > c.maxDepth {
		return nil, typegen.NewDepthError(cls.Name, c.maxDepth)
	}
	if cls.New == nil {
		return nil, typegen.NewShapeMismatchError(cls.Name, "", "class has no constructor", nil)
	}
	slots, err := c.fields(cls)
	if err != nil {
		return nil, err
	}
	obj := cls.New()
	for _, s := range slots {
		part, err := s.on(obj)
		if err != nil {
			return nil, err
		}
		if s.field.IsValue() {
			if inst == nil {
				return nil, s.mismatch("value field fed a group", nil)
			}
			if inst.Value != nil {
				if err := c.add(s, part, inst.Value); err != nil {
					return nil, err
				}
			}
			continue
		}
		vs := g.Get(s.field.QName)
		if len(vs) == 0 {
			continue
		}
		if s.field.Multiplicity == typegen.Single && len(vs) > 1 {
			c.log.Debug().
				Stringer("class", s.owner).
				Str("field", s.field.Name).
				Int("values", len(vs)).
				Msg("kept first value of single valued field")
			vs = vs[:1]
		}
		for _, v := range vs {
			tv, err := c.typedValue(s, v, depth)
			if err != nil {
				return nil, err
			}
			if tv == nil {
				continue
			}
			if err := c.add(s, part, tv); err != nil {
				return nil, err
			}
		}
	}
	return obj, nil
}

func (c *Converter) typedValue(s slot, v any, depth int) (any, error) {
	target := s.field.Class
	switch x := v.(type) {
	case *instance.Instance:
		if target == nil {
			if x.IsLeaf() {
				return x.Value, nil
			}
			return nil, s.mismatch("nested instance for a scalar field", nil)
		}
		if target.Group {
			return c.toTyped(&x.Group, nil, target, depth+1)
		}
		return c.toTyped(&x.Group, x, target, depth+1)
	case *instance.Group:
		if target == nil {
			return nil, s.mismatch("nested group for a scalar field", nil)
		}
		return c.toTyped(x, nil, target, depth+1)
	default:
		if target != nil {
			return nil, s.mismatch(fmt.Sprintf("scalar %T for a field of class %s", v, target), nil)
		}
		return v, nil
	}
}

// add stores v through the generated accessor, naming the field in
// coercion errors.
func (c *Converter) add(s slot, part typegen.Object, v any) error {
	err := s.field.Add(part, v)
	if err == nil {
		return nil
	}
	var sm *typegen.ShapeMismatchError
	if errors.As(err, &sm) && sm.Field == "" {
		return s.mismatch(sm.Message, sm.Cause)
	}
	return err
}
