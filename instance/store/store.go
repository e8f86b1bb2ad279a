// Package store persists generic instances in MessagePack.
//
// Every scalar is written with a kind tag, so decimals, times, byte
// strings and integers read back with the Go type they were written with.
// Integers of any width read back as int64 and floats as float64. Unsigned
// integers beyond the range of int64 cannot be written.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/typegen"
	"github.com/syssam/typegen/instance"
)

var (
	// ErrUnsupportedValue is returned when an instance holds a value of a
	// Go type the store cannot write.
	ErrUnsupportedValue = errors.New("typegen: store: unsupported value")

	// ErrCorrupt is returned when the input is not a stream of instances.
	ErrCorrupt = errors.New("typegen: store: corrupt input")
)

// MaxDepth bounds the nesting of groups and instances on both write and read.
const MaxDepth = 1024

// preallocLimit caps the capacity reserved for a length read from the input.
const preallocLimit = 1024

type kind uint8

const (
	kindNil kind = iota
	kindString
	kindBool
	kindInt
	kindFloat
	kindDecimal
	kindTime
	kindBytes
	kindGroup
	kindInstance
)

// Encode writes insts to w.
func Encode(w io.Writer, insts []*instance.Instance) error {
	e := &encoder{enc: msgpack.NewEncoder(w)}
	if err := e.enc.EncodeArrayLen(len(insts)); err != nil {
		return err
	}
	for _, inst := range insts {
		if err := e.instance(inst, 0); err != nil {
			return err
		}
	}
	return nil
}

// Marshal returns the encoding of insts.
func Marshal(insts ...*instance.Instance) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, insts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads the instances written by Encode.
func Decode(r io.Reader) ([]*instance.Instance, error) {
	d := &decoder{dec: msgpack.NewDecoder(r)}
	n, err := d.arrayLen()
	if err != nil {
		return nil, err
	}
	insts := make([]*instance.Instance, 0, min(n, preallocLimit))
	for i := 0; i < n; i++ {
		inst, err := d.instance(0)
		if err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}
	return insts, nil
}

// Unmarshal decodes the instances in data.
func Unmarshal(data []byte) ([]*instance.Instance, error) {
	return Decode(bytes.NewReader(data))
}

type encoder struct {
	enc *msgpack.Encoder
}

func (e *encoder) instance(inst *instance.Instance, depth int) error {
	if depth > MaxDepth {
		return typegen.NewDepthError(inst.Type, MaxDepth)
	}
	if err := e.name(inst.Type); err != nil {
		return err
	}
	if err := e.value(inst.Value, depth); err != nil {
		return err
	}
	return e.group(&inst.Group, depth)
}

func (e *encoder) name(n typegen.QName) error {
	if err := e.enc.EncodeString(n.Namespace); err != nil {
		return err
	}
	return e.enc.EncodeString(n.Local)
}

func (e *encoder) group(g *instance.Group, depth int) error {
	if depth > MaxDepth {
		return typegen.NewDepthError(typegen.QName{}, MaxDepth)
	}
	if err := e.enc.EncodeArrayLen(g.Len()); err != nil {
		return err
	}
	var err error
	g.Each(func(name typegen.QName, values []any) bool {
		if err = e.name(name); err != nil {
			return false
		}
		if err = e.enc.EncodeArrayLen(len(values)); err != nil {
			return false
		}
		for _, v := range values {
			if err = e.value(v, depth+1); err != nil {
				return false
			}
		}
		return true
	})
	return err
}

func (e *encoder) tag(k kind) error { return e.enc.EncodeUint8(uint8(k)) }

func (e *encoder) value(v any, depth int) error {
	switch x := v.(type) {
	case nil:
		return e.tag(kindNil)
	case string:
		return e.tagged(kindString, func() error { return e.enc.EncodeString(x) })
	case bool:
		return e.tagged(kindBool, func() error { return e.enc.EncodeBool(x) })
	case int:
		return e.tagged(kindInt, func() error { return e.enc.EncodeInt(int64(x)) })
	case int8:
		return e.tagged(kindInt, func() error { return e.enc.EncodeInt(int64(x)) })
	case int16:
		return e.tagged(kindInt, func() error { return e.enc.EncodeInt(int64(x)) })
	case int32:
		return e.tagged(kindInt, func() error { return e.enc.EncodeInt(int64(x)) })
	case int64:
		return e.tagged(kindInt, func() error { return e.enc.EncodeInt(x) })
	case uint8:
		return e.tagged(kindInt, func() error { return e.enc.EncodeInt(int64(x)) })
	case uint16:
		return e.tagged(kindInt, func() error { return e.enc.EncodeInt(int64(x)) })
	case uint32:
		return e.tagged(kindInt, func() error { return e.enc.EncodeInt(int64(x)) })
	case uint:
		return e.unsigned(uint64(x), v)
	case uint64:
		return e.unsigned(x, v)
	case float32:
		return e.tagged(kindFloat, func() error { return e.enc.EncodeFloat64(float64(x)) })
	case float64:
		return e.tagged(kindFloat, func() error { return e.enc.EncodeFloat64(x) })
	case decimal.Decimal:
		return e.tagged(kindDecimal, func() error { return e.enc.EncodeString(x.String()) })
	case time.Time:
		return e.tagged(kindTime, func() error { return e.enc.EncodeTime(x) })
	case []byte:
		return e.tagged(kindBytes, func() error { return e.enc.EncodeBytes(x) })
	case *instance.Group:
		return e.tagged(kindGroup, func() error { return e.group(x, depth+1) })
	case *instance.Instance:
		return e.tagged(kindInstance, func() error { return e.instance(x, depth+1) })
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func (e *encoder) unsigned(n uint64, v any) error {
	if n > math.MaxInt64 {
		return fmt.Errorf("%w: %T %d overflows int64", ErrUnsupportedValue, v, n)
	}
	return e.tagged(kindInt, func() error { return e.enc.EncodeInt(int64(n)) })
}

func (e *encoder) tagged(k kind, payload func() error) error {
	if err := e.tag(k); err != nil {
		return err
	}
	return payload()
}

type decoder struct {
	dec *msgpack.Decoder
}

func corrupt(err error) error {
	return fmt.Errorf("%w: %v", ErrCorrupt, err)
}

// arrayLen reads an array header. Lengths are not trusted beyond the
// data that follows them, so callers never allocate by them.
func (d *decoder) arrayLen() (int, error) {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return 0, corrupt(err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: nil array", ErrCorrupt)
	}
	return n, nil
}

func (d *decoder) instance(depth int) (*instance.Instance, error) {
	typ, err := d.name()
	if err != nil {
		return nil, err
	}
	if depth > MaxDepth {
		return nil, typegen.NewDepthError(typ, MaxDepth)
	}
	inst := instance.New(typ)
	if inst.Value, err = d.value(depth); err != nil {
		return nil, err
	}
	if err := d.group(&inst.Group, depth); err != nil {
		return nil, err
	}
	return inst, nil
}

func (d *decoder) name() (typegen.QName, error) {
	ns, err := d.dec.DecodeString()
	if err != nil {
		return typegen.QName{}, corrupt(err)
	}
	local, err := d.dec.DecodeString()
	if err != nil {
		return typegen.QName{}, corrupt(err)
	}
	return typegen.Q(ns, local), nil
}

func (d *decoder) group(g *instance.Group, depth int) error {
	if depth > MaxDepth {
		return typegen.NewDepthError(typegen.QName{}, MaxDepth)
	}
	n, err := d.arrayLen()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		name, err := d.name()
		if err != nil {
			return err
		}
		m, err := d.arrayLen()
		if err != nil {
			return err
		}
		for j := 0; j < m; j++ {
			v, err := d.value(depth + 1)
			if err != nil {
				return err
			}
			g.Add(name, v)
		}
	}
	return nil
}

func (d *decoder) value(depth int) (any, error) {
	k, err := d.dec.DecodeUint8()
	if err != nil {
		return nil, corrupt(err)
	}
	var v any
	switch kind(k) {
	case kindNil:
		return nil, nil
	case kindString:
		v, err = d.dec.DecodeString()
	case kindBool:
		v, err = d.dec.DecodeBool()
	case kindInt:
		v, err = d.dec.DecodeInt64()
	case kindFloat:
		v, err = d.dec.DecodeFloat64()
	case kindDecimal:
		var s string
		if s, err = d.dec.DecodeString(); err == nil {
			v, err = decimal.NewFromString(s)
		}
	case kindTime:
		v, err = d.dec.DecodeTime()
	case kindBytes:
		v, err = d.dec.DecodeBytes()
	case kindGroup:
		g := instance.NewGroup()
		if err := d.group(g, depth+1); err != nil {
			return nil, err
		}
		return g, nil
	case kindInstance:
		return d.instance(depth + 1)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrCorrupt, k)
	}
	if err != nil {
		return nil, corrupt(err)
	}
	return v, nil
}
