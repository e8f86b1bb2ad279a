package instance

import (
	"bytes"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

// Equal reports whether a and b hold the same type, value and properties.
// Properties are compared in order. Times and decimals compare by the
// instant and the number they denote.
func Equal(a, b *Instance) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Type == b.Type && valueEqual(a.Value, b.Value) && GroupEqual(&a.Group, &b.Group)
}

// GroupEqual reports whether a and b hold the same properties in the same order.
func GroupEqual(a, b *Group) bool {
	if a.Len() != b.Len() {
		return false
	}
	an, bn := a.Names(), b.Names()
	for i := range an {
		if an[i] != bn[i] {
			return false
		}
		av, bv := a.Get(an[i]), b.Get(bn[i])
		if len(av) != len(bv) {
			return false
		}
		for j := range av {
			if !valueEqual(av[j], bv[j]) {
				return false
			}
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch x := a.(type) {
	case *Instance:
		y, ok := b.(*Instance)
		return ok && Equal(x, y)
	case *Group:
		y, ok := b.(*Group)
		return ok && GroupEqual(x, y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	}
	return reflect.DeepEqual(a, b)
}
