package typegen

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// The helpers below back the Get and Add accessors of generated fields.

// One returns v as the single present value of a required field.
func One[T any](v T) []any {
	return []any{v}
}

// Opt returns the value behind p, or nothing if p is nil.
func Opt[T any](p *T) []any {
	if p == nil {
		return nil
	}
	return []any{*p}
}

// Ref returns the object p, or nothing if p is nil.
func Ref[T any](p *T) []any {
	if p == nil {
		return nil
	}
	return []any{p}
}

// Present returns v unless it is nil or a nil byte slice.
func Present(v any) []any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		if x == nil {
			return nil
		}
	}
	return []any{v}
}

// Values returns the elements of s in order.
func Values[T any](s []T) []any {
	if len(s) == 0 {
		return nil
	}
	vs := make([]any, len(s))
	for i := range s {
		vs[i] = s[i]
	}
	return vs
}

// Set converts v to T and stores it in dst.
func Set[T any](dst *T, v any) error {
	x, err := As[T](v)
	if err != nil {
		return err
	}
	*dst = x
	return nil
}

// SetPtr converts v to T and stores a pointer to it in dst.
func SetPtr[T any](dst **T, v any) error {
	x, err := As[T](v)
	if err != nil {
		return err
	}
	*dst = &x
	return nil
}

// Append converts v to T and appends it to dst.
func Append[T any](dst *[]T, v any) error {
	x, err := As[T](v)
	if err != nil {
		return err
	}
	*dst = append(*dst, x)
	return nil
}

// As converts a generic scalar to T. Besides plain type assertion it
// widens integers and floats, and parses decimals and times from their
// text forms, which is what generic instance stores commonly hand out.
func As[T any](v any) (T, error) {
	if x, ok := v.(T); ok {
		return x, nil
	}
	var zero T
	ok := false
	switch p := any(&zero).(type) {
	case *int64:
		*p, ok = toInt64(v)
	case *int:
		var n int64
		if n, ok = toInt64(v); ok {
			*p = int(n)
		}
	case *float64:
		*p, ok = toFloat64(v)
	case *float32:
		var f float64
		if f, ok = toFloat64(v); ok {
			*p = float32(f)
		}
	case *decimal.Decimal:
		*p, ok = toDecimal(v)
	case *time.Time:
		if s, isString := v.(string); isString {
			t, err := time.Parse(time.RFC3339Nano, s)
			*p, ok = t, err == nil
		}
	case *[]byte:
		if s, isString := v.(string); isString {
			*p, ok = []byte(s), true
		}
	case *string:
		if b, isBytes := v.([]byte); isBytes {
			*p, ok = string(b), true
		}
	}
	if !ok {
		return zero, NewShapeMismatchError(QName{}, "", fmt.Sprintf("cannot use %T as %T", v, zero), nil)
	}
	return zero, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n >= 0x1p63 || n < -0x1p63 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case decimal.Decimal:
		f, _ := n.Float64()
		return f, true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	}
	if i, ok := toInt64(v); ok {
		return decimal.NewFromInt(i), true
	}
	return decimal.Decimal{}, false
}
