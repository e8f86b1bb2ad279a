package store

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typegen"
	"github.com/syssam/typegen/instance"
)

const ns = "urn:example:city"

func city() *instance.Instance {
	inst := instance.New(typegen.Q(ns, "City"))
	inst.Add(typegen.Q(ns, "name"), "Springfield")
	inst.Add(typegen.Q(ns, "population"), int64(30720))
	inst.Add(typegen.Q(ns, "tags"), "river")
	inst.Add(typegen.Q(ns, "tags"), "rail")
	inst.Add(typegen.Q(ns, "area"), decimal.RequireFromString("41.25"))
	inst.Add(typegen.Q(ns, "founded"), time.Date(1796, 5, 1, 0, 0, 0, 0, time.UTC))
	inst.Add(typegen.Q(ns, "capital"), false)
	inst.Add(typegen.Q(ns, "seal"), []byte{0xca, 0xfe})
	inst.Add(typegen.Q(ns, "elevation"), 12.5)

	box := instance.NewGroup()
	box.Add(typegen.Q(ns, "postBox"), "PO 12")
	inst.Add(typegen.Q(ns, "addressOrBox"), box)

	code := instance.NewValue(typegen.Q(ns, "Code"), "SPR")
	inst.Add(typegen.Q(ns, "code"), code)
	return inst
}

func TestRoundTrip(t *testing.T) {
	value := instance.NewValue(typegen.Q(ns, "Code"), "X1")
	empty := instance.New(typegen.QName{})

	data, err := Marshal(city(), value, empty)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, instance.Equal(city(), got[0]))
	assert.True(t, instance.Equal(value, got[1]))
	assert.True(t, instance.Equal(empty, got[2]))

	// Kinds survive, not only the printed values.
	v, _ := got[0].First(typegen.Q(ns, "area"))
	assert.IsType(t, decimal.Decimal{}, v)
	v, _ = got[0].First(typegen.Q(ns, "founded"))
	assert.IsType(t, time.Time{}, v)
	v, _ = got[0].First(typegen.Q(ns, "seal"))
	assert.Equal(t, []byte{0xca, 0xfe}, v)
	v, _ = got[0].First(typegen.Q(ns, "addressOrBox"))
	assert.IsType(t, &instance.Group{}, v)
	v, _ = got[0].First(typegen.Q(ns, "code"))
	require.IsType(t, &instance.Instance{}, v)
	assert.Equal(t, typegen.Q(ns, "Code"), v.(*instance.Instance).Type)
	assert.Equal(t, []typegen.QName{
		typegen.Q(ns, "name"), typegen.Q(ns, "population"), typegen.Q(ns, "tags"),
		typegen.Q(ns, "area"), typegen.Q(ns, "founded"), typegen.Q(ns, "capital"),
		typegen.Q(ns, "seal"), typegen.Q(ns, "elevation"), typegen.Q(ns, "addressOrBox"),
		typegen.Q(ns, "code"),
	}, got[0].Names())
}

func TestIntegerWidening(t *testing.T) {
	inst := instance.New(typegen.Q(ns, "T"))
	inst.Add(typegen.Q(ns, "a"), 7)
	inst.Add(typegen.Q(ns, "b"), int8(-3))
	inst.Add(typegen.Q(ns, "c"), float32(0.5))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []*instance.Instance{inst}))
	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []any{int64(7)}, got[0].Get(typegen.Q(ns, "a")))
	assert.Equal(t, []any{int64(-3)}, got[0].Get(typegen.Q(ns, "b")))
	assert.Equal(t, []any{float64(0.5)}, got[0].Get(typegen.Q(ns, "c")))
}

func TestUnsignedIntegers(t *testing.T) {
	inst := instance.New(typegen.Q(ns, "T"))
	inst.Add(typegen.Q(ns, "a"), uint8(3))
	inst.Add(typegen.Q(ns, "b"), uint64(1<<40))
	inst.Add(typegen.Q(ns, "c"), uint32(math.MaxUint32))

	got, err := Unmarshal(mustMarshal(t, inst))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(3)}, got[0].Get(typegen.Q(ns, "a")))
	assert.Equal(t, []any{int64(1 << 40)}, got[0].Get(typegen.Q(ns, "b")))
	assert.Equal(t, []any{int64(math.MaxUint32)}, got[0].Get(typegen.Q(ns, "c")))

	big := instance.New(typegen.Q(ns, "T"))
	big.Add(typegen.Q(ns, "a"), uint64(math.MaxUint64))
	_, err = Marshal(big)
	assert.True(t, errors.Is(err, ErrUnsupportedValue))
}

func mustMarshal(t *testing.T, insts ...*instance.Instance) []byte {
	t.Helper()
	data, err := Marshal(insts...)
	require.NoError(t, err)
	return data
}

func TestEmpty(t *testing.T) {
	data, err := Marshal()
	require.NoError(t, err)
	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestErrors(t *testing.T) {
	t.Run("unsupported value", func(t *testing.T) {
		inst := instance.New(typegen.Q(ns, "T"))
		inst.Add(typegen.Q(ns, "x"), struct{}{})
		_, err := Marshal(inst)
		assert.True(t, errors.Is(err, ErrUnsupportedValue))
	})

	t.Run("corrupt", func(t *testing.T) {
		data, err := Marshal(city())
		require.NoError(t, err)
		_, err = Unmarshal(data[:len(data)/2])
		assert.True(t, errors.Is(err, ErrCorrupt))

		_, err = Unmarshal([]byte{0x91, 0xa0, 0xa1, 'T', 0x2a})
		assert.True(t, errors.Is(err, ErrCorrupt), "unknown kind")
	})

	t.Run("lengths beyond the input", func(t *testing.T) {
		tests := map[string][]byte{
			"instances":   {0xdd, 0xff, 0xff, 0xff, 0xff},
			"properties":  {0x91, 0xa0, 0xa1, 'T', 0x00, 0xdd, 0xff, 0xff, 0xff, 0xff},
			"values":      {0x91, 0xa0, 0xa1, 'T', 0x00, 0x91, 0xa0, 0xa1, 'p', 0xdd, 0xff, 0xff, 0xff, 0xff},
			"nil array":   {0xc0},
			"nil group":   {0x91, 0xa0, 0xa1, 'T', 0x00, 0xc0},
			"empty input": {},
		}
		for name, data := range tests {
			t.Run(name, func(t *testing.T) {
				got, err := Unmarshal(data)
				assert.True(t, errors.Is(err, ErrCorrupt), "err = %v", err)
				assert.Nil(t, got)
			})
		}
	})

	t.Run("depth", func(t *testing.T) {
		root := instance.New(typegen.Q(ns, "T"))
		g := &root.Group
		for i := 0; i <= MaxDepth; i++ {
			next := instance.NewGroup()
			g.Add(typegen.Q(ns, "g"), next)
			g = next
		}
		_, err := Marshal(root)
		assert.True(t, errors.Is(err, typegen.ErrDepthExceeded))
	})
}
