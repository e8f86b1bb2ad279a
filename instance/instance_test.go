package instance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typegen"
)

var (
	name = typegen.Q("urn:x", "name")
	tags = typegen.Q("urn:x", "tags")
)

func TestGroupOrder(t *testing.T) {
	var g Group
	assert.Zero(t, g.Len())
	assert.Nil(t, g.Get(name))

	g.Add(tags, "a")
	g.Add(name, "Springfield")
	g.Add(tags, "b")

	assert.Equal(t, []typegen.QName{tags, name}, g.Names())
	assert.Equal(t, []any{"a", "b"}, g.Get(tags))
	assert.Equal(t, 2, g.Len())

	v, ok := g.First(tags)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = g.First(typegen.Q("", "missing"))
	assert.False(t, ok)

	var seen []typegen.QName
	g.Each(func(n typegen.QName, _ []any) bool {
		seen = append(seen, n)
		return false
	})
	assert.Equal(t, []typegen.QName{tags}, seen)
}

func TestInstance(t *testing.T) {
	leaf := NewValue(typegen.Q("", "string"), "x")
	assert.True(t, leaf.IsLeaf())

	city := New(typegen.Q("urn:x", "City"))
	city.Add(name, leaf)
	assert.False(t, city.IsLeaf())
	assert.Nil(t, city.Value)
}

func TestEqual(t *testing.T) {
	build := func(when time.Time, amount string) *Instance {
		inst := New(typegen.Q("urn:x", "Order"))
		inst.Add(typegen.Q("urn:x", "placed"), when)
		inner := NewGroup()
		inner.Add(typegen.Q("urn:x", "amount"), decimal.RequireFromString(amount))
		inst.Add(typegen.Q("urn:x", "line"), inner)
		inst.Add(typegen.Q("urn:x", "raw"), []byte{1, 2})
		return inst
	}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.True(t, Equal(build(at, "1.50"), build(at.In(time.FixedZone("x", 3600)), "1.5")))
	assert.False(t, Equal(build(at, "1.5"), build(at, "1.6")))
	assert.False(t, Equal(build(at, "1.5"), build(at.Add(time.Second), "1.5")))
	assert.False(t, Equal(build(at, "1"), nil))
	assert.True(t, Equal(nil, nil))

	a, b := New(typegen.Q("", "T")), New(typegen.Q("", "T"))
	a.Add(name, "x")
	a.Add(tags, "y")
	b.Add(tags, "y")
	b.Add(name, "x")
	assert.False(t, Equal(a, b))
}
