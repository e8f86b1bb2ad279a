package convert

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/typegen"
	"github.com/syssam/typegen/instance"
	"github.com/syssam/typegen/internal/citymodel"
	"github.com/syssam/typegen/internal/citymodel/example/city"
	gml "github.com/syssam/typegen/internal/citymodel/net/opengis/www/gml/_3_2"
	"github.com/syssam/typegen/schema"
)

var (
	classCity = (*city.City)(nil).Class()
	classCode = (*city.Code)(nil).Class()
)

func newCity() *city.City { return classCity.New().(*city.City) }

func q(local string) typegen.QName { return typegen.Q(cityNS, local) }

func ptr[T any](v T) *T { return &v }

func springfield() *city.City {
	c := newCity()
	c.Id = "c1"
	c.Alias = []string{"Springfield, IL"}
	c.Name = "Springfield"
	c.Population = ptr(int64(30720))
	c.Tags = []string{"a", "b"}
	c.Code = ptr("SPR")
	c.GmlLocation = &gml.Point{GmlPos: []float64{39.8, -89.6}}
	c.Founded = ptr(time.Date(1821, time.April, 1, 0, 0, 0, 0, time.UTC))
	c.Area = ptr(decimal.RequireFromString("41.25"))
	c.Seal = []byte{1, 2}
	c.AddressOrBox = &city.CityAddressOrBox{PostBox: ptr("PO 12")}
	shelby := newCity()
	shelby.Id = "c2"
	shelby.Name = "Shelbyville"
	c.District = []*city.District{
		{DistrictName: "North", Neighbour: []*city.City{shelby}},
		{DistrictName: "South", Neighbour: []*city.City{}},
	}
	return c
}

func TestCityWithoutPopulation(t *testing.T) {
	conv := MustNew()
	c := newCity()
	c.Name = "Springfield"

	inst, err := conv.ToGeneric(c)
	require.NoError(t, err)
	assert.Equal(t, q("City"), inst.Type)
	assert.Equal(t, []typegen.QName{q("id"), q("name")}, inst.Names(), "required fields are always present")
	assert.Equal(t, []any{"Springfield"}, inst.Get(q("name")))
	assert.Nil(t, inst.Get(q("population")))

	back, err := conv.ToTyped(inst, classCity)
	require.NoError(t, err)
	assert.Equal(t, c, back)
	assert.Nil(t, back.(*city.City).Population)
}

func TestTags(t *testing.T) {
	conv := MustNew()
	c := newCity()
	c.Tags = []string{"a", "b"}

	inst, err := conv.ToGeneric(c)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, inst.Get(q("tags")))

	back, err := conv.ToTyped(inst, classCity)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, back.(*city.City).Tags)
}

func TestToGenericShape(t *testing.T) {
	inst, err := MustNew().ToGeneric(springfield())
	require.NoError(t, err)

	// Super class fields come first.
	assert.Equal(t, []typegen.QName{
		q("id"), q("alias"), q("name"), q("population"), q("tags"), q("code"),
		typegen.Q(gmlNS, "location"), q("founded"), q("area"), q("seal"), {}, q("district"),
	}, inst.Names())

	// Properties of value types hold the bare value.
	assert.Equal(t, []any{"SPR"}, inst.Get(q("code")))

	loc, ok := inst.First(typegen.Q(gmlNS, "location"))
	require.True(t, ok)
	require.IsType(t, &instance.Instance{}, loc)
	assert.Equal(t, typegen.Q(gmlNS, "Point"), loc.(*instance.Instance).Type)
	assert.Equal(t, []any{39.8, -89.6}, loc.(*instance.Instance).Get(typegen.Q(gmlNS, "pos")))

	// Groups nest instead of flattening into the parent.
	box, ok := inst.First(typegen.QName{})
	require.True(t, ok)
	require.IsType(t, &instance.Group{}, box)
	assert.Equal(t, []typegen.QName{q("postBox")}, box.(*instance.Group).Names())
	assert.Nil(t, inst.Get(q("postBox")))

	districts := inst.Get(q("district"))
	require.Len(t, districts, 2)
	north := districts[0].(*instance.Group)
	assert.Equal(t, []any{"North"}, north.Get(q("districtName")))
	neighbours := north.Get(q("neighbour"))
	require.Len(t, neighbours, 1)
	assert.Equal(t, q("City"), neighbours[0].(*instance.Instance).Type)
	assert.Nil(t, districts[1].(*instance.Group).Get(q("neighbour")), "empty collections are omitted")
}

func TestRoundTrip(t *testing.T) {
	conv := MustNew()
	tests := []struct {
		name  string
		obj   typegen.Object
		model typegen.ModelInfo
	}{
		{name: "city", obj: springfield(), model: citymodel.Model},
		{name: "empty city", obj: classCity.New(), model: citymodel.Model},
		{name: "value type", obj: &city.Code{Value: "SPR"}, model: citymodel.Model},
		{name: "supertype", obj: &city.Place{Id: "p1", Alias: []string{"x"}}, model: citymodel.Model},
		{name: "point", obj: &gml.Point{GmlPos: []float64{1, 2}}, model: citymodel.Model},
		{name: "value type with property", obj: &Length{Measure: Measure{Value: 2.5}, Uom: "km"}, model: units},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := conv.ToGeneric(tt.obj)
			require.NoError(t, err)
			back, err := conv.Resolve(inst, tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.obj, back)

			again, err := conv.ToGeneric(back)
			require.NoError(t, err)
			assert.True(t, instance.Equal(inst, again))
		})
	}
}

func TestValueFields(t *testing.T) {
	conv := MustNew()

	inst, err := conv.ToGeneric(&Length{Measure: Measure{Value: 2.5}, Uom: "km"})
	require.NoError(t, err)
	assert.Equal(t, 2.5, inst.Value)
	assert.Equal(t, []any{"km"}, inst.Get(q("uom")))

	obj, err := conv.ToTyped(instance.NewValue(q("Measure"), int64(3)), classMeasure)
	require.NoError(t, err)
	assert.Equal(t, &Measure{Value: 3}, obj, "integers widen to floats")

	obj, err = conv.ToTyped(instance.New(q("Code")), classCode)
	require.NoError(t, err)
	assert.Equal(t, &city.Code{}, obj)
}

func TestToTypedCoercion(t *testing.T) {
	inst := instance.New(q("City"))
	inst.Add(q("name"), instance.NewValue(typegen.Q(schemaNS, "string"), "Springfield"))
	inst.Add(q("population"), 30720)
	inst.Add(q("area"), "41.25")
	inst.Add(q("seal"), "raw")
	inst.Add(q("founded"), "1821-04-01T00:00:00Z")
	inst.Add(q("code"), instance.NewValue(q("Code"), "SPR"))
	inst.Add(q("name"), "ignored")

	obj, err := MustNew().ToTyped(inst, classCity)
	require.NoError(t, err)
	c := obj.(*city.City)
	assert.Equal(t, "Springfield", c.Name, "leaf instances contribute their value")
	assert.Equal(t, int64(30720), *c.Population)
	assert.True(t, decimal.RequireFromString("41.25").Equal(*c.Area))
	assert.Equal(t, []byte("raw"), c.Seal)
	assert.True(t, time.Date(1821, time.April, 1, 0, 0, 0, 0, time.UTC).Equal(*c.Founded))
	assert.Equal(t, "SPR", *c.Code)
}

const schemaNS = "http://www.w3.org/2001/XMLSchema"

func TestToTypedGroupsFromInstances(t *testing.T) {
	box := instance.New(typegen.QName{})
	box.Add(q("street"), "Evergreen Terrace")
	inst := instance.New(q("City"))
	inst.Add(typegen.QName{}, box)

	obj, err := MustNew().ToTyped(inst, classCity)
	require.NoError(t, err)
	require.NotNil(t, obj.(*city.City).AddressOrBox)
	assert.Equal(t, "Evergreen Terrace", *obj.(*city.City).AddressOrBox.Street)
	assert.Nil(t, obj.(*city.City).AddressOrBox.PostBox)
}

func TestErrors(t *testing.T) {
	conv := MustNew()

	t.Run("unregistered type", func(t *testing.T) {
		_, err := conv.Resolve(instance.New(q("Road")), citymodel.Model)
		require.Error(t, err)
		assert.True(t, errors.Is(err, typegen.ErrUnregisteredType))
		assert.True(t, typegen.IsConversionError(err))
		assert.Contains(t, err.Error(), "{urn:example:city}Road")

		_, err = conv.ToTypedAll([]*instance.Instance{instance.New(q("City")), instance.New(q("Road"))}, citymodel.Model)
		assert.True(t, typegen.IsUnregisteredType(err))
	})

	t.Run("scalar for class field", func(t *testing.T) {
		inst := instance.New(q("City"))
		inst.Add(typegen.Q(gmlNS, "location"), "39.8 -89.6")
		_, err := conv.ToTyped(inst, classCity)
		require.Error(t, err)
		assert.True(t, errors.Is(err, typegen.ErrShapeMismatch))
		assert.Contains(t, err.Error(), "GmlLocation")
	})

	t.Run("group for scalar field", func(t *testing.T) {
		inst := instance.New(q("City"))
		inst.Add(q("name"), instance.NewGroup())
		_, err := conv.ToTyped(inst, classCity)
		assert.True(t, errors.Is(err, typegen.ErrShapeMismatch))

		nested := instance.New(typegen.QName{})
		nested.Add(q("x"), "y")
		inst = instance.New(q("City"))
		inst.Add(q("name"), nested)
		_, err = conv.ToTyped(inst, classCity)
		assert.True(t, errors.Is(err, typegen.ErrShapeMismatch))
	})

	t.Run("value field fed a group", func(t *testing.T) {
		valued := &typegen.Class{Group: true, New: func() typegen.Object { return &city.Code{} }, Fields: classCode.Fields}
		holder := &typegen.Class{Name: q("Holder"), New: func() typegen.Object { return &city.Code{} }, Fields: []*typegen.Field{{
			Name:  "Nested",
			QName: q("nested"),
			Role:  typegen.RoleGroup,
			Class: valued,
			Get:   func(typegen.Object) []any { return nil },
			Add:   func(typegen.Object, any) error { return nil },
		}}}
		inst := instance.New(q("Holder"))
		inst.Add(q("nested"), instance.NewGroup())
		_, err := conv.ToTyped(inst, holder)
		assert.True(t, errors.Is(err, typegen.ErrShapeMismatch))
	})

	t.Run("failed coercion", func(t *testing.T) {
		inst := instance.New(q("City"))
		inst.Add(q("population"), "many")
		_, err := conv.ToTyped(inst, classCity)
		require.Error(t, err)
		assert.True(t, typegen.IsShapeMismatch(err))
		assert.Contains(t, err.Error(), "Population")
	})

	t.Run("nil", func(t *testing.T) {
		_, err := conv.ToGeneric(nil)
		assert.True(t, typegen.IsShapeMismatch(err))
		_, err = conv.ToTyped(nil, classCity)
		assert.True(t, typegen.IsShapeMismatch(err))
		_, err = conv.Resolve(nil, citymodel.Model)
		assert.True(t, typegen.IsShapeMismatch(err))
	})

	t.Run("bad option", func(t *testing.T) {
		_, err := New(WithMaxDepth(0))
		assert.Error(t, err)
	})
}

func TestDepth(t *testing.T) {
	chain := func(n int) *city.City {
		root := newCity()
		cur := root
		for i := 0; i < n; i++ {
			next := newCity()
			cur.District = []*city.District{{Neighbour: []*city.City{next}}}
			cur = next
		}
		return root
	}

	// Each level nests a district group and a city.
	conv := MustNew(WithMaxDepth(9))
	_, err := conv.ToGeneric(chain(4))
	require.NoError(t, err)
	_, err = conv.ToGeneric(chain(5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, typegen.ErrDepthExceeded))

	inst, err := MustNew().ToGeneric(chain(5))
	require.NoError(t, err)
	_, err = conv.ToTyped(inst, classCity)
	assert.True(t, errors.Is(err, typegen.ErrDepthExceeded))
}

func TestWithSchema(t *testing.T) {
	idx, err := schema.NewIndex(&schema.Type{Name: q("City")})
	require.NoError(t, err)
	conv := MustNew(WithSchema(idx))

	_, err = conv.ToGeneric(classCity.New())
	require.NoError(t, err)
	_, err = conv.ToGeneric(&city.Code{Value: "x"})
	assert.True(t, errors.Is(err, typegen.ErrUnregisteredType))
}

func TestAll(t *testing.T) {
	conv := MustNew()
	objs := []typegen.Object{springfield(), &city.Code{Value: "SPR"}}
	insts, err := conv.ToGenericAll(objs)
	require.NoError(t, err)
	require.Len(t, insts, 2)

	back, err := conv.ToTypedAll(insts, citymodel.Model)
	require.NoError(t, err)
	assert.Equal(t, objs, back)

	_, err = conv.ToGenericAll([]typegen.Object{springfield(), nil})
	assert.Error(t, err)
}

func TestConcurrentUse(t *testing.T) {
	conv := MustNew()
	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			inst, err := conv.ToGeneric(springfield())
			if err != nil {
				return err
			}
			obj, err := conv.Resolve(inst, citymodel.Model)
			if err != nil {
				return err
			}
			if !assert.ObjectsAreEqual(springfield(), obj) {
				return errors.New("round trip changed the object")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
