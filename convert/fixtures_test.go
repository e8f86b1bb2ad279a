package convert

import "github.com/syssam/typegen"

// The city types come from the generated internal/citymodel package.
// Measure and Length cover a value type extended with a property, which
// the city schema has no use for.

const (
	cityNS = "urn:example:city"
	gmlNS  = "http://www.opengis.net/gml/3.2"
)

// Measure is a value type extended by Length, which adds a property.
type Measure struct {
	Value float64
}

var classMeasure = &typegen.Class{
	Name: typegen.QName{Local: "Measure", Namespace: cityNS},
	New:  func() typegen.Object { return &Measure{} },
}

func (*Measure) Class() *typegen.Class { return classMeasure }

type Length struct {
	Measure
	Uom string
}

var classLength = &typegen.Class{
	Name: typegen.QName{Local: "Length", Namespace: cityNS},
	New:  func() typegen.Object { return &Length{} },
}

func (*Length) Class() *typegen.Class { return classLength }

func (m *Length) Super() typegen.Object { return &m.Measure }

func init() {
	classMeasure.Fields = []*typegen.Field{
		{
			Name:         "Value",
			Role:         typegen.RoleValue,
			Multiplicity: typegen.Single,
			Get:          func(o typegen.Object) []any { return typegen.One(o.(*Measure).Value) },
			Add:          func(o typegen.Object, v any) error { return typegen.Set(&o.(*Measure).Value, v) },
		},
	}

	classLength.Super = classMeasure
	classLength.Fields = []*typegen.Field{
		{
			Name:         "Uom",
			QName:        typegen.QName{Local: "uom", Namespace: cityNS},
			Role:         typegen.RoleProperty,
			Multiplicity: typegen.Single,
			Get:          func(o typegen.Object) []any { return typegen.One(o.(*Length).Uom) },
			Add:          func(o typegen.Object, v any) error { return typegen.Set(&o.(*Length).Uom, v) },
		},
	}
}

var units = typegen.MustRegistry(classMeasure, classLength)
