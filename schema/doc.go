// Package schema holds the type graph that code generation starts from.
//
// A schema is a set of [Type] definitions. Each type has a qualified name,
// an optional supertype, and an ordered list of declared children. A child
// is either a [Property], which names a value of some other type, or a
// [Group], which nests further children as a sequence or a choice:
//
//	city := &schema.Type{
//		Name:            typegen.Q("urn:example", "City"),
//		MappingRelevant: true,
//		Children: []schema.Child{
//			&schema.Property{Name: typegen.Q("urn:example", "name"), Type: xsString, Cardinality: schema.Exactly(1)},
//			&schema.Property{Name: typegen.Q("urn:example", "tags"), Type: xsString, Cardinality: schema.Many(0)},
//		},
//	}
//
// Types carrying a scalar value set HasValue. A type that carries a value
// and declares no children is a value type; its Binding names the scalar
// it holds.
//
// Definitions are read-only once handed to the compiler.
package schema
