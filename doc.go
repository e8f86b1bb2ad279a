// Package typegen is the runtime shared by generated model packages and
// the converter in package convert.
//
// Every generated struct implements [Object]: its Class method returns a
// [Class] describing the struct's fields. The metadata carries, for each
// field, the schema name it maps to, its [Role], its [Multiplicity], and
// accessors reading and writing the field without reflection. Structs
// generated for a subtype embed the struct of their supertype and also
// implement [Extender].
//
// A generated package exposes a [Registry] as its Model variable, mapping
// schema type names to classes:
//
//	class, err := model.Model.Lookup(typegen.Q("urn:example", "City"))
//	if err != nil {
//		return err // typegen.IsUnregisteredType(err)
//	}
//	city := class.New()
package typegen
