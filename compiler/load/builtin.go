package load

import (
	"github.com/syssam/typegen"
	"github.com/syssam/typegen/schema"
)

// XMLSchemaNamespace is the namespace of the predefined scalar types.
const XMLSchemaNamespace = "http://www.w3.org/2001/XMLSchema"

var builtinBindings = map[string]schema.Binding{
	"anySimpleType":      schema.BindingAny,
	"string":             schema.BindingString,
	"normalizedString":   schema.BindingString,
	"token":              schema.BindingString,
	"language":           schema.BindingString,
	"Name":               schema.BindingString,
	"NCName":             schema.BindingString,
	"ID":                 schema.BindingString,
	"IDREF":              schema.BindingString,
	"anyURI":             schema.BindingString,
	"QName":              schema.BindingString,
	"duration":           schema.BindingString,
	"boolean":            schema.BindingBoolean,
	"integer":            schema.BindingInteger,
	"int":                schema.BindingInteger,
	"long":               schema.BindingInteger,
	"short":              schema.BindingInteger,
	"byte":               schema.BindingInteger,
	"nonNegativeInteger": schema.BindingInteger,
	"positiveInteger":    schema.BindingInteger,
	"nonPositiveInteger": schema.BindingInteger,
	"negativeInteger":    schema.BindingInteger,
	"unsignedInt":        schema.BindingInteger,
	"unsignedShort":      schema.BindingInteger,
	"unsignedByte":       schema.BindingInteger,
	"double":             schema.BindingFloat,
	"float":              schema.BindingFloat,
	"decimal":            schema.BindingDecimal,
	"dateTime":           schema.BindingDateTime,
	"date":               schema.BindingDateTime,
	"time":               schema.BindingDateTime,
	"base64Binary":       schema.BindingBytes,
	"hexBinary":          schema.BindingBytes,
}

// builtinType returns a fresh definition of the predefined scalar type
// with the given local name.
func builtinType(local string) (*schema.Type, bool) {
	b, ok := builtinBindings[local]
	if !ok {
		return nil, false
	}
	return &schema.Type{
		Name:     typegen.Q(XMLSchemaNamespace, local),
		HasValue: true,
		Binding:  b,
	}, true
}
