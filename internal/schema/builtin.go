package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LinkMLTypesImport is the import that provides the builtin types
const LinkMLTypesImport = "linkml:types"

// Builtin type names
const (
	TypeString           = "string"
	TypeInteger          = "integer"
	TypeBoolean          = "boolean"
	TypeFloat            = "float"
	TypeDouble           = "double"
	TypeDecimal          = "decimal"
	TypeDate             = "date"
	TypeDatetime         = "datetime"
	TypeTime             = "time"
	TypeURI              = "uri"
	TypeURIOrCURIE       = "uriorcurie"
	TypeCURIE            = "curie"
	TypeNCName           = "ncname"
	TypeObjectIdentifier = "objectidentifier"
	TypeNodeIdentifier   = "nodeidentifier"
	TypeJSONPointer      = "jsonpointer"
	TypeJSONPath         = "jsonpath"
	TypeSparqlPath       = "sparqlpath"
)

// builtinTypes stands in for the linkml:types import: these names always
// resolve even when a schema does not define them.
var builtinTypes = []*Type{
	{Name: TypeString, Base: "str", URI: "xsd:string", Description: "A character string"},
	{Name: TypeInteger, Base: "int", URI: "xsd:integer", Description: "An integer"},
	{Name: TypeBoolean, Base: "Bool", URI: "xsd:boolean", Description: "A binary (true or false) value"},
	{Name: TypeFloat, Base: "float", URI: "xsd:float", Description: "A real number that conforms to the xsd:float specification"},
	{Name: TypeDouble, Base: "float", URI: "xsd:double", Description: "A real number that conforms to the xsd:double specification"},
	{Name: TypeDecimal, Base: "Decimal", URI: "xsd:decimal", Description: "A real number with arbitrary precision"},
	{Name: TypeDate, Base: "XSDDate", URI: "xsd:date", Description: "a date (year, month and day) in an idealized calendar"},
	{Name: TypeDatetime, Base: "XSDDateTime", URI: "xsd:dateTime", Description: "The combination of a date and time"},
	{Name: TypeTime, Base: "XSDTime", URI: "xsd:time", Description: "A time object represents a (local) time of day"},
	{Name: TypeURI, Base: "URI", URI: "xsd:anyURI", Description: "a complete URI"},
	{Name: TypeURIOrCURIE, Base: "URIorCURIE", URI: "xsd:anyURI", Description: "a URI or a CURIE"},
	{Name: TypeCURIE, Base: "Curie", URI: "xsd:string", Description: "a compact URI"},
	{Name: TypeNCName, Base: "NCName", URI: "xsd:string", Description: "Prefix part of CURIE"},
	{Name: TypeObjectIdentifier, Base: "ElementIdentifier", URI: "shex:iri", Description: "A URI or CURIE that represents an object in the model."},
	{Name: TypeNodeIdentifier, Base: "NodeIdentifier", URI: "shex:nonLiteral", Description: "A URI, CURIE or BNODE that represents a node in a model."},
	{Name: TypeJSONPointer, Base: "str", URI: "xsd:string", Description: "A string encoding a JSON Pointer"},
	{Name: TypeJSONPath, Base: "str", URI: "xsd:string", Description: "A string encoding a JSON Path"},
	{Name: TypeSparqlPath, Base: "str", URI: "xsd:string", Description: "A string encoding a SPARQL Property Path"},
}

var builtinIndex = func() map[string]*Type {
	index := make(map[string]*Type, len(builtinTypes))
	for _, t := range builtinTypes {
		index[t.Name] = t
	}
	return index
}()

// baseToBuiltin maps the implementation base of a type to the builtin it
// behaves like, for local types declared with `base` instead of `typeof`.
var baseToBuiltin = map[string]string{
	"str":               TypeString,
	"int":               TypeInteger,
	"Bool":              TypeBoolean,
	"bool":              TypeBoolean,
	"float":             TypeFloat,
	"Decimal":           TypeDecimal,
	"XSDDate":           TypeDate,
	"XSDDateTime":       TypeDatetime,
	"XSDTime":           TypeTime,
	"URI":               TypeURI,
	"URIorCURIE":        TypeURIOrCURIE,
	"Curie":             TypeCURIE,
	"NCName":            TypeNCName,
	"ElementIdentifier": TypeObjectIdentifier,
	"NodeIdentifier":    TypeNodeIdentifier,
}

// IsBuiltinType reports whether name is one of the linkml:types builtins
func IsBuiltinType(name string) bool {
	_, ok := builtinIndex[name]
	return ok
}

// BuiltinType returns a copy of the named builtin type
func BuiltinType(name string) (*Type, bool) {
	t, ok := builtinIndex[name]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// DefaultPrefixes are the prefixes every generated schema declares
var DefaultPrefixes = []struct {
	Name string
	URI  Prefix
}{
	{"linkml", "https://w3id.org/linkml/"},
	{"xsd", "http://www.w3.org/2001/XMLSchema#"},
	{"dct", "http://purl.org/dc/terms/"},
	{"owl", "http://www.w3.org/2002/07/owl#"},
	{"dcat", "http://www.w3.org/ns/dcat#"},
}

// UnmarshalYAML accepts both the short form (`ex: https://...`) and the
// expanded form (`ex: {prefix_prefix: ex, prefix_reference: https://...}`).
func (p *Prefix) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*p = Prefix(node.Value)
		return nil
	case yaml.MappingNode:
		var expanded struct {
			Reference string `yaml:"prefix_reference"`
		}
		if err := node.Decode(&expanded); err != nil {
			return err
		}
		*p = Prefix(expanded.Reference)
		return nil
	default:
		return fmt.Errorf("line %d: prefix must be a string or a mapping", node.Line)
	}
}

// SentinelTypeName names the placeholder type the profiler substitutes for
// pruned class ranges. Schemas must not define it for anything else.
const SentinelTypeName = "replaced_by_profiler"

// SentinelType returns the placeholder type for pruned ranges
func SentinelType() *Type {
	return &Type{
		Name:        SentinelTypeName,
		Base:        "str",
		URI:         "xsd:string",
		Description: "Range was replaced by the profiler",
	}
}

// IsSentinelType reports whether t is equivalent to the placeholder type,
// as is the case in schemas the profiler produced.
func IsSentinelType(t *Type) bool {
	want := SentinelType()
	return t.Name == want.Name && t.Base == want.Base && t.URI == want.URI && t.TypeOf == ""
}
