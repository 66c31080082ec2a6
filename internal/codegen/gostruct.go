package codegen

import (
	"fmt"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/conduit-lang/schemaprof/internal/schema"
	strutil "github.com/conduit-lang/schemaprof/internal/util/strings"
)

// GoStructs renders a Go file declaring one struct per class of the schema
// and a string type with constants per enum. A class embeds its parent,
// optional scalars become pointers and multivalued slots become slices.
// Class-valued slots hold the referenced struct when inlined and the
// referenced identifier otherwise.
func GoStructs(view *schema.View, pkg string) (*jen.File, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment(fmt.Sprintf("Code generated by schemaprof from %s. DO NOT EDIT.", view.Name()))

	for _, name := range view.EnumNames() {
		e, _ := view.Enum(name)
		genEnum(f, e)
	}

	for _, name := range view.ClassNames() {
		c, _ := view.Class(name)
		if err := genStruct(f, view, c); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func genEnum(f *jen.File, e *schema.Enum) {
	typeName := GoIdentifier(e.Name)
	if e.Description != "" {
		f.Comment(fmt.Sprintf("%s %s", typeName, strutil.CollapseWhitespace(e.Description)))
	}
	f.Type().Id(typeName).String()

	var defs []jen.Code
	for _, pv := range e.PermissibleValues.All() {
		defs = append(defs, jen.Id(typeName+GoIdentifier(pv.Text)).Id(typeName).Op("=").Lit(pv.Text))
	}
	if len(defs) > 0 {
		f.Const().Defs(defs...)
	}
}

func genStruct(f *jen.File, view *schema.View, c *schema.Class) error {
	typeName := GoIdentifier(c.Name)
	if c.Description != "" {
		f.Comment(fmt.Sprintf("%s %s", typeName, strutil.CollapseWhitespace(c.Description)))
	}

	fields, err := ownFields(view, c)
	if err != nil {
		return err
	}

	var genErr error
	f.Type().Id(typeName).StructFunc(func(group *jen.Group) {
		if c.IsA != "" {
			group.Id(GoIdentifier(c.IsA))
		}
		for _, field := range fields {
			fieldType, err := goType(view, field)
			if err != nil {
				genErr = fmt.Errorf("class %s, slot %s: %w", c.Name, field.Name, err)
				return
			}
			tag := field.Name
			if !field.Required && !field.Identifier {
				tag += ",omitempty"
			}
			group.Id(GoIdentifier(field.Name)).Add(fieldType).Tag(map[string]string{
				"json": tag,
				"yaml": tag,
			})
		}
	})
	return genErr
}

// ownFields returns the slots a class declares itself: referenced schema
// slots first, then attributes. Inherited slots come from the embedded parent.
func ownFields(view *schema.View, c *schema.Class) ([]*schema.Slot, error) {
	var fields []*schema.Slot
	for _, name := range c.Slots {
		slot, ok := view.Slot(name)
		if !ok {
			return nil, &schema.InvalidReferenceError{Element: c.Name, Ref: schema.RefSlot, Target: name}
		}
		fields = append(fields, slot)
	}
	for _, attr := range c.Attributes.All() {
		fields = append(fields, attr)
	}
	return fields, nil
}

// goType returns the Go type of a slot's values
func goType(view *schema.View, slot *schema.Slot) (*jen.Statement, error) {
	rng := view.RangeOf(slot)

	var elem *jen.Statement
	scalar := true
	switch {
	case view.IsClass(rng):
		if view.IsInlined(slot) {
			elem = jen.Id(GoIdentifier(rng))
			scalar = false
		} else {
			elem = jen.String()
		}
	case view.IsEnum(rng):
		elem = jen.Id(GoIdentifier(rng))
	default:
		prim, ok := view.PrimitiveOf(rng)
		if !ok {
			return nil, fmt.Errorf("range %q does not resolve to a type", rng)
		}
		elem = goPrimitive(prim)
	}

	switch {
	case slot.Multivalued:
		return jen.Index().Add(elem), nil
	case !scalar:
		return jen.Op("*").Add(elem), nil
	case !slot.Required && !slot.Identifier:
		return jen.Op("*").Add(elem), nil
	default:
		return elem, nil
	}
}

func goPrimitive(prim string) *jen.Statement {
	switch prim {
	case schema.TypeInteger:
		return jen.Int64()
	case schema.TypeFloat, schema.TypeDouble, schema.TypeDecimal:
		return jen.Float64()
	case schema.TypeBoolean:
		return jen.Bool()
	case schema.TypeDatetime:
		return jen.Qual("time", "Time")
	default:
		return jen.String()
	}
}

// GoIdentifier converts a schema name to an exported Go identifier
func GoIdentifier(name string) string {
	var cleaned []rune
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			cleaned = append(cleaned, r)
		default:
			cleaned = append(cleaned, '_')
		}
	}
	ident := strutil.ToPascal(string(cleaned))
	if ident == "" {
		return "X"
	}
	if unicode.IsDigit([]rune(ident)[0]) {
		ident = "X" + ident
	}
	return ident
}
