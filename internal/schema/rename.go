package schema

import (
	"fmt"

	strutil "github.com/conduit-lang/schemaprof/internal/util/strings"
)

// RenameAttributes returns a copy of s in which every class attribute is
// renamed to snake_case, the convention code generators expect. An entry in
// overrides maps an original attribute name to the name to use instead.
// Schema-level slots are left alone. s itself is not modified.
func RenameAttributes(s *Schema, overrides map[string]string) (*Schema, error) {
	out := s.Clone()
	out.normalize()
	for name, c := range out.Classes.All() {
		renamed, err := RenameClassAttributes(c, overrides)
		if err != nil {
			return nil, err
		}
		out.Classes.Set(name, renamed)
	}
	return out, nil
}

// RenameClassAttributes returns a copy of c with its attributes renamed as
// RenameAttributes does. Two attributes that end up with the same name are
// an ErrRenameCollision.
func RenameClassAttributes(c *Class, overrides map[string]string) (*Class, error) {
	out := c.Clone()
	out.Attributes = NewOrderedMap[*Slot]()
	for name, attr := range c.Attributes.All() {
		newName, ok := overrides[name]
		if !ok {
			newName = strutil.ToSnakeCase(name)
		}
		if out.Attributes.Has(newName) {
			return nil, fmt.Errorf("%w: %s.%s and another attribute both become %q",
				ErrRenameCollision, c.Name, name, newName)
		}
		renamed := attr.Clone()
		renamed.Name = newName
		out.Attributes.Set(newName, renamed)
	}
	return out, nil
}
