package schema

import "slices"

// Clone returns a deep copy of the schema; the copy shares no mutable
// structure with the original.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Imports = slices.Clone(s.Imports)
	out.Prefixes = s.Prefixes.Clone(nil)
	out.Subsets = s.Subsets.Clone((*Subset).Clone)
	out.Types = s.Types.Clone((*Type).Clone)
	out.Enums = s.Enums.Clone((*Enum).Clone)
	out.Slots = s.Slots.Clone((*Slot).Clone)
	out.Classes = s.Classes.Clone((*Class).Clone)
	return &out
}

// Clone returns a deep copy of the class
func (c *Class) Clone() *Class {
	if c == nil {
		return nil
	}
	out := *c
	out.InSubset = slices.Clone(c.InSubset)
	out.Slots = slices.Clone(c.Slots)
	out.Attributes = c.Attributes.Clone((*Slot).Clone)
	return &out
}

// Clone returns a deep copy of the slot
func (s *Slot) Clone() *Slot {
	if s == nil {
		return nil
	}
	out := *s
	out.Inlined = cloneBool(s.Inlined)
	out.InlinedAsList = cloneBool(s.InlinedAsList)
	out.InSubset = slices.Clone(s.InSubset)
	out.Aliases = slices.Clone(s.Aliases)
	return &out
}

// Clone returns a copy of the type
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

// Clone returns a deep copy of the enum
func (e *Enum) Clone() *Enum {
	if e == nil {
		return nil
	}
	out := *e
	out.PermissibleValues = e.PermissibleValues.Clone(func(pv *PermissibleValue) *PermissibleValue {
		if pv == nil {
			return nil
		}
		cp := *pv
		return &cp
	})
	return &out
}

// Clone returns a copy of the subset
func (s *Subset) Clone() *Subset {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// Bool returns a pointer to b, for the optional flags of a Slot
func Bool(b bool) *bool { return &b }
