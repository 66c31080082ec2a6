package schema

import (
	"fmt"
	"slices"
)

// DefaultPrefixName is the prefix generated schemas use for their own namespace
const DefaultPrefixName = "this"

// Builder accumulates classes, slots, types and enums into a new schema.
// Adding a name that is already present is a no-op, which makes the
// builder's membership checks usable as a traversal's visited set.
type Builder struct {
	schema *Schema
}

// NewBuilder creates a builder for a schema with the given id and name. The
// schema starts with the default prefixes, imports linkml:types and uses
// string as its default range.
func NewBuilder(id, name string) *Builder {
	s := New(id, name)
	s.DefaultRange = TypeString
	s.Imports = []string{LinkMLTypesImport}
	for _, p := range DefaultPrefixes {
		s.Prefixes.Set(p.Name, p.URI)
	}
	return &Builder{schema: s}
}

// SetHeader copies the descriptive metadata of src (title, description,
// version, license) and its default range when it declares one.
func (b *Builder) SetHeader(src *Schema) {
	b.schema.Title = src.Title
	b.schema.Description = src.Description
	b.schema.Version = src.Version
	b.schema.License = src.License
	if src.DefaultRange != "" {
		b.schema.DefaultRange = src.DefaultRange
	}
}

// SetDefaultPrefix sets the default prefix, binding it to the schema id
// when the prefix is not yet declared.
func (b *Builder) SetDefaultPrefix(name string) {
	b.schema.DefaultPrefix = name
	if !b.schema.Prefixes.Has(name) && b.schema.ID != "" {
		b.schema.Prefixes.Set(name, Prefix(b.schema.ID))
	}
}

// AddPrefix declares a prefix. Redeclaring a prefix with the same URI is a
// no-op; a different URI is rejected and the existing binding is kept.
func (b *Builder) AddPrefix(name string, uri Prefix) error {
	existing, ok := b.schema.Prefixes.Get(name)
	if !ok {
		b.schema.Prefixes.Set(name, uri)
		return nil
	}
	if existing != uri {
		return fmt.Errorf("%w: %s is bound to %s, not %s", ErrPrefixConflict, name, existing, uri)
	}
	return nil
}

// AddSubset adds a copy of the subset unless one with that name exists
func (b *Builder) AddSubset(sub *Subset) bool {
	if b.schema.Subsets.Has(sub.Name) {
		return false
	}
	b.schema.Subsets.Set(sub.Name, sub.Clone())
	return true
}

// AddClass adds a copy of the class unless one with that name exists
func (b *Builder) AddClass(c *Class) bool {
	if b.schema.Classes.Has(c.Name) {
		return false
	}
	cp := c.Clone()
	cp.normalize()
	b.schema.Classes.Set(c.Name, cp)
	return true
}

// AddSlot adds a copy of the slot unless one with that name exists
func (b *Builder) AddSlot(s *Slot) bool {
	if b.schema.Slots.Has(s.Name) {
		return false
	}
	b.schema.Slots.Set(s.Name, s.Clone())
	return true
}

// AddType adds a copy of the type unless one with that name exists
func (b *Builder) AddType(t *Type) bool {
	if b.schema.Types.Has(t.Name) {
		return false
	}
	b.schema.Types.Set(t.Name, t.Clone())
	return true
}

// AddEnum adds a copy of the enum unless one with that name exists
func (b *Builder) AddEnum(e *Enum) bool {
	if b.schema.Enums.Has(e.Name) {
		return false
	}
	cp := e.Clone()
	cp.normalize()
	b.schema.Enums.Set(e.Name, cp)
	return true
}

func (b *Builder) HasClass(name string) bool { return b.schema.Classes.Has(name) }
func (b *Builder) HasSlot(name string) bool  { return b.schema.Slots.Has(name) }
func (b *Builder) HasType(name string) bool  { return b.schema.Types.Has(name) }
func (b *Builder) HasEnum(name string) bool  { return b.schema.Enums.Has(name) }

// Has reports whether any category holds the name
func (b *Builder) Has(name string) bool {
	return b.HasClass(name) || b.HasType(name) || b.HasEnum(name) || b.HasSlot(name)
}

// Stats holds element counts of a schema
type Stats struct {
	Classes int
	Slots   int
	Types   int
	Enums   int
}

// String returns a one-line summary of the counts
func (s Stats) String() string {
	return fmt.Sprintf("%d classes, %d slots, %d types, %d enums", s.Classes, s.Slots, s.Types, s.Enums)
}

// StatsOf counts the elements of a schema
func StatsOf(s *Schema) Stats {
	return Stats{
		Classes: s.Classes.Len(),
		Slots:   s.Slots.Len(),
		Types:   s.Types.Len(),
		Enums:   s.Enums.Len(),
	}
}

// Stats returns the counts accumulated so far
func (b *Builder) Stats() Stats { return StatsOf(b.schema) }

// Schema returns a copy of the accumulated schema. When order is non-nil,
// every category is sorted by the declaration order of the same names in
// order; names order does not know follow in insertion order. Output built
// this way depends only on what was added, not on the order of additions.
func (b *Builder) Schema(order *Schema) *Schema {
	out := b.schema.Clone()
	if order == nil {
		return out
	}
	out.Subsets = reorder(out.Subsets, order.Subsets.Keys())
	out.Types = reorder(out.Types, order.Types.Keys())
	out.Enums = reorder(out.Enums, order.Enums.Keys())
	out.Slots = reorder(out.Slots, order.Slots.Keys())
	out.Classes = reorder(out.Classes, order.Classes.Keys())
	return out
}

func reorder[V any](m *OrderedMap[V], reference []string) *OrderedMap[V] {
	rank := make(map[string]int, len(reference))
	for i, name := range reference {
		rank[name] = i
	}
	keys := m.Keys()
	slices.SortStableFunc(keys, func(a, b string) int {
		ra, okA := rank[a]
		rb, okB := rank[b]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
	out := NewOrderedMap[V]()
	for _, k := range keys {
		v, _ := m.Get(k)
		out.Set(k, v)
	}
	return out
}
