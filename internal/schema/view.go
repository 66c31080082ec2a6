package schema

import (
	"fmt"
	"slices"
	"strings"
)

// View answers the lookups the profiling algorithms need over one schema:
// element resolution, inheritance queries, attribute induction and
// identifier/inlining rules.
//
// A View owns a private copy of the schema. Every element it hands out is a
// copy as well, so callers may modify what they receive.
type View struct {
	schema   *Schema
	children map[string][]string
}

// NewView creates a view over a copy of s.
//
// It rejects schemas whose lookups would be ambiguous: class, type and enum
// names must be disjoint, and is_a chains must not loop. Slot names may
// reuse other names since slots are never range targets.
func NewView(s *Schema) (*View, error) {
	if s == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}
	v := &View{
		schema:   s.Clone(),
		children: make(map[string][]string),
	}
	v.schema.normalize()

	if err := v.checkCollisions(); err != nil {
		return nil, err
	}
	if err := v.checkInheritance(); err != nil {
		return nil, err
	}

	for name, c := range v.schema.Classes.All() {
		if c.IsA != "" {
			v.children[c.IsA] = append(v.children[c.IsA], name)
		}
	}
	return v, nil
}

func (v *View) checkCollisions() error {
	for name := range v.schema.Classes.All() {
		var kinds []ElementKind
		if v.schema.Types.Has(name) {
			kinds = append(kinds, KindType)
		}
		if v.schema.Enums.Has(name) {
			kinds = append(kinds, KindEnum)
		}
		if len(kinds) > 0 {
			return &CollisionError{Name: name, Kinds: append([]ElementKind{KindClass}, kinds...)}
		}
	}
	for name := range v.schema.Types.All() {
		if v.schema.Enums.Has(name) {
			return &CollisionError{Name: name, Kinds: []ElementKind{KindType, KindEnum}}
		}
	}
	return nil
}

func (v *View) checkInheritance() error {
	for name := range v.schema.Classes.All() {
		seen := map[string]bool{name: true}
		path := []string{name}
		current := name
		for {
			c, ok := v.schema.Classes.Get(current)
			if !ok || c.IsA == "" {
				break
			}
			if seen[c.IsA] {
				return fmt.Errorf("%w: %s -> %s", ErrInheritanceCycle, strings.Join(path, " -> "), c.IsA)
			}
			seen[c.IsA] = true
			path = append(path, c.IsA)
			current = c.IsA
		}
	}
	return nil
}

// Schema returns a copy of the underlying schema
func (v *View) Schema() *Schema { return v.schema.Clone() }

// ID returns the schema identifier
func (v *View) ID() string { return v.schema.ID }

// Name returns the schema name
func (v *View) Name() string { return v.schema.Name }

// Version returns the schema version
func (v *View) Version() string { return v.schema.Version }

// DefaultRange returns the range used by slots that declare none
func (v *View) DefaultRange() string {
	if v.schema.DefaultRange != "" {
		return v.schema.DefaultRange
	}
	return TypeString
}

// Element resolves name across namespaces in the order class, type, enum,
// slot. It returns nil when nothing matches.
func (v *View) Element(name string) Element {
	if c, ok := v.Class(name); ok {
		return c
	}
	if t, ok := v.Type(name); ok {
		return t
	}
	if e, ok := v.Enum(name); ok {
		return e
	}
	if s, ok := v.Slot(name); ok {
		return s
	}
	return nil
}

// Class returns a copy of the named class
func (v *View) Class(name string) (*Class, bool) {
	c, ok := v.schema.Classes.Get(name)
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Slot returns a copy of the named schema-level slot
func (v *View) Slot(name string) (*Slot, bool) {
	s, ok := v.schema.Slots.Get(name)
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Type returns a copy of the named type; builtin types resolve unless the
// schema redefines them.
func (v *View) Type(name string) (*Type, bool) {
	if t, ok := v.schema.Types.Get(name); ok {
		return t.Clone(), true
	}
	return BuiltinType(name)
}

// Enum returns a copy of the named enum
func (v *View) Enum(name string) (*Enum, bool) {
	e, ok := v.schema.Enums.Get(name)
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Subset returns a copy of the named subset
func (v *View) Subset(name string) (*Subset, bool) {
	sub, ok := v.schema.Subsets.Get(name)
	if !ok {
		return nil, false
	}
	return sub.Clone(), true
}

// IsClass reports whether name is a class
func (v *View) IsClass(name string) bool { return v.schema.Classes.Has(name) }

// IsEnum reports whether name is an enum
func (v *View) IsEnum(name string) bool { return v.schema.Enums.Has(name) }

// IsType reports whether name is a type, builtin or local
func (v *View) IsType(name string) bool {
	return v.schema.Types.Has(name) || IsBuiltinType(name)
}

// IsLocalType reports whether the schema itself defines the type
func (v *View) IsLocalType(name string) bool { return v.schema.Types.Has(name) }

// Resolves reports whether name is a valid range (class, type or enum)
func (v *View) Resolves(name string) bool {
	return v.IsClass(name) || v.IsType(name) || v.IsEnum(name)
}

// ClassNames returns all class names in declaration order
func (v *View) ClassNames() []string { return v.schema.Classes.Keys() }

// SlotNames returns all schema-level slot names in declaration order
func (v *View) SlotNames() []string { return v.schema.Slots.Keys() }

// TypeNames returns the locally defined type names in declaration order
func (v *View) TypeNames() []string { return v.schema.Types.Keys() }

// EnumNames returns all enum names in declaration order
func (v *View) EnumNames() []string { return v.schema.Enums.Keys() }

// Parent returns the is_a parent of a class, or "" for a root class
func (v *View) Parent(name string) string {
	c, ok := v.schema.Classes.Get(name)
	if !ok {
		return ""
	}
	return c.IsA
}

// Ancestors returns the class itself followed by its is_a chain, nearest
// first. Unknown parents end the chain. An unknown class has no ancestors.
func (v *View) Ancestors(name string) []string {
	if !v.IsClass(name) {
		return nil
	}
	chain := []string{name}
	current := name
	for {
		parent := v.Parent(current)
		if parent == "" || !v.IsClass(parent) {
			return chain
		}
		chain = append(chain, parent)
		current = parent
	}
}

// Children returns the direct subclasses of a class in declaration order
func (v *View) Children(name string) []string {
	return slices.Clone(v.children[name])
}

// Descendants returns all subclasses of a class, breadth first
func (v *View) Descendants(name string) []string {
	var result []string
	queue := v.Children(name)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)
		queue = append(queue, v.children[current]...)
	}
	return result
}

// Leaves returns the classes without subclasses, in declaration order
func (v *View) Leaves() []string {
	var leaves []string
	for name := range v.schema.Classes.All() {
		if len(v.children[name]) == 0 {
			leaves = append(leaves, name)
		}
	}
	return leaves
}

// RangeOf returns the effective range of a slot
func (v *View) RangeOf(s *Slot) string {
	if s.Range != "" {
		return s.Range
	}
	return v.DefaultRange()
}

// InducedClass returns a copy of the class with every inherited slot and
// attribute merged into Attributes, root ancestor first. A more specific
// definition of an attribute refines the inherited one in place. Slots is
// cleared since the schema-level slots have been folded into Attributes.
func (v *View) InducedClass(name string) (*Class, error) {
	c, ok := v.schema.Classes.Get(name)
	if !ok {
		return nil, &NotFoundError{Kind: KindClass, Name: name}
	}
	if c.IsA != "" && !v.IsClass(c.IsA) {
		return nil, &InvalidReferenceError{Element: name, Ref: RefIsA, Target: c.IsA}
	}

	induced := c.Clone()
	induced.Slots = nil
	induced.Attributes = NewOrderedMap[*Slot]()

	chain := v.Ancestors(name)
	for i := len(chain) - 1; i >= 0; i-- {
		ancestor, _ := v.schema.Classes.Get(chain[i])
		for _, slotName := range ancestor.Slots {
			slot, ok := v.schema.Slots.Get(slotName)
			if !ok {
				return nil, &InvalidReferenceError{Element: ancestor.Name, Ref: RefSlot, Target: slotName}
			}
			mergeAttribute(induced.Attributes, slot.Clone())
		}
		for _, attr := range ancestor.Attributes.All() {
			mergeAttribute(induced.Attributes, attr.Clone())
		}
	}
	return induced, nil
}

func mergeAttribute(attrs *OrderedMap[*Slot], attr *Slot) {
	existing, ok := attrs.Get(attr.Name)
	if !ok {
		attrs.Set(attr.Name, attr)
		return
	}
	existing.refine(attr)
}

// refine overlays the set fields of a more specific definition. Flags only
// ever tighten: a subclass cannot make an inherited required slot optional.
func (s *Slot) refine(o *Slot) {
	if o.Description != "" {
		s.Description = o.Description
	}
	if o.Range != "" {
		s.Range = o.Range
	}
	if o.SlotURI != "" {
		s.SlotURI = o.SlotURI
	}
	s.Required = s.Required || o.Required
	s.Multivalued = s.Multivalued || o.Multivalued
	s.Identifier = s.Identifier || o.Identifier
	if o.Inlined != nil {
		s.Inlined = cloneBool(o.Inlined)
	}
	if o.InlinedAsList != nil {
		s.InlinedAsList = cloneBool(o.InlinedAsList)
	}
	if len(o.InSubset) > 0 {
		s.InSubset = slices.Clone(o.InSubset)
	}
	if len(o.Aliases) > 0 {
		s.Aliases = slices.Clone(o.Aliases)
	}
}

// IdentifierSlot returns the identifier slot of a class, inherited or local
func (v *View) IdentifierSlot(class string) (*Slot, bool) {
	induced, err := v.InducedClass(class)
	if err != nil {
		return nil, false
	}
	for _, attr := range induced.Attributes.All() {
		if attr.Identifier {
			return attr, true
		}
	}
	return nil, false
}

// IsInlined reports whether a class-valued slot embeds its referent rather
// than referring to it by identifier. An explicit inlined or
// inlined_as_list wins; otherwise classes without an identifier are inlined.
func (v *View) IsInlined(s *Slot) bool {
	rng := v.RangeOf(s)
	if !v.IsClass(rng) {
		return false
	}
	if s.Inlined != nil {
		return *s.Inlined
	}
	if s.InlinedAsList != nil {
		return *s.InlinedAsList
	}
	_, hasID := v.IdentifierSlot(rng)
	return !hasID
}

// PrimitiveOf follows typeof links from a type down to the builtin it
// derives from. Local types declared only with `base` map through their base.
func (v *View) PrimitiveOf(typeName string) (string, bool) {
	seen := make(map[string]bool)
	current := typeName
	for !seen[current] {
		seen[current] = true
		local, ok := v.schema.Types.Get(current)
		if !ok {
			if IsBuiltinType(current) {
				return current, true
			}
			return "", false
		}
		if local.TypeOf != "" {
			current = local.TypeOf
			continue
		}
		if IsBuiltinType(current) {
			return current, true
		}
		if builtin, ok := baseToBuiltin[local.Base]; ok {
			return builtin, true
		}
		return TypeString, true
	}
	return "", false
}

// ExpandCURIE expands a CURIE using the schema prefixes. Strings that are
// already absolute URIs or have an unknown prefix are returned unchanged.
func (v *View) ExpandCURIE(curie string) string {
	if strings.Contains(curie, "://") {
		return curie
	}
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok {
		return curie
	}
	if ns, ok := v.schema.Prefixes.Get(prefix); ok {
		return string(ns) + local
	}
	for _, p := range DefaultPrefixes {
		if p.Name == prefix {
			return string(p.URI) + local
		}
	}
	return curie
}
