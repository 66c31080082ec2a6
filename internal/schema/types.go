// Package schema provides the schema model consumed by the profiling tools:
// classes, slots, types and enums keyed by name, their YAML/JSON text form,
// a read-only query view, a builder for new schemas, and the merge, rename
// and lint passes that operate on whole schemas.
package schema

// ElementKind identifies which namespace an element lives in
type ElementKind int

const (
	KindClass ElementKind = iota
	KindSlot
	KindType
	KindEnum
)

// String returns the string representation of the element kind
func (k ElementKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindSlot:
		return "slot"
	case KindType:
		return "type"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Element is the closed set of named schema elements: *Class, *Slot, *Type
// and *Enum. Callers dispatch with a type switch.
type Element interface {
	ElementName() string
	Kind() ElementKind
	element()
}

// Schema represents a complete schema document
type Schema struct {
	ID            string                   `yaml:"id" json:"id"`
	Name          string                   `yaml:"name" json:"name"`
	Title         string                   `yaml:"title,omitempty" json:"title,omitempty"`
	Description   string                   `yaml:"description,omitempty" json:"description,omitempty"`
	Version       string                   `yaml:"version,omitempty" json:"version,omitempty"`
	License       string                   `yaml:"license,omitempty" json:"license,omitempty"`
	Prefixes      *OrderedMap[Prefix]      `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`
	DefaultPrefix string                   `yaml:"default_prefix,omitempty" json:"default_prefix,omitempty"`
	DefaultRange  string                   `yaml:"default_range,omitempty" json:"default_range,omitempty"`
	Imports       []string                 `yaml:"imports,omitempty" json:"imports,omitempty"`
	Subsets       *OrderedMap[*Subset]     `yaml:"subsets,omitempty" json:"subsets,omitempty"`
	Types         *OrderedMap[*Type]       `yaml:"types,omitempty" json:"types,omitempty"`
	Enums         *OrderedMap[*Enum]       `yaml:"enums,omitempty" json:"enums,omitempty"`
	Slots         *OrderedMap[*Slot]       `yaml:"slots,omitempty" json:"slots,omitempty"`
	Classes       *OrderedMap[*Class]      `yaml:"classes,omitempty" json:"classes,omitempty"`
}

// New creates an empty schema with all namespaces initialised
func New(id, name string) *Schema {
	s := &Schema{ID: id, Name: name}
	s.normalize()
	return s
}

// Prefix is a namespace URI bound to a CURIE prefix
type Prefix string

// Subset represents a named subset that elements can declare membership of
type Subset struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Class represents a record-like schema element with single inheritance
type Class struct {
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	IsA         string             `yaml:"is_a,omitempty" json:"is_a,omitempty"`
	Abstract    bool               `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	ClassURI    string             `yaml:"class_uri,omitempty" json:"class_uri,omitempty"`
	InSubset    []string           `yaml:"in_subset,omitempty" json:"in_subset,omitempty"`
	Slots       []string           `yaml:"slots,omitempty" json:"slots,omitempty"`
	Attributes  *OrderedMap[*Slot] `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// Slot represents a typed field: either a schema-level slot or a class
// attribute. Range names a Type, Enum or Class.
type Slot struct {
	Name          string   `yaml:"name" json:"name"`
	Description   string   `yaml:"description,omitempty" json:"description,omitempty"`
	Range         string   `yaml:"range,omitempty" json:"range,omitempty"`
	Required      bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Multivalued   bool     `yaml:"multivalued,omitempty" json:"multivalued,omitempty"`
	Identifier    bool     `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	SlotURI       string   `yaml:"slot_uri,omitempty" json:"slot_uri,omitempty"`
	Inlined       *bool    `yaml:"inlined,omitempty" json:"inlined,omitempty"`
	InlinedAsList *bool    `yaml:"inlined_as_list,omitempty" json:"inlined_as_list,omitempty"`
	InSubset      []string `yaml:"in_subset,omitempty" json:"in_subset,omitempty"`
	Aliases       []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// Type represents a named value type, ultimately derived from a primitive
type Type struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	TypeOf      string `yaml:"typeof,omitempty" json:"typeof,omitempty"`
	Base        string `yaml:"base,omitempty" json:"base,omitempty"`
	URI         string `yaml:"uri,omitempty" json:"uri,omitempty"`
	Repr        string `yaml:"repr,omitempty" json:"repr,omitempty"`
}

// Enum represents a closed set of permissible values
type Enum struct {
	Name              string                         `yaml:"name" json:"name"`
	Description       string                         `yaml:"description,omitempty" json:"description,omitempty"`
	EnumURI           string                         `yaml:"enum_uri,omitempty" json:"enum_uri,omitempty"`
	PermissibleValues *OrderedMap[*PermissibleValue] `yaml:"permissible_values,omitempty" json:"permissible_values,omitempty"`
}

// PermissibleValue represents one value of an Enum
type PermissibleValue struct {
	Text        string `yaml:"text" json:"text"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Meaning     string `yaml:"meaning,omitempty" json:"meaning,omitempty"`
}

func (c *Class) ElementName() string { return c.Name }
func (c *Class) Kind() ElementKind   { return KindClass }
func (*Class) element()              {}

func (s *Slot) ElementName() string { return s.Name }
func (s *Slot) Kind() ElementKind   { return KindSlot }
func (*Slot) element()              {}

func (t *Type) ElementName() string { return t.Name }
func (t *Type) Kind() ElementKind   { return KindType }
func (*Type) element()              {}

func (e *Enum) ElementName() string { return e.Name }
func (e *Enum) Kind() ElementKind   { return KindEnum }
func (*Enum) element()              {}

// HasAttribute returns true if the class declares an attribute with the given name
func (c *Class) HasAttribute(name string) bool {
	return c.Attributes.Has(name)
}

// FirstValue returns the first permissible value in declaration order
func (e *Enum) FirstValue() (string, bool) {
	for name, pv := range e.PermissibleValues.All() {
		if pv != nil && pv.Text != "" {
			return pv.Text, true
		}
		return name, true
	}
	return "", false
}

// IsInlinedAsList reports whether the slot is explicitly inlined as a list
func (s *Slot) IsInlinedAsList() bool {
	return s.InlinedAsList != nil && *s.InlinedAsList
}

// normalize makes every namespace non-nil, fills element names from their
// keys and replaces empty (null) entries with zero-valued elements.
func (s *Schema) normalize() {
	if s.Prefixes == nil {
		s.Prefixes = NewOrderedMap[Prefix]()
	}
	if s.Subsets == nil {
		s.Subsets = NewOrderedMap[*Subset]()
	}
	if s.Types == nil {
		s.Types = NewOrderedMap[*Type]()
	}
	if s.Enums == nil {
		s.Enums = NewOrderedMap[*Enum]()
	}
	if s.Slots == nil {
		s.Slots = NewOrderedMap[*Slot]()
	}
	if s.Classes == nil {
		s.Classes = NewOrderedMap[*Class]()
	}

	for name, sub := range s.Subsets.All() {
		if sub == nil {
			sub = &Subset{}
			s.Subsets.Set(name, sub)
		}
		sub.Name = name
	}
	for name, t := range s.Types.All() {
		if t == nil {
			t = &Type{}
			s.Types.Set(name, t)
		}
		t.Name = name
	}
	for name, e := range s.Enums.All() {
		if e == nil {
			e = &Enum{}
			s.Enums.Set(name, e)
		}
		e.Name = name
		e.normalize()
	}
	for name, slot := range s.Slots.All() {
		if slot == nil {
			slot = &Slot{}
			s.Slots.Set(name, slot)
		}
		slot.Name = name
	}
	for name, c := range s.Classes.All() {
		if c == nil {
			c = &Class{}
			s.Classes.Set(name, c)
		}
		c.Name = name
		c.normalize()
	}
}

func (c *Class) normalize() {
	if c.Attributes == nil {
		c.Attributes = NewOrderedMap[*Slot]()
	}
	for name, attr := range c.Attributes.All() {
		if attr == nil {
			attr = &Slot{}
			c.Attributes.Set(name, attr)
		}
		attr.Name = name
	}
}

func (e *Enum) normalize() {
	if e.PermissibleValues == nil {
		e.PermissibleValues = NewOrderedMap[*PermissibleValue]()
	}
	for text, pv := range e.PermissibleValues.All() {
		if pv == nil {
			pv = &PermissibleValue{}
			e.PermissibleValues.Set(text, pv)
		}
		if pv.Text == "" {
			pv.Text = text
		}
	}
}
