// Package instance generates representative data for a schema: example
// records for a class, and a DataSet class that collects the schema's
// classes into one document.
package instance

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conduit-lang/schemaprof/internal/schema"
)

// Record is a generated instance; keys follow the attribute order of its class
type Record = schema.OrderedMap[any]

// Mode selects how references to other objects are filled in
type Mode int

const (
	// Example leaves references empty.
	Example Mode = iota
	// Populate fills references with the identifier generated for the
	// referenced class in the same run.
	Populate
)

// Slot URIs whose values come from the schema itself
const (
	ConformsToURI  = "http://purl.org/dc/terms/conformsTo"
	VersionInfoURI = "http://www.w3.org/2002/07/owl#versionInfo"
)

// Generator walks a schema to produce instances
type Generator struct {
	view   *schema.View
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Generator
type Option func(*Generator)

// WithClock sets the source of date and time sample values
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithIDFunc sets the generator of identifier values
func WithIDFunc(newID func() string) Option {
	return func(g *Generator) { g.newID = newID }
}

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a generator for the schema behind view
func NewGenerator(view *schema.View, opts ...Option) *Generator {
	g := &Generator{
		view:   view,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Instance generates one record of class. With skipOptional, attributes
// that are not required are left out.
//
// Inlined class ranges are generated as nested records. A class inlined
// into itself, directly or through other inlined classes, cannot produce a
// finite record and fails with a *schema.RecursionError.
func (g *Generator) Instance(class string, mode Mode, skipOptional bool) (*Record, error) {
	if !g.view.IsClass(class) {
		return nil, &schema.NotFoundError{Kind: schema.KindClass, Name: class}
	}
	s := &session{
		g:            g,
		mode:         mode,
		skipOptional: skipOptional,
		ids:          make(map[string]string),
	}
	return s.record(class, []string{class})
}

// session holds the state of one Instance call. The identifier cache lives
// exactly as long as the session.
type session struct {
	g            *Generator
	mode         Mode
	skipOptional bool
	ids          map[string]string
}

func (s *session) record(class string, path []string) (*Record, error) {
	c, err := s.g.view.InducedClass(class)
	if err != nil {
		return nil, err
	}

	rec := schema.NewOrderedMap[any]()
	for name, attr := range c.Attributes.All() {
		if s.skipOptional && !attr.Required {
			continue
		}
		value, err := s.value(class, attr, path)
		if err != nil {
			return nil, err
		}
		rec.Set(name, value)
	}
	return rec, nil
}

func (s *session) value(owner string, attr *schema.Slot, path []string) (any, error) {
	view := s.g.view

	if attr.SlotURI != "" {
		switch view.ExpandCURIE(attr.SlotURI) {
		case ConformsToURI:
			return view.ID(), nil
		case VersionInfoURI:
			return view.Version(), nil
		}
	}

	rng := view.RangeOf(attr)
	if !view.IsClass(rng) {
		v, err := s.primitive(owner, attr, rng)
		if err != nil {
			return nil, err
		}
		if attr.Multivalued {
			return []any{v}, nil
		}
		return v, nil
	}

	if !view.IsInlined(attr) {
		ref := ""
		if id, ok := view.IdentifierSlot(rng); ok && s.mode == Populate {
			ref = s.identifier(rng, id)
		}
		if attr.Multivalued {
			return []any{ref}, nil
		}
		return ref, nil
	}

	if slices.Contains(path, rng) {
		return nil, &schema.RecursionError{Path: slices.Clone(path), Class: rng, Slot: attr.Name}
	}
	s.g.logger.Debug(fmt.Sprintf("Generating inlined %q for %s.%s", rng, owner, attr.Name))
	nested, err := s.record(rng, append(slices.Clone(path), rng))
	if err != nil {
		return nil, err
	}
	if !attr.Multivalued {
		return nested, nil
	}
	if id, ok := view.IdentifierSlot(rng); ok && !attr.IsInlinedAsList() {
		key := s.identifier(rng, id)
		dict := schema.NewOrderedMap[any]()
		dict.Set(key, nested)
		return dict, nil
	}
	return []any{nested}, nil
}

func (s *session) primitive(owner string, attr *schema.Slot, rng string) (any, error) {
	view := s.g.view

	if view.IsEnum(rng) {
		e, _ := view.Enum(rng)
		v, _ := e.FirstValue()
		return v, nil
	}
	prim, ok := view.PrimitiveOf(rng)
	if !ok {
		return nil, &schema.InvalidReferenceError{Element: owner, Attribute: attr.Name, Ref: schema.RefRange, Target: rng}
	}
	if attr.Identifier {
		return s.identifier(owner, attr), nil
	}
	return sampleValue(prim, s.g.now()), nil
}

// identifier returns the value generated for the identifier slot of class,
// creating it on first use.
func (s *session) identifier(class string, slot *schema.Slot) string {
	key := class + "." + slot.Name
	if v, ok := s.ids[key]; ok {
		return v
	}
	v := s.g.newID()
	if prim, _ := s.g.view.PrimitiveOf(s.g.view.RangeOf(slot)); prim == schema.TypeURI || prim == schema.TypeURIOrCURIE {
		v = s.g.view.ID() + "/" + v
	}
	s.ids[key] = v
	return v
}

func sampleValue(prim string, now time.Time) any {
	switch prim {
	case schema.TypeInteger:
		return 1
	case schema.TypeFloat, schema.TypeDouble, schema.TypeDecimal:
		return 1.0
	case schema.TypeBoolean:
		return true
	case schema.TypeDate:
		return now.Format(time.DateOnly)
	case schema.TypeDatetime:
		return now.Format(time.RFC3339)
	case schema.TypeTime:
		return now.Format(time.TimeOnly)
	default:
		return ""
	}
}
