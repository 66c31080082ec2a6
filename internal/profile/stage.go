package profile

import "github.com/conduit-lang/schemaprof/internal/schema"

// stage collects the elements of one root's closure. They reach the
// builder only on commit, so a root that fails part way leaves no trace.
type stage struct {
	b       *schema.Builder
	classes []*schema.Class
	slots   []*schema.Slot
	types   []*schema.Type
	enums   []*schema.Enum
	seen    map[schema.ElementKind]map[string]bool
}

func newStage(b *schema.Builder) *stage {
	return &stage{
		b: b,
		seen: map[schema.ElementKind]map[string]bool{
			schema.KindClass: {},
			schema.KindSlot:  {},
			schema.KindType:  {},
			schema.KindEnum:  {},
		},
	}
}

func (s *stage) hasClass(name string) bool { return s.b.HasClass(name) || s.seen[schema.KindClass][name] }
func (s *stage) hasSlot(name string) bool  { return s.b.HasSlot(name) || s.seen[schema.KindSlot][name] }
func (s *stage) hasType(name string) bool  { return s.b.HasType(name) || s.seen[schema.KindType][name] }
func (s *stage) hasEnum(name string) bool  { return s.b.HasEnum(name) || s.seen[schema.KindEnum][name] }

func (s *stage) addClass(c *schema.Class) {
	s.seen[schema.KindClass][c.Name] = true
	s.classes = append(s.classes, c)
}

func (s *stage) addSlot(slot *schema.Slot) {
	s.seen[schema.KindSlot][slot.Name] = true
	s.slots = append(s.slots, slot)
}

func (s *stage) addType(t *schema.Type) {
	s.seen[schema.KindType][t.Name] = true
	s.types = append(s.types, t)
}

func (s *stage) addEnum(e *schema.Enum) {
	s.seen[schema.KindEnum][e.Name] = true
	s.enums = append(s.enums, e)
}

// commit moves the staged elements into the builder, along with the
// subsets they are declared in.
func (s *stage) commit(view *schema.View) {
	var subsets []string
	for _, c := range s.classes {
		s.b.AddClass(c)
		subsets = append(subsets, c.InSubset...)
		for _, attr := range c.Attributes.All() {
			subsets = append(subsets, attr.InSubset...)
		}
	}
	for _, slot := range s.slots {
		s.b.AddSlot(slot)
		subsets = append(subsets, slot.InSubset...)
	}
	for _, t := range s.types {
		s.b.AddType(t)
	}
	for _, e := range s.enums {
		s.b.AddEnum(e)
	}
	for _, name := range subsets {
		if sub, ok := view.Subset(name); ok {
			s.b.AddSubset(sub)
		}
	}
}
