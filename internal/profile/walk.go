package profile

import (
	"slices"

	"github.com/conduit-lang/schemaprof/internal/schema"
)

// walk is the state shared by every root of one Profile call: the root set
// and the induced classes computed so far.
type walk struct {
	view    *schema.View
	keep    map[string]bool
	induced map[string]*schema.Class
	owners  map[string][]string
}

func newWalk(view *schema.View, roots []string) *walk {
	w := &walk{
		view:    view,
		keep:    make(map[string]bool, len(roots)),
		induced: make(map[string]*schema.Class),
	}
	for _, root := range roots {
		w.keep[root] = true
	}
	return w
}

// slotOwners returns the classes that list a schema-level slot
func (w *walk) slotOwners(slot string) []string {
	if w.owners == nil {
		w.owners = make(map[string][]string)
		for _, name := range w.view.ClassNames() {
			c, _ := w.view.Class(name)
			for _, s := range c.Slots {
				if !slices.Contains(w.owners[s], name) {
					w.owners[s] = append(w.owners[s], name)
				}
			}
		}
	}
	return w.owners[slot]
}

// requiredBelow reports whether the attribute is required in the induced
// form of any owner or any of its descendants, and names the first such
// class. A declaration is shared by every class inheriting it, so it may
// only be pruned when it is optional for all of them. A class whose
// induced form cannot be built counts as requiring it.
func (w *walk) requiredBelow(attr string, owners []string) (bool, string) {
	for _, owner := range owners {
		for _, class := range append([]string{owner}, w.view.Descendants(owner)...) {
			induced, ok := w.inducedClass(class)
			if !ok {
				return true, class
			}
			if a, found := induced.Attributes.Get(attr); found && a.Required {
				return true, class
			}
		}
	}
	return false, ""
}

func (w *walk) inducedClass(name string) (*schema.Class, bool) {
	if c, ok := w.induced[name]; ok {
		return c, c != nil
	}
	c, err := w.view.InducedClass(name)
	if err != nil {
		c = nil
	}
	w.induced[name] = c
	return c, c != nil
}
