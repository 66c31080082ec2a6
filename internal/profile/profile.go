// Package profile computes profiles of a schema: the smallest sub-schema
// that still describes a chosen set of root classes and everything they
// reference, and flat single-class data products.
package profile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/schemaprof/internal/schema"
	strutil "github.com/conduit-lang/schemaprof/internal/util/strings"
)

// Profiler produces profiles of the schema behind a view. It never
// modifies the view; every run builds a fresh output schema.
type Profiler struct {
	view   *schema.View
	source *schema.Schema
	logger *zap.Logger

	policy    Policy
	fixDoc    bool
	rename    bool
	overrides map[string]string
	strict    bool
}

// New creates a profiler. It fails with schema.ErrSentinelCollision when the
// schema uses the placeholder type name for something else.
func New(view *schema.View, opts ...Option) (*Profiler, error) {
	if view == nil {
		return nil, fmt.Errorf("view cannot be nil")
	}
	if el := view.Element(schema.SentinelTypeName); el != nil {
		t, ok := el.(*schema.Type)
		if !ok || !schema.IsSentinelType(t) {
			return nil, fmt.Errorf("%w: %s %q", schema.ErrSentinelCollision, el.Kind(), schema.SentinelTypeName)
		}
	}

	p := &Profiler{
		view:   view,
		source: view.Schema(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	stats := schema.StatsOf(p.source)
	p.logger.Info(fmt.Sprintf("Schema contains [%d] classes, [%d] types and [%d] enums",
		stats.Classes, stats.Types, stats.Enums))
	return p, nil
}

// Result is the outcome of a profiling run
type Result struct {
	Schema  *schema.Schema
	Kept    []string
	Skipped []SkippedRoot
}

// SkippedRoot is a requested root that is absent from the output
type SkippedRoot struct {
	Name string
	Err  error
}

// Profile builds the schema needed to describe roots: the roots, all their
// ancestors, and, transitively, every class, type and enum their slots
// range over.
//
// Roots are processed one at a time. A root that is not a class, or whose
// closure reaches a range that does not resolve, is skipped and recorded in
// Result.Skipped; nothing it reached is kept. In strict mode a skipped root
// makes Profile return an error alongside the result.
func (p *Profiler) Profile(roots []string) (*Result, error) {
	b := p.newBuilder()
	if p.policy == PruneOptional {
		b.AddType(schema.SentinelType())
	}

	w := newWalk(p.view, roots)

	result := &Result{}
	var errs []error
	for _, root := range roots {
		if err := p.profileRoot(b, root, w); err != nil {
			p.logger.Warn(fmt.Sprintf("Skipping class %q", root), zap.Error(err))
			result.Skipped = append(result.Skipped, SkippedRoot{Name: root, Err: err})
			errs = append(errs, err)
			continue
		}
		result.Kept = append(result.Kept, root)
	}

	stats := b.Stats()
	p.logger.Info(fmt.Sprintf("Profiling [%d] classes, [%d] types and [%d] enums",
		stats.Classes, stats.Types, stats.Enums))

	result.Schema = b.Schema(p.source)
	if p.strict && len(errs) > 0 {
		return result, fmt.Errorf("profile: %d of %d classes skipped: %w", len(errs), len(roots), errors.Join(errs...))
	}
	return result, nil
}

func (p *Profiler) profileRoot(b *schema.Builder, root string, w *walk) error {
	if !p.view.IsClass(root) {
		return &schema.NotFoundError{Kind: schema.KindClass, Name: root}
	}
	if b.HasClass(root) {
		return nil
	}
	st := newStage(b)
	if err := p.closure(st, root, w); err != nil {
		return err
	}
	st.commit(p.view)
	return nil
}

// workItem is a name waiting to be visited, with the reference that led to it
type workItem struct {
	name  string
	owner string
	attr  string
	ref   string
}

func (w workItem) invalid() error {
	return &schema.InvalidReferenceError{Element: w.owner, Attribute: w.attr, Ref: w.ref, Target: w.name}
}

// closure visits everything reachable from root with an explicit stack.
// The stage's membership checks are the visited set, so every element is
// prepared once, on first visit.
func (p *Profiler) closure(st *stage, root string, w *walk) error {
	stack := []workItem{{name: root}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case item.name == schema.SentinelTypeName && st.hasType(item.name):
			continue

		case p.view.IsClass(item.name):
			if st.hasClass(item.name) {
				continue
			}
			c, _ := p.view.Class(item.name)
			next, err := p.visitClass(st, c, w)
			if err != nil {
				return err
			}
			stack = append(stack, next...)

		case p.view.IsType(item.name):
			if !p.view.IsLocalType(item.name) || st.hasType(item.name) {
				continue
			}
			t, _ := p.view.Type(item.name)
			p.fixDescription(&t.Description)
			p.logger.Debug(fmt.Sprintf("Adding type %q", t.Name))
			st.addType(t)
			if t.TypeOf != "" {
				stack = append(stack, workItem{name: t.TypeOf, owner: t.Name, ref: schema.RefTypeOf})
			}

		case p.view.IsEnum(item.name):
			if st.hasEnum(item.name) {
				continue
			}
			e, _ := p.view.Enum(item.name)
			p.fixDescription(&e.Description)
			p.logger.Debug(fmt.Sprintf("Adding enum %q", e.Name))
			st.addEnum(e)

		default:
			return item.invalid()
		}
	}
	return nil
}

// visitClass adds a prepared copy of c and returns the names it refers to
func (p *Profiler) visitClass(st *stage, c *schema.Class, w *walk) ([]workItem, error) {
	var next []workItem

	if c.IsA != "" {
		if !p.view.IsClass(c.IsA) {
			return nil, &schema.InvalidReferenceError{Element: c.Name, Ref: schema.RefIsA, Target: c.IsA}
		}
		next = append(next, workItem{name: c.IsA, owner: c.Name, ref: schema.RefIsA})
	}

	for _, slotName := range c.Slots {
		if st.hasSlot(slotName) {
			continue
		}
		slot, ok := p.view.Slot(slotName)
		if !ok {
			return nil, &schema.InvalidReferenceError{Element: c.Name, Ref: schema.RefSlot, Target: slotName}
		}
		p.prepareSlot(c.Name, slot, w.slotOwners(slotName), w)
		st.addSlot(slot)
		next = append(next, workItem{name: p.view.RangeOf(slot), owner: slotName, ref: schema.RefRange})
	}

	for attrName, attr := range c.Attributes.All() {
		p.prepareSlot(c.Name, attr, []string{c.Name}, w)
		next = append(next, workItem{name: p.view.RangeOf(attr), owner: c.Name, attr: attrName, ref: schema.RefRange})
	}

	p.fixDescription(&c.Description)
	if p.rename {
		renamed, err := schema.RenameClassAttributes(c, p.overrides)
		if err != nil {
			return nil, err
		}
		c = renamed
	}

	p.logger.Debug(fmt.Sprintf("Adding class %q", c.Name))
	st.addClass(c)
	return next, nil
}

// prepareSlot applies the pruning policy and documentation fix to a copy
// of a slot before it is kept. owners are the classes declaring the slot.
func (p *Profiler) prepareSlot(class string, slot *schema.Slot, owners []string, w *walk) {
	p.fixDescription(&slot.Description)
	if p.policy != PruneOptional || slot.Required {
		return
	}
	rng := p.view.RangeOf(slot)
	if !p.view.IsClass(rng) || w.keep[rng] {
		return
	}
	if required, where := w.requiredBelow(slot.Name, owners); required {
		p.logger.Debug(fmt.Sprintf("Keeping optional range %q of %s.%s, required in %s", rng, class, slot.Name, where))
		return
	}
	p.logger.Debug(fmt.Sprintf("Replacing optional range %q of %s.%s", rng, class, slot.Name))
	slot.Range = schema.SentinelTypeName
	slot.Inlined = nil
	slot.InlinedAsList = nil
}

func (p *Profiler) fixDescription(desc *string) {
	if p.fixDoc && *desc != "" {
		*desc = strutil.CollapseWhitespace(*desc)
	}
}

// newBuilder starts an output schema carrying the source header, prefixes
// and a default prefix bound to the schema id.
func (p *Profiler) newBuilder() *schema.Builder {
	b := schema.NewBuilder(p.source.ID, p.source.Name)
	b.SetHeader(p.source)
	for name, uri := range p.source.Prefixes.All() {
		if err := b.AddPrefix(name, uri); err != nil {
			p.logger.Debug("Prefix not copied", zap.Error(err))
		}
	}
	b.SetDefaultPrefix(schema.DefaultPrefixName)
	return b
}
