package profile

import (
	"fmt"

	"github.com/conduit-lang/schemaprof/internal/schema"
)

// Flatten turns a class into a single flat record: inherited slots and
// attributes are merged in, is_a is cleared, and every attribute ranging
// over a class is rewritten to the range of that class's identifier. A
// referenced class without an identifier keeps its range and is logged.
//
// Flatten never follows the referenced classes themselves.
func (p *Profiler) Flatten(name string) (*schema.Class, error) {
	c, err := p.view.InducedClass(name)
	if err != nil {
		return nil, err
	}

	for attrName, attr := range c.Attributes.All() {
		p.fixDescription(&attr.Description)
		rng := p.view.RangeOf(attr)
		if !p.view.IsClass(rng) {
			continue
		}
		idRange, ok := p.identifierRange(rng)
		if !ok {
			p.logger.Warn(fmt.Sprintf("No identifying slot found for %q, keeping range of %s.%s", rng, name, attrName))
			continue
		}
		p.logger.Debug(fmt.Sprintf("Set range %q for %s.%s", idRange, name, attrName))
		attr.Range = idRange
		attr.Inlined = nil
		attr.InlinedAsList = nil
	}

	c.IsA = ""
	c.Abstract = false
	p.fixDescription(&c.Description)
	if p.rename {
		if c, err = schema.RenameClassAttributes(c, p.overrides); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// identifierRange resolves the range of a class's identifier, following
// identifiers that themselves range over classes.
func (p *Profiler) identifierRange(class string) (string, bool) {
	seen := make(map[string]bool)
	for !seen[class] {
		seen[class] = true
		id, ok := p.view.IdentifierSlot(class)
		if !ok {
			return "", false
		}
		rng := p.view.RangeOf(id)
		if !p.view.IsClass(rng) {
			return rng, true
		}
		class = rng
	}
	return "", false
}

// DataProduct returns a schema holding the flattened class together with
// the types and enums its attributes range over.
func (p *Profiler) DataProduct(name string) (*schema.Schema, error) {
	c, err := p.Flatten(name)
	if err != nil {
		return nil, err
	}

	b := p.newBuilder()
	b.AddClass(c)
	for _, attr := range c.Attributes.All() {
		p.addValueRange(b, p.view.RangeOf(attr))
	}
	p.logger.Info(fmt.Sprintf("Processed class %q as data product", name))
	return b.Schema(p.source), nil
}

func (p *Profiler) addValueRange(b *schema.Builder, rng string) {
	for rng != "" {
		switch {
		case p.view.IsEnum(rng):
			e, _ := p.view.Enum(rng)
			b.AddEnum(e)
			return
		case p.view.IsLocalType(rng):
			t, _ := p.view.Type(rng)
			if !b.AddType(t) {
				return
			}
			rng = t.TypeOf
		default:
			return
		}
	}
}
