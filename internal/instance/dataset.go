package instance

import (
	"fmt"

	"github.com/conduit-lang/schemaprof/internal/schema"
	strutil "github.com/conduit-lang/schemaprof/internal/util/strings"
)

// DatasetClassName is the name of the generated collection class
const DatasetClassName = "DataSet"

// datasetMetadata returns the attributes every DataSet carries
func datasetMetadata() []*schema.Slot {
	return []*schema.Slot{
		{Name: "id", Range: schema.TypeURIOrCURIE, Identifier: true, Required: true, SlotURI: "dct:identifier",
			Description: "Identifier of the data set"},
		{Name: "conformsTo", Range: schema.TypeURI, Required: true, SlotURI: "dct:conformsTo",
			Description: "Schema the data set conforms to"},
		{Name: "contactPoint", Range: schema.TypeString, SlotURI: "dcat:contactPoint",
			Description: "Contact for questions about the data set"},
		{Name: "releaseDate", Range: schema.TypeDate, SlotURI: "dct:issued",
			Description: "Date the data set was released"},
		{Name: "version", Range: schema.TypeString, SlotURI: "owl:versionInfo",
			Description: "Version of the schema the data set conforms to"},
	}
}

// DatasetClass builds a DataSet class collecting the classes of the schema.
// Each collected class gets a multivalued attribute, inlined as a list and
// named after the class in plural lowerCamelCase (Category -> categories).
//
// When root is set it must be a class; the DataSet inherits from it and
// does not collect it. With leavesOnly only classes without subclasses are
// collected. Abstract classes are never collected, and neither is a class
// that every slot targeting it embeds, since it only occurs nested.
func (g *Generator) DatasetClass(root string, leavesOnly bool) (*schema.Class, error) {
	view := g.view
	if root != "" && !view.IsClass(root) {
		return nil, &schema.NotFoundError{Kind: schema.KindClass, Name: root}
	}
	if view.IsClass(DatasetClassName) {
		return nil, fmt.Errorf("%w: class %q already exists", schema.ErrNameCollision, DatasetClassName)
	}

	ds := &schema.Class{
		Name:        DatasetClassName,
		Description: fmt.Sprintf("A collection of %s data", view.Name()),
		IsA:         root,
		Attributes:  schema.NewOrderedMap[*schema.Slot](),
	}
	for _, attr := range datasetMetadata() {
		ds.Attributes.Set(attr.Name, attr)
	}

	candidates := view.ClassNames()
	if leavesOnly {
		candidates = view.Leaves()
	}
	inlinedOnly := g.inlinedOnly()

	for _, name := range candidates {
		c, _ := view.Class(name)
		switch {
		case name == root || c.Abstract:
			continue
		case inlinedOnly[name]:
			g.logger.Debug(fmt.Sprintf("Skipping %q, it only occurs inlined", name))
			continue
		}
		attrName := strutil.ToLowerCamel(strutil.Pluralize(name))
		if ds.Attributes.Has(attrName) {
			return nil, fmt.Errorf("%w: attribute %q for class %q clashes with an existing DataSet attribute",
				schema.ErrNameCollision, attrName, name)
		}
		ds.Attributes.Set(attrName, &schema.Slot{
			Name:          attrName,
			Range:         name,
			Multivalued:   true,
			InlinedAsList: schema.Bool(true),
		})
	}
	return ds, nil
}

// inlinedOnly reports the classes targeted by at least one slot where every
// slot targeting them is inlined.
func (g *Generator) inlinedOnly() map[string]bool {
	view := g.view
	targeted := make(map[string]bool)
	referenced := make(map[string]bool)

	visit := func(slot *schema.Slot) {
		rng := view.RangeOf(slot)
		if !view.IsClass(rng) {
			return
		}
		targeted[rng] = true
		if !view.IsInlined(slot) {
			referenced[rng] = true
		}
	}
	for _, name := range view.SlotNames() {
		slot, _ := view.Slot(name)
		visit(slot)
	}
	for _, name := range view.ClassNames() {
		c, _ := view.Class(name)
		for _, attr := range c.Attributes.All() {
			visit(attr)
		}
	}

	result := make(map[string]bool)
	for name := range targeted {
		if !referenced[name] {
			result[name] = true
		}
	}
	return result
}

// Dataset returns a copy of the schema with the DataSet class added
func (g *Generator) Dataset(root string, leavesOnly bool) (*schema.Schema, error) {
	ds, err := g.DatasetClass(root, leavesOnly)
	if err != nil {
		return nil, err
	}
	s := g.view.Schema()
	for _, p := range schema.DefaultPrefixes {
		if !s.Prefixes.Has(p.Name) {
			s.Prefixes.Set(p.Name, p.URI)
		}
	}
	s.Classes.Set(ds.Name, ds)
	return s, nil
}
