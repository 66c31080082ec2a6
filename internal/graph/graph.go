// Package graph provides the reference graph of a schema: classes as
// nodes, generalisation and association as edges, and the path, cycle and
// ordering queries built on it.
package graph

import (
	"github.com/conduit-lang/schemaprof/internal/schema"
)

// EdgeKind distinguishes the two relations between classes
type EdgeKind string

const (
	// Generalise links a parent class to a direct child.
	Generalise EdgeKind = "generalise"
	// Associate links a class to a class one of its slots ranges over.
	Associate EdgeKind = "associate"
)

// Edge is a directed relation between two classes. Slot names the slot
// behind an association.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
	Slot string
}

// Graph is the reference graph of a schema. Nodes and edges keep the
// schema's declaration order, so every query is deterministic.
type Graph struct {
	name  string
	nodes []string
	known map[string]bool
	edges []Edge
	out   map[string][]string
	in    map[string][]string
}

// Build creates the reference graph of the schema behind view.
//
// Associations come from each class's own slots and attributes; inherited
// ones are reachable through the generalisation edges. A range or is_a that
// names nothing in the schema is a schema.ErrInvalidReference.
func Build(view *schema.View) (*Graph, error) {
	g := &Graph{
		name:  view.Name(),
		known: make(map[string]bool),
		out:   make(map[string][]string),
		in:    make(map[string][]string),
	}
	for _, name := range view.ClassNames() {
		g.nodes = append(g.nodes, name)
		g.known[name] = true
	}

	for _, name := range g.nodes {
		c, _ := view.Class(name)
		if c.IsA != "" {
			if !g.known[c.IsA] {
				return nil, &schema.InvalidReferenceError{Element: name, Ref: schema.RefIsA, Target: c.IsA}
			}
			g.addEdge(Edge{From: c.IsA, To: name, Kind: Generalise})
		}
	}

	for _, name := range g.nodes {
		c, _ := view.Class(name)
		var slots []*schema.Slot
		for _, slotName := range c.Slots {
			slot, ok := view.Slot(slotName)
			if !ok {
				return nil, &schema.InvalidReferenceError{Element: name, Ref: schema.RefSlot, Target: slotName}
			}
			slots = append(slots, slot)
		}
		for _, attr := range c.Attributes.All() {
			slots = append(slots, attr)
		}

		for _, slot := range slots {
			rng := view.RangeOf(slot)
			switch {
			case g.known[rng]:
				g.addEdge(Edge{From: name, To: rng, Kind: Associate, Slot: slot.Name})
			case !view.Resolves(rng):
				return nil, &schema.InvalidReferenceError{Element: name, Attribute: slot.Name, Ref: schema.RefRange, Target: rng}
			}
		}
	}
	return g, nil
}

func (g *Graph) addEdge(e Edge) {
	g.edges = append(g.edges, e)
	if !contains(g.out[e.From], e.To) {
		g.out[e.From] = append(g.out[e.From], e.To)
	}
	if !contains(g.in[e.To], e.From) {
		g.in[e.To] = append(g.in[e.To], e.From)
	}
}

// Name returns the name of the schema the graph was built from
func (g *Graph) Name() string { return g.name }

// Nodes returns the class names in declaration order
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Has reports whether the graph contains the class
func (g *Graph) Has(name string) bool { return g.known[name] }

// Successors returns the classes directly reachable from name
func (g *Graph) Successors(name string) []string {
	return append([]string(nil), g.out[name]...)
}

// Predecessors returns the classes with an edge to name
func (g *Graph) Predecessors(name string) []string {
	return append([]string(nil), g.in[name]...)
}

// Associations returns the classes name refers to through its slots
func (g *Graph) Associations(name string) []string {
	return g.targets(name, Associate)
}

// ReferencedBy returns the classes with a slot ranging over name
func (g *Graph) ReferencedBy(name string) []string {
	var result []string
	for _, e := range g.edges {
		if e.Kind == Associate && e.To == name && !contains(result, e.From) {
			result = append(result, e.From)
		}
	}
	return result
}

func (g *Graph) targets(name string, kind EdgeKind) []string {
	var result []string
	for _, e := range g.edges {
		if e.Kind == kind && e.From == name && !contains(result, e.To) {
			result = append(result, e.To)
		}
	}
	return result
}

// Edges returns the edges of the graph. Directed edges are unique per
// (from, to, kind); the first slot behind an association names it. The
// undirected view reports each pair of classes once, whichever direction
// and kind it was first seen with.
func (g *Graph) Edges(directed bool) []Edge {
	type key struct {
		a, b string
		kind EdgeKind
	}
	seen := make(map[key]bool)
	var result []Edge
	for _, e := range g.edges {
		k := key{a: e.From, b: e.To, kind: e.Kind}
		if !directed {
			k.kind = ""
			if k.a > k.b {
				k.a, k.b = k.b, k.a
			}
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, e)
	}
	return result
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
