package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteMermaid renders the graph as a Mermaid class diagram. Undirected
// rendering draws plain links and reports each pair of classes once.
func (g *Graph) WriteMermaid(w io.Writer, directed bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "classDiagram")
	for _, node := range g.nodes {
		fmt.Fprintf(bw, "  class %s\n", node)
	}
	for _, e := range g.Edges(directed) {
		switch {
		case !directed:
			fmt.Fprintf(bw, "  %s -- %s\n", e.From, e.To)
		case e.Kind == Generalise:
			fmt.Fprintf(bw, "  %s <|-- %s\n", e.From, e.To)
		default:
			fmt.Fprintf(bw, "  %s --> %s : %s\n", e.From, e.To, e.Slot)
		}
	}
	return bw.Flush()
}

// WriteDOT renders the graph in Graphviz DOT notation
func (g *Graph) WriteDOT(w io.Writer, directed bool) error {
	bw := bufio.NewWriter(w)
	kind, arrow := "digraph", "->"
	if !directed {
		kind, arrow = "graph", "--"
	}
	fmt.Fprintf(bw, "%s %s {\n", kind, strconv.Quote(g.name))
	fmt.Fprintln(bw, "  node [shape=box];")
	for _, node := range g.nodes {
		fmt.Fprintf(bw, "  %s;\n", strconv.Quote(node))
	}
	for _, e := range g.Edges(directed) {
		from, to := strconv.Quote(e.From), strconv.Quote(e.To)
		switch {
		case !directed:
			fmt.Fprintf(bw, "  %s %s %s;\n", from, arrow, to)
		case e.Kind == Generalise:
			fmt.Fprintf(bw, "  %s %s %s [arrowhead=empty];\n", from, arrow, to)
		default:
			fmt.Fprintf(bw, "  %s %s %s [label=%s];\n", from, arrow, to, strconv.Quote(e.Slot))
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
