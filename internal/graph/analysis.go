package graph

import (
	"fmt"
	"strings"
)

// Cycles returns the association cycles of the graph. Each cycle lists its
// classes in order, starting from the class the search entered it by; a
// class referring to itself is a cycle of one.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)

	var dfs func(node string, path []string)
	dfs = func(node string, path []string) {
		visited[node] = true
		recursionStack[node] = true
		path = append(path, node)

		for _, neighbor := range g.Associations(node) {
			if !visited[neighbor] {
				dfs(neighbor, path)
			} else if recursionStack[neighbor] {
				for i, n := range path {
					if n == neighbor {
						cycle := make([]string, len(path)-i)
						copy(cycle, path[i:])
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}

		recursionStack[node] = false
	}

	for _, node := range g.nodes {
		if !visited[node] {
			dfs(node, nil)
		}
	}
	return cycles
}

// GeneralisationOrder returns the classes ordered parents first: every
// class comes after its is_a parent. Siblings keep declaration order.
func (g *Graph) GeneralisationOrder() []string {
	inDegree := make(map[string]int, len(g.nodes))
	children := make(map[string][]string)
	for _, e := range g.edges {
		if e.Kind == Generalise {
			inDegree[e.To]++
			children[e.From] = append(children[e.From], e.To)
		}
	}

	var queue []string
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)
		for _, child := range children[node] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return result
}

// Report summarises the structure of a graph
type Report struct {
	TotalClasses        int
	References          map[string][]string // class -> classes its slots range over
	ReferencedBy        map[string][]string // class -> classes with slots ranging over it
	Cycles              [][]string
	GeneralisationOrder []string
	Roots               []string // classes that nothing refers to and that have no parent
}

// Analyze builds a report of the graph
func (g *Graph) Analyze() *Report {
	report := &Report{
		TotalClasses:        len(g.nodes),
		References:          make(map[string][]string),
		ReferencedBy:        make(map[string][]string),
		Cycles:              g.Cycles(),
		GeneralisationOrder: g.GeneralisationOrder(),
	}
	for _, name := range g.nodes {
		report.References[name] = g.Associations(name)
		report.ReferencedBy[name] = g.ReferencedBy(name)
		if len(g.in[name]) == 0 {
			report.Roots = append(report.Roots, name)
		}
	}
	return report
}

// HasCycles reports whether any association cycle was found
func (r *Report) HasCycles() bool { return len(r.Cycles) > 0 }

// String formats the report
func (r *Report) String() string {
	var b strings.Builder

	b.WriteString("Reference Graph Report\n")
	fmt.Fprintf(&b, "Total Classes: %d\n\n", r.TotalClasses)

	if r.HasCycles() {
		b.WriteString("Association cycles:\n")
		b.WriteString(formatCycles(r.Cycles))
		b.WriteString("\n\n")
	}

	if len(r.Roots) > 0 {
		fmt.Fprintf(&b, "Entry points: %s\n\n", strings.Join(r.Roots, ", "))
	}

	if len(r.GeneralisationOrder) > 0 {
		b.WriteString("Generalisation order (parents first):\n")
		for i, class := range r.GeneralisationOrder {
			refs := r.References[class]
			if len(refs) > 0 {
				fmt.Fprintf(&b, "  %d. %s (refers to: %s)\n", i+1, class, strings.Join(refs, ", "))
			} else {
				fmt.Fprintf(&b, "  %d. %s (no references)\n", i+1, class)
			}
		}
	}
	return b.String()
}

func formatCycles(cycles [][]string) string {
	var b strings.Builder
	for i, cycle := range cycles {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  Cycle %d: %s -> %s", i+1, strings.Join(cycle, " -> "), cycle[0])
	}
	return b.String()
}
