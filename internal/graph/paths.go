package graph

import (
	"github.com/conduit-lang/schemaprof/internal/schema"
)

func (g *Graph) checkEndpoints(src, dst string) error {
	for _, name := range []string{src, dst} {
		if !g.known[name] {
			return &schema.NotFoundError{Kind: schema.KindClass, Name: name}
		}
	}
	return nil
}

// ShortestPaths returns every path of minimal length from src to dst,
// following edges in their direction. Paths come out in breadth-first
// discovery order. No path yields an empty result, not an error.
func (g *Graph) ShortestPaths(src, dst string) ([][]string, error) {
	if err := g.checkEndpoints(src, dst); err != nil {
		return nil, err
	}
	if src == dst {
		return [][]string{{src}}, nil
	}

	dist := map[string]int{src: 0}
	preds := make(map[string][]string)
	frontier := []string{src}
	for len(frontier) > 0 && dist[dst] == 0 {
		var next []string
		for _, node := range frontier {
			for _, succ := range g.out[node] {
				d, seen := dist[succ]
				switch {
				case !seen:
					dist[succ] = dist[node] + 1
					preds[succ] = append(preds[succ], node)
					next = append(next, succ)
				case d == dist[node]+1:
					preds[succ] = append(preds[succ], node)
				}
			}
		}
		frontier = next
	}
	if _, ok := dist[dst]; !ok {
		return [][]string{}, nil
	}

	var paths [][]string
	var walk func(node string, suffix []string)
	walk = func(node string, suffix []string) {
		suffix = append([]string{node}, suffix...)
		if node == src {
			paths = append(paths, suffix)
			return
		}
		for _, p := range preds[node] {
			walk(p, suffix)
		}
	}
	walk(dst, nil)
	return paths, nil
}

// AllPaths returns every simple path from src to dst in depth-first order.
// maxDepth limits the number of edges per path; zero or less means no limit.
func (g *Graph) AllPaths(src, dst string, maxDepth int) ([][]string, error) {
	if err := g.checkEndpoints(src, dst); err != nil {
		return nil, err
	}
	if src == dst {
		return [][]string{{src}}, nil
	}

	paths := [][]string{}
	onPath := map[string]bool{src: true}
	path := []string{src}

	var dfs func(node string)
	dfs = func(node string) {
		if maxDepth > 0 && len(path)-1 >= maxDepth {
			return
		}
		for _, succ := range g.out[node] {
			if onPath[succ] {
				continue
			}
			if succ == dst {
				found := append(append([]string(nil), path...), dst)
				paths = append(paths, found)
				continue
			}
			onPath[succ] = true
			path = append(path, succ)
			dfs(succ)
			path = path[:len(path)-1]
			onPath[succ] = false
		}
	}
	dfs(src)
	return paths, nil
}
