package depgraph

import "sort"

// FindCycles reports circular dependencies. Every strongly connected
// component of size >= 2, and every node with a self-loop, becomes one cycle
// entry: a representative closed walk through the component's nodes, without
// the repeated endpoint. Every consecutive pair in a walk (and the implicit
// step from last back to first) is an edge of the graph; interior nodes may
// appear more than once when the component branches. Components are the
// reporting unit; elementary cycles inside a component are not enumerated
// separately.
//
// Output is deterministic: cycles are ordered by their lowest member
// identity, and each walk starts at that member.
func FindCycles(g *Graph) [][]string {
	cycles := [][]string{}
	for _, comp := range stronglyConnected(g) {
		if len(comp) == 1 && !hasSelfLoop(g, comp[0]) {
			continue
		}
		cycles = append(cycles, representativeWalk(g, comp))
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}

func hasSelfLoop(g *Graph, name string) bool {
	for _, next := range g.Successors(name) {
		if next == name {
			return true
		}
	}
	return false
}

// stronglyConnected computes the graph's SCCs with Tarjan's single-pass
// algorithm. Roots are visited in sorted node order so the component set is
// stable regardless of input ordering.
func stronglyConnected(g *Graph) [][]string {
	index := make(map[string]int, len(g.Nodes))
	lowlink := make(map[string]int, len(g.Nodes))
	onStack := make(map[string]bool, len(g.Nodes))
	var stack []string
	var components [][]string
	counter := 0

	var strongconnect func(v string)
	strongconnect = func(v string) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Successors(v) {
			if _, visited := index[w]; !visited {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && index[w] < lowlink[v] {
				lowlink[v] = index[w]
			}
		}

		if lowlink[v] == index[v] {
			var comp []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			components = append(components, comp)
		}
	}

	roots := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		roots = append(roots, n.Name)
	}
	sort.Strings(roots)

	for _, v := range roots {
		if _, visited := index[v]; !visited {
			strongconnect(v)
		}
	}
	return components
}

// representativeWalk produces one deterministic closed walk covering every
// node of a strongly connected component. Starting at the lowest identity,
// it repeatedly extends the walk with the shortest in-component path to the
// next uncovered member (sorted order), then closes back to the start. Every
// consecutive pair is a real edge, as is the final wrap-around; interior
// nodes may repeat, only the closing endpoint is left implicit. Within an
// SCC every node is reachable from every other, so the paths always exist.
func representativeWalk(g *Graph, comp []string) []string {
	members := make(map[string]bool, len(comp))
	for _, name := range comp {
		members[name] = true
	}

	ordered := append([]string(nil), comp...)
	sort.Strings(ordered)
	start := ordered[0]

	walk := []string{start}
	covered := map[string]bool{start: true}
	pos := start

	for _, target := range ordered[1:] {
		if covered[target] {
			continue
		}
		path := shortestPath(g, members, pos, target)
		for _, v := range path[1:] {
			walk = append(walk, v)
			covered[v] = true
		}
		pos = target
	}

	// Close the walk. A size-1 component only gets here with a self-loop,
	// which closes in one step on its own.
	if pos != start {
		path := shortestPath(g, members, pos, start)
		walk = append(walk, path[1:len(path)-1]...)
	}
	return walk
}

// shortestPath returns the shortest path from src to dst along in-component
// edges, endpoints included. Successors are expanded in sorted order so ties
// break the same way on every run. src and dst must differ.
func shortestPath(g *Graph, members map[string]bool, src, dst string) []string {
	parent := map[string]string{src: ""}
	queue := []string{src}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		next := append([]string(nil), g.Successors(v)...)
		sort.Strings(next)
		for _, w := range next {
			if !members[w] {
				continue
			}
			if _, seen := parent[w]; seen {
				continue
			}
			parent[w] = v
			if w == dst {
				var path []string
				for n := dst; n != ""; n = parent[n] {
					path = append(path, n)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path
			}
			queue = append(queue, w)
		}
	}
	return nil
}
