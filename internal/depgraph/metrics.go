package depgraph

import (
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// ComputeMetrics derives aggregate statistics from a classified registry and
// its graph. Pure and total: every edge case (empty registry, single module,
// cyclic graph) yields a defined value.
func ComputeMetrics(reg *modules.Registry, g *Graph) Metrics {
	m := Metrics{TotalModules: len(g.Nodes)}

	for _, n := range g.Nodes {
		switch n.Kind {
		case modules.KindCore:
			m.CoreModules++
		case modules.KindShared:
			m.SharedModules++
		case modules.KindFeature:
			m.FeatureModules++
		}
	}

	edges := len(g.Edges)
	if m.TotalModules > 0 {
		m.AverageDependenciesPerModule = float64(edges) / float64(m.TotalModules)
	}
	if m.TotalModules > 1 {
		m.CouplingFactor = float64(edges) / float64(m.TotalModules*(m.TotalModules-1))
	}
	m.MaxDependencyDepth = condensationDepth(g)

	return m
}

// condensationDepth collapses every strongly connected component to a single
// node and returns the longest path length (in edges) through the resulting
// DAG. Collapsing keeps depth well-defined when the graph has cycles.
func condensationDepth(g *Graph) int {
	comps := stronglyConnected(g)
	compOf := make(map[string]int, len(g.Nodes))
	for i, comp := range comps {
		for _, name := range comp {
			compOf[name] = i
		}
	}

	// Component-level adjacency, self-edges dropped.
	succ := make(map[int][]int)
	seen := make(map[[2]int]bool)
	for _, e := range g.Edges {
		from, to := compOf[e.From], compOf[e.To]
		if from == to {
			continue
		}
		pair := [2]int{from, to}
		if !seen[pair] {
			seen[pair] = true
			succ[from] = append(succ[from], to)
		}
	}

	// Longest path by memoized DFS; the condensation is acyclic.
	depth := make(map[int]int, len(comps))
	computed := make(map[int]bool, len(comps))
	var longest func(c int) int
	longest = func(c int) int {
		if computed[c] {
			return depth[c]
		}
		computed[c] = true
		best := 0
		for _, next := range succ[c] {
			if d := longest(next) + 1; d > best {
				best = d
			}
		}
		depth[c] = best
		return best
	}

	max := 0
	for i := range comps {
		if d := longest(i); d > max {
			max = d
		}
	}
	return max
}
