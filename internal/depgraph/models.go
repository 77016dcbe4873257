package depgraph

import (
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// Node is one module in the dependency graph.
type Node struct {
	Name string       `json:"name"`
	Kind modules.Kind `json:"kind"`
	Path string       `json:"path,omitempty"`
}

// Edge is a resolved dependency between two known modules. Kinds are copied
// from the endpoints at build time so rule checking never needs the registry.
type Edge struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	FromKind modules.Kind `json:"from_kind"`
	ToKind   modules.Kind `json:"to_kind"`
}

// Graph is the immutable dependency graph derived from a registry. It is
// built once per run and shared read-only by the rule checker, the cycle
// detector, and the metrics calculator.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	// External records declared dependencies that resolved to no known
	// module, per source module, in declaration order. They produce no edges.
	External map[string][]string `json:"external,omitempty"`

	index map[string]int      // node name -> Nodes position
	succ  map[string][]string // adjacency, deduplicated, discovery order
}

// HasNode reports whether a module is part of the graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Successors returns the modules that name directly depends on, in edge
// discovery order.
func (g *Graph) Successors(name string) []string {
	return g.succ[name]
}

// ViolationType identifies which layering rule an edge breaks.
type ViolationType string

const (
	CoreDependsOnFeature    ViolationType = "CoreDependsOnFeature"
	SharedDependsOnFeature  ViolationType = "SharedDependsOnFeature"
	FeatureDependsOnFeature ViolationType = "FeatureDependsOnFeature"
)

// Violation is one layering-rule breach, derived per edge.
type Violation struct {
	FromModule  string        `json:"from_module"`
	ToModule    string        `json:"to_module"`
	Type        ViolationType `json:"violation_type"`
	Description string        `json:"description"`
}

// Metrics aggregates statistics over the registry and graph. Recomputed each
// run, never persisted.
type Metrics struct {
	TotalModules                 int     `json:"total_modules"`
	CoreModules                  int     `json:"core_modules"`
	SharedModules                int     `json:"shared_modules"`
	FeatureModules               int     `json:"feature_modules"`
	AverageDependenciesPerModule float64 `json:"average_dependencies_per_module"`
	MaxDependencyDepth           int     `json:"max_dependency_depth"`
	CouplingFactor               float64 `json:"coupling_factor"`
}

// Report is the complete analysis result handed to renderers.
type Report struct {
	Modules              []modules.Record `json:"modules"`
	DependencyViolations []Violation      `json:"dependency_violations"`
	CircularDependencies [][]string       `json:"circular_dependencies"`
	Metrics              Metrics          `json:"metrics"`
}
