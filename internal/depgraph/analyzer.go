// Package depgraph is the dependency graph engine: it converts a classified
// module registry into a directed graph, checks the layering policy, detects
// circular dependencies, and computes architecture metrics.
package depgraph

import (
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// Analyze runs the full engine over a classified registry. The rule checker,
// cycle detector, and metrics calculator each read the same immutable graph;
// Analyze never fails and always returns a complete report.
func Analyze(reg *modules.Registry) *Report {
	g := Build(reg, NewIdentityResolver(reg))
	return AnalyzeGraph(reg, g)
}

// AnalyzeGraph produces a report from an already-built graph, for callers
// that inject their own resolver or also need the graph itself (DOT export).
func AnalyzeGraph(reg *modules.Registry, g *Graph) *Report {
	records := reg.Records()
	if records == nil {
		records = []modules.Record{}
	}
	return &Report{
		Modules:              records,
		DependencyViolations: CheckRules(g),
		CircularDependencies: FindCycles(g),
		Metrics:              ComputeMetrics(reg, g),
	}
}
