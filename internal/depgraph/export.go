package depgraph

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// ExportDOT renders the graph in Graphviz format: one node statement per
// module labeled with identity and kind, one edge statement per graph edge,
// violating edges styled red. Nodes follow registry order and edges follow
// discovery order, so the output is byte-for-byte reproducible.
func ExportDOT(g *Graph, violations []Violation) string {
	violating := make(map[[2]string]bool, len(violations))
	for _, v := range violations {
		violating[[2]string{v.FromModule, v.ToModule}] = true
	}

	var b strings.Builder
	b.WriteString("digraph AngularModules {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [shape=box];\n\n")

	for _, n := range g.Nodes {
		b.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\\n(%s)\" fillcolor=%s style=filled];\n",
			n.Name, n.Name, n.Kind, kindColor(n.Kind)))
	}

	b.WriteString("\n")
	for _, e := range g.Edges {
		if violating[[2]string{e.From, e.To}] {
			b.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=red penwidth=2.0];\n", e.From, e.To))
		} else {
			b.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", e.From, e.To))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// ExportJSON serializes a report with stable two-space indentation. Given the
// same report the bytes are identical on every call.
func ExportJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func kindColor(kind modules.Kind) string {
	switch kind {
	case modules.KindCore:
		return "lightblue"
	case modules.KindShared:
		return "lightgreen"
	case modules.KindFeature:
		return "lightyellow"
	default:
		return "lightgray"
	}
}
