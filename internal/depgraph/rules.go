package depgraph

import (
	"fmt"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// CheckRules evaluates every edge against the layering policy. Output order
// is edge discovery order, which makes results reproducible for a given
// input ordering. Unknown modules are exempt: no rule references them.
//
// Policy:
//
//	Core   -> Feature                     CoreDependsOnFeature
//	Shared -> Feature                     SharedDependsOnFeature
//	Feature -> Feature (different module) FeatureDependsOnFeature
//
// A Feature self-loop is left to cycle detection.
func CheckRules(g *Graph) []Violation {
	violations := []Violation{}
	for _, e := range g.Edges {
		if v, ok := checkEdge(e); ok {
			violations = append(violations, v)
		}
	}
	return violations
}

func checkEdge(e Edge) (Violation, bool) {
	switch {
	case e.FromKind == modules.KindCore && e.ToKind == modules.KindFeature:
		return Violation{
			FromModule:  e.From,
			ToModule:    e.To,
			Type:        CoreDependsOnFeature,
			Description: fmt.Sprintf("Core module %s depends on Feature module %s", e.From, e.To),
		}, true
	case e.FromKind == modules.KindShared && e.ToKind == modules.KindFeature:
		return Violation{
			FromModule:  e.From,
			ToModule:    e.To,
			Type:        SharedDependsOnFeature,
			Description: fmt.Sprintf("Shared module %s depends on Feature module %s", e.From, e.To),
		}, true
	case e.FromKind == modules.KindFeature && e.ToKind == modules.KindFeature && e.From != e.To:
		return Violation{
			FromModule:  e.From,
			ToModule:    e.To,
			Type:        FeatureDependsOnFeature,
			Description: fmt.Sprintf("Feature module %s depends directly on Feature module %s", e.From, e.To),
		}, true
	}
	return Violation{}, false
}
