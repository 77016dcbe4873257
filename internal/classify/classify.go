// Package classify assigns architectural kinds to module records using an
// ordered chain of heuristics. Classification is total: a record that matches
// no heuristic is Unknown, never an error.
package classify

import (
	"strings"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// rule is one predicate in the classification chain. The first rule that
// matches wins.
type rule struct {
	name  string
	match func(rec modules.Record) (modules.Kind, bool)
}

var chain = []rule{
	{"explicit", explicitKind},
	{"path-segment", pathSegment},
	{"name-suffix", nameSuffix},
}

// Classify returns the kind for a single record.
func Classify(rec modules.Record) modules.Kind {
	for _, r := range chain {
		if k, ok := r.match(rec); ok {
			return k
		}
	}
	return modules.KindUnknown
}

// Apply classifies every record and returns the result. Overrides map module
// names to a forced kind and take priority over every heuristic; they are how
// explicit per-project configuration enters the chain. Input records are not
// mutated.
func Apply(records []modules.Record, overrides map[string]modules.Kind) []modules.Record {
	out := make([]modules.Record, len(records))
	for i, rec := range records {
		if k, ok := overrides[rec.Name]; ok && k.Valid() {
			rec.Kind = k
		} else {
			rec.Kind = Classify(rec)
		}
		out[i] = rec
	}
	return out
}

// explicitKind keeps a kind the upstream extractor already committed to.
func explicitKind(rec modules.Record) (modules.Kind, bool) {
	switch rec.Kind {
	case modules.KindCore, modules.KindShared, modules.KindFeature:
		return rec.Kind, true
	}
	return modules.KindUnknown, false
}

// pathSegment inspects the origin path. A "core" directory segment (or a
// core.module file) marks Core, "shared" marks Shared, "feature"/"features"
// marks Feature.
func pathSegment(rec modules.Record) (modules.Kind, bool) {
	lower := strings.ToLower(rec.Path)
	segments := strings.FieldsFunc(lower, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	for _, seg := range segments {
		switch seg {
		case "core":
			return modules.KindCore, true
		case "shared":
			return modules.KindShared, true
		case "feature", "features":
			return modules.KindFeature, true
		}
	}

	switch {
	case strings.Contains(lower, "core.module"):
		return modules.KindCore, true
	case strings.Contains(lower, "shared.module"):
		return modules.KindShared, true
	}
	return modules.KindUnknown, false
}

// nameSuffix falls back to naming conventions on the module identity.
func nameSuffix(rec modules.Record) (modules.Kind, bool) {
	switch {
	case strings.HasSuffix(rec.Name, "CoreModule"):
		return modules.KindCore, true
	case strings.HasSuffix(rec.Name, "SharedModule"):
		return modules.KindShared, true
	case strings.HasSuffix(rec.Name, "FeatureModule"):
		return modules.KindFeature, true
	}
	return modules.KindUnknown, false
}
