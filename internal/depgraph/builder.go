package depgraph

import (
	"strings"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// Resolver maps a declared dependency identifier to a known module identity.
// Resolution policy is pluggable so it can evolve without touching graph,
// cycle, or metric logic.
type Resolver interface {
	Resolve(id string) (string, bool)
}

// IdentityResolver resolves by exact identity match first, then by a
// normalized fallback: lowercase comparison of the last path segment. Lookups
// are O(1) against indexes built once from the registry.
type IdentityResolver struct {
	exact      map[string]string
	normalized map[string]string
}

// NewIdentityResolver builds the resolution indexes. When two identities
// normalize to the same key, the first registered module wins.
func NewIdentityResolver(reg *modules.Registry) *IdentityResolver {
	r := &IdentityResolver{
		exact:      make(map[string]string, reg.Len()),
		normalized: make(map[string]string, reg.Len()),
	}
	for _, rec := range reg.Records() {
		r.exact[rec.Name] = rec.Name
		key := normalizeIdentifier(rec.Name)
		if _, taken := r.normalized[key]; !taken {
			r.normalized[key] = rec.Name
		}
	}
	return r
}

// Resolve returns the known module identity for id, or false when id refers
// to an external or unresolvable dependency.
func (r *IdentityResolver) Resolve(id string) (string, bool) {
	if name, ok := r.exact[id]; ok {
		return name, true
	}
	if name, ok := r.normalized[normalizeIdentifier(id)]; ok {
		return name, true
	}
	return "", false
}

// normalizeIdentifier lowercases id and strips any path prefix, so that
// "features/User" and "UserModule"-style spellings have a chance to meet.
func normalizeIdentifier(id string) string {
	if i := strings.LastIndexAny(id, "/\\"); i >= 0 {
		id = id[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(id))
}

// Build converts a classified registry into the dependency graph. One node
// per module; one edge per declared dependency that resolves to a known
// module. Multiple declarations of the same (from, to) pair collapse to a
// single edge. Unresolved identifiers are recorded as external dependencies
// and produce no edge. Input records are never mutated.
func Build(reg *modules.Registry, resolver Resolver) *Graph {
	g := &Graph{
		Nodes:    make([]Node, 0, reg.Len()),
		Edges:    []Edge{},
		External: make(map[string][]string),
		index:    make(map[string]int, reg.Len()),
		succ:     make(map[string][]string),
	}

	for _, rec := range reg.Records() {
		g.index[rec.Name] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{
			Name: rec.Name,
			Kind: rec.Kind,
			Path: rec.Path,
		})
	}

	seen := make(map[[2]string]bool)
	for _, rec := range reg.Records() {
		for _, dep := range rec.Dependencies {
			target, ok := resolver.Resolve(dep)
			if !ok {
				g.External[rec.Name] = append(g.External[rec.Name], dep)
				continue
			}
			pair := [2]string{rec.Name, target}
			if seen[pair] {
				continue
			}
			seen[pair] = true

			targetNode := g.Nodes[g.index[target]]
			g.Edges = append(g.Edges, Edge{
				From:     rec.Name,
				To:       target,
				FromKind: rec.Kind,
				ToKind:   targetNode.Kind,
			})
			g.succ[rec.Name] = append(g.succ[rec.Name], target)
		}
	}

	return g
}
