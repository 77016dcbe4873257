// Package scan discovers NgModule definitions in an Angular project tree and
// extracts the module records consumed by the dependency graph engine.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/output"
)

var (
	classPattern  = regexp.MustCompile(`export\s+class\s+(\w+Module)`)
	importPattern = regexp.MustCompile(`import\s*\{[^}]*\}\s*from\s*["']([^"']*)["']`)
)

// Default directory names skipped during discovery.
var defaultExcludes = []string{"node_modules", "dist", ".git"}

// Scanner walks a project tree for *.module.ts files.
type Scanner struct {
	root     string
	excludes map[string]bool
}

// New creates a scanner rooted at the project path. Extra excludes are
// directory names skipped in addition to the defaults.
func New(root string, excludes ...string) *Scanner {
	s := &Scanner{root: root, excludes: make(map[string]bool)}
	for _, name := range defaultExcludes {
		s.excludes[name] = true
	}
	for _, name := range excludes {
		if name != "" {
			s.excludes[name] = true
		}
	}
	return s
}

// Scan discovers and parses every module file under the root. Discovery
// failures abort the scan; files that yield no module class are skipped with
// a warning so one odd file never sinks the analysis. Records are returned in
// walk order, which is deterministic for a given tree.
func (s *Scanner) Scan(ctx context.Context) ([]modules.Record, error) {
	var records []modules.Record

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if s.excludes[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".module.ts") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			rel = path
		}

		rec, ok := ParseModuleFile(rel, content)
		if !ok {
			output.Warn("skipping file without module class", "path", rel)
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.root, err)
	}
	return records, nil
}

// ParseModuleFile extracts a module record from one TypeScript source file.
// The second return value is false when the file declares no exported module
// class and has no usable fallback name.
func ParseModuleFile(path string, content []byte) (modules.Record, bool) {
	src := string(content)

	rec := modules.Record{
		Name:         moduleName(path, src),
		Path:         filepath.ToSlash(path),
		Imports:      decoratorArray(src, "imports"),
		Exports:      decoratorArray(src, "exports"),
		Providers:    decoratorArray(src, "providers"),
		Declarations: decoratorArray(src, "declarations"),
		Dependencies: []string{},
	}
	if rec.Name == "" {
		return modules.Record{}, false
	}

	// Declared dependencies: decorator imports first (resolvable by module
	// class name), then external package paths from import statements.
	for _, entry := range rec.Imports {
		if id := dependencyIdentifier(entry); id != "" {
			rec.Dependencies = append(rec.Dependencies, id)
		}
	}
	rec.Dependencies = append(rec.Dependencies, externalImports(src)...)

	return rec, true
}

// moduleName prefers the exported NgModule class name and falls back to the
// file stem.
func moduleName(path, src string) string {
	if m := classPattern.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, ".module.ts")
}

// decoratorArray extracts the entries of a decorator field such as
// "imports: [...]". Nested calls like RouterModule.forRoot(routes) are kept
// verbatim.
func decoratorArray(src, field string) []string {
	pattern := regexp.MustCompile(`(?s)` + field + `:\s*\[(.*?)\]`)
	m := pattern.FindStringSubmatch(src)
	if m == nil {
		return nil
	}

	var entries []string
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			entries = append(entries, part)
		}
	}
	return entries
}

// dependencyIdentifier reduces a decorator entry to its leading identifier:
// "RouterModule.forRoot(routes)" depends on RouterModule.
func dependencyIdentifier(entry string) string {
	for i, r := range entry {
		if !isIdentRune(r) {
			return entry[:i]
		}
	}
	return entry
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// externalImports lists third-party package paths imported by the file.
// Relative imports point inside the project (already covered by the decorator
// imports) and framework imports are never project modules, so both are
// dropped.
func externalImports(src string) []string {
	var deps []string
	for _, m := range importPattern.FindAllStringSubmatch(src, -1) {
		from := m[1]
		if strings.HasPrefix(from, ".") || strings.HasPrefix(from, "@angular/") {
			continue
		}
		deps = append(deps, from)
	}
	return deps
}
