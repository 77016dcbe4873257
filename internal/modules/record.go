// Package modules defines the NgModule records and the registry consumed by
// the dependency graph engine.
package modules

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a module's architectural layer.
type Kind string

const (
	KindCore    Kind = "Core"
	KindShared  Kind = "Shared"
	KindFeature Kind = "Feature"
	KindUnknown Kind = "Unknown"
)

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCore, KindShared, KindFeature, KindUnknown:
		return true
	}
	return false
}

// ParseKind converts a configuration string into a Kind. Matching is
// case-insensitive so "feature" and "Feature" name the same kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "core":
		return KindCore, true
	case "shared":
		return KindShared, true
	case "feature":
		return KindFeature, true
	case "unknown":
		return KindUnknown, true
	}
	return KindUnknown, false
}

// Record represents one discovered NgModule.
type Record struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Kind         Kind     `json:"module_type"`
	Imports      []string `json:"imports,omitempty"`
	Exports      []string `json:"exports,omitempty"`
	Providers    []string `json:"providers,omitempty"`
	Declarations []string `json:"declarations,omitempty"`

	// Dependencies are the declared dependency identifiers as written in
	// source: decorator imports entries plus external package paths. They may
	// reference other modules, third-party packages, or nothing at all.
	Dependencies []string `json:"dependencies"`
}

var (
	// ErrDuplicateIdentity is returned when two records share a name. An
	// ambiguous graph cannot be built safely, so this aborts analysis.
	ErrDuplicateIdentity = errors.New("duplicate module identity")

	// ErrMalformedRecord is returned for records missing required fields.
	ErrMalformedRecord = errors.New("malformed module record")
)

// Registry holds the classified, deduplicated set of module records. It is
// built once per analysis run and never mutated afterwards.
type Registry struct {
	records []Record
	index   map[string]int
}

// NewRegistry validates and indexes a set of records. Record order is
// preserved; it determines edge discovery order downstream.
func NewRegistry(records []Record) (*Registry, error) {
	r := &Registry{
		records: make([]Record, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: record with path %q has no name", ErrMalformedRecord, rec.Path)
		}
		if _, exists := r.index[rec.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentity, rec.Name)
		}
		r.index[rec.Name] = len(r.records)
		r.records = append(r.records, rec)
	}
	return r, nil
}

// Records returns all records in registration order.
func (r *Registry) Records() []Record {
	return r.records
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.records)
}

// Lookup resolves an identity to its record.
func (r *Registry) Lookup(name string) (Record, bool) {
	i, ok := r.index[name]
	if !ok {
		return Record{}, false
	}
	return r.records[i], true
}
