package graph

import (
	"context"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/depgraph"
)

// Repository provides graph storage for analysis reports.
type Repository interface {
	// StoreReport persists the module graph of one analysis run.
	StoreReport(ctx context.Context, project string, report *depgraph.Report) error
	// LoadModules retrieves the stored module names for a project.
	LoadModules(ctx context.Context, project string) ([]string, error)
	// QueryDependents returns the modules that depend on the given module.
	QueryDependents(ctx context.Context, project, moduleName string) ([]string, error)
	// Close releases resources.
	Close(ctx context.Context) error
}
