package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/depgraph"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/graph"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// Neo4jRepository implements graph.Repository using Neo4j.
type Neo4jRepository struct {
	driver neo4j.DriverWithContext
}

// NewNeo4j creates a Neo4j-backed repository.
func NewNeo4j(ctx context.Context, uri, username, password string) (*Neo4jRepository, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}
	return &Neo4jRepository{driver: driver}, nil
}

func (r *Neo4jRepository) StoreReport(ctx context.Context, project string, report *depgraph.Report) error {
	reg, err := modules.NewRegistry(report.Modules)
	if err != nil {
		return fmt.Errorf("rebuild registry: %w", err)
	}
	g := depgraph.Build(reg, depgraph.NewIdentityResolver(reg))

	violating := make(map[[2]string]bool, len(report.DependencyViolations))
	for _, v := range report.DependencyViolations {
		violating[[2]string{v.FromModule, v.ToModule}] = true
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, node := range g.Nodes {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			_, err := tx.Run(ctx,
				"MERGE (m:Module {project: $project, name: $name}) SET m.path = $path, m.kind = $kind",
				map[string]any{"project": project, "name": node.Name, "path": node.Path, "kind": string(node.Kind)})
			return nil, err
		})
		if err != nil {
			return fmt.Errorf("store module %s: %w", node.Name, err)
		}
	}

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, e := range g.Edges {
			_, err := tx.Run(ctx,
				"MERGE (a:Module {project: $project, name: $from}) "+
					"MERGE (b:Module {project: $project, name: $to}) "+
					"MERGE (a)-[r:DEPENDS_ON]->(b) SET r.violation = $violation",
				map[string]any{
					"project":   project,
					"from":      e.From,
					"to":        e.To,
					"violation": violating[[2]string{e.From, e.To}],
				})
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("store dependency edges: %w", err)
	}
	return nil
}

func (r *Neo4jRepository) LoadModules(ctx context.Context, project string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx,
			"MATCH (m:Module {project: $project}) RETURN m.name ORDER BY m.name",
			map[string]any{"project": project})
		if err != nil {
			return nil, err
		}
		var names []string
		for records.Next(ctx) {
			n, _ := records.Record().Get("m.name")
			names = append(names, n.(string))
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func (r *Neo4jRepository) QueryDependents(ctx context.Context, project, moduleName string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx,
			"MATCH (dependent:Module {project: $project})-[:DEPENDS_ON]->(:Module {project: $project, name: $name}) "+
				"RETURN dependent.name ORDER BY dependent.name",
			map[string]any{"project": project, "name": moduleName})
		if err != nil {
			return nil, err
		}
		var names []string
		for records.Next(ctx) {
			n, _ := records.Record().Get("dependent.name")
			names = append(names, n.(string))
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func (r *Neo4jRepository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

var _ graph.Repository = (*Neo4jRepository)(nil)
