package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/classify"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/config"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/depgraph"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/gate"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/graph"
	neo4jstore "github.com/kazumasamatsumoto/angular-module-analyzer/internal/graph/neo4j"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/observability"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/output"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/scan"
)

var version = "0.1.0"

func main() {
	var (
		projectPath  string
		outputFormat string
		configPath   string
		project      string
		runGate      bool
		storeGraph   bool
		verbose      bool
	)

	rootCmd := &cobra.Command{
		Use:   "angular-analyzer",
		Short: "Dependency graph auditor for layered Angular codebases",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze module dependencies and report violations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(configPath, projectPath, outputFormat, project, runGate, storeGraph, verbose)
		},
	}
	analyzeCmd.Flags().StringVar(&projectPath, "path", "", "Angular project root")
	analyzeCmd.Flags().StringVar(&outputFormat, "output", "console", "Output format (console, json)")
	analyzeCmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	analyzeCmd.Flags().StringVar(&project, "project", "", "Project name for the graph store (default: path basename)")
	analyzeCmd.Flags().BoolVar(&runGate, "gate", false, "Evaluate quality gates and fail on violations")
	analyzeCmd.Flags().BoolVar(&storeGraph, "store", false, "Persist the module graph to Neo4j")
	_ = analyzeCmd.MarkFlagRequired("path")

	var dotPath string
	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the module dependency graph as DOT",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(configPath, projectPath, dotPath, verbose)
		},
	}
	graphCmd.Flags().StringVar(&projectPath, "path", "", "Angular project root")
	graphCmd.Flags().StringVar(&dotPath, "output", "dependency-graph.dot", "Output file (- for stdout)")
	graphCmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	_ = graphCmd.MarkFlagRequired("path")

	var (
		depProject string
		depModule  string
	)
	dependentsCmd := &cobra.Command{
		Use:   "dependents",
		Short: "Query the graph store for modules depending on a module",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDependents(configPath, depProject, depModule, verbose)
		},
	}
	dependentsCmd.Flags().StringVar(&depProject, "project", "", "Project name used when the graph was stored")
	dependentsCmd.Flags().StringVar(&depModule, "module", "", "Module to query (omit to list the stored modules)")
	dependentsCmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	_ = dependentsCmd.MarkFlagRequired("project")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the analyzer version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("angular-analyzer", version)
		},
	}

	rootCmd.AddCommand(analyzeCmd, graphCmd, dependentsCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(configPath string) *config.Config {
	if configPath == "" {
		return config.Defaults()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		output.Warn("config load failed, using defaults", "error", err)
		return config.Defaults()
	}
	return cfg
}

// analyzeProject runs discovery and graph analysis for one project tree.
func analyzeProject(ctx context.Context, cfg *config.Config, projectPath string) (*modules.Registry, *depgraph.Graph, *depgraph.Report, error) {
	ctx, span := observability.StartScanSpan(ctx, projectPath)
	records, err := scan.New(projectPath, cfg.Analyzer.Exclude...).Scan(ctx)
	if err != nil {
		observability.RecordError(span, err)
		span.End()
		return nil, nil, nil, err
	}
	records = classify.Apply(records, cfg.Analyzer.ResolveOverrides())
	observability.RecordScanResult(span, len(records))
	span.End()
	output.Info("scanned project", "path", projectPath, "modules", len(records))

	_, span = observability.StartAnalyzeSpan(ctx, len(records))
	defer span.End()

	reg, err := modules.NewRegistry(records)
	if err != nil {
		observability.RecordError(span, err)
		return nil, nil, nil, err
	}
	g := depgraph.Build(reg, depgraph.NewIdentityResolver(reg))
	report := depgraph.AnalyzeGraph(reg, g)
	observability.RecordAnalyzeResult(span,
		len(report.DependencyViolations), len(report.CircularDependencies), report.Metrics.CouplingFactor)

	return reg, g, report, nil
}

func runAnalyze(configPath, projectPath, outputFormat, project string, runGate, storeGraph, verbose bool) error {
	cfg := loadConfig(configPath)
	output.SetupLogging(cfg.Log.Level, verbose)

	ctx := context.Background()
	tp, err := observability.InitTracing(ctx, &observability.TracingConfig{
		ServiceName:    "angular-analyzer",
		ServiceVersion: version,
		Environment:    cfg.Tracing.Environment,
		OTLPEndpoint:   cfg.Tracing.Endpoint,
		SampleRate:     cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	_, _, report, err := analyzeProject(ctx, cfg, projectPath)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		data, err := depgraph.ExportJSON(report)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(data))
	case "console":
		output.RenderReport(os.Stdout, report)
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}

	if storeGraph {
		if project == "" {
			project = projectName(projectPath)
		}
		if err := storeReport(ctx, cfg, project, report); err != nil {
			return err
		}
		output.Info("stored module graph", "project", project, "uri", cfg.Graph.URI)
	}

	if runGate {
		_, span := observability.StartGateSpan(ctx)
		defer span.End()

		result := gate.BuildPipeline(cfg.Gate).Run(&gate.EvalContext{Report: report})
		fmt.Fprint(os.Stderr, gate.FormatReport(result))
		passed := result.Status != gate.GateFailed
		observability.RecordGateResult(span, passed, result.Summary)
		if !passed {
			return fmt.Errorf("quality gates failed: %s", result.Summary)
		}
	}

	return nil
}

func runGraph(configPath, projectPath, dotPath string, verbose bool) error {
	cfg := loadConfig(configPath)
	output.SetupLogging(cfg.Log.Level, verbose)

	_, g, report, err := analyzeProject(context.Background(), cfg, projectPath)
	if err != nil {
		return err
	}

	dot := depgraph.ExportDOT(g, report.DependencyViolations)
	if dotPath == "-" {
		fmt.Print(dot)
		return nil
	}
	if err := os.WriteFile(dotPath, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dotPath, err)
	}
	output.Info("wrote dependency graph", "path", dotPath, "nodes", len(g.Nodes), "edges", len(g.Edges))
	return nil
}

func runDependents(configPath, project, moduleName string, verbose bool) error {
	cfg := loadConfig(configPath)
	output.SetupLogging(cfg.Log.Level, verbose)

	if cfg.Graph.URI == "" {
		return fmt.Errorf("graph.uri is not configured")
	}

	ctx := context.Background()
	repo, err := neo4jstore.NewNeo4j(ctx, cfg.Graph.URI, cfg.Graph.Username, cfg.Graph.Password)
	if err != nil {
		return fmt.Errorf("connect graph store: %w", err)
	}
	defer func() { _ = repo.Close(ctx) }()

	if moduleName == "" {
		names, err := repo.LoadModules(ctx, project)
		if err != nil {
			return fmt.Errorf("load modules: %w", err)
		}
		if len(names) == 0 {
			fmt.Printf("No stored modules for project %s\n", project)
			return nil
		}
		fmt.Printf("Modules stored for %s:\n", project)
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	dependents, err := repo.QueryDependents(ctx, project, moduleName)
	if err != nil {
		return fmt.Errorf("query dependents: %w", err)
	}
	if len(dependents) == 0 {
		fmt.Printf("No modules depend on %s\n", moduleName)
		return nil
	}
	fmt.Printf("Modules depending on %s:\n", moduleName)
	for _, name := range dependents {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

// projectName derives a graph store key from the project path.
func projectName(projectPath string) string {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return filepath.Base(projectPath)
	}
	return filepath.Base(abs)
}

func storeReport(ctx context.Context, cfg *config.Config, project string, report *depgraph.Report) error {
	if cfg.Graph.URI == "" {
		return fmt.Errorf("graph store requested but graph.uri is not configured")
	}

	ctx, span := observability.StartStoreSpan(ctx, project)
	defer span.End()

	var repo graph.Repository
	repo, err := neo4jstore.NewNeo4j(ctx, cfg.Graph.URI, cfg.Graph.Username, cfg.Graph.Password)
	if err != nil {
		observability.RecordError(span, err)
		return fmt.Errorf("connect graph store: %w", err)
	}
	defer func() { _ = repo.Close(ctx) }()

	if err := repo.StoreReport(ctx, project, report); err != nil {
		observability.RecordError(span, err)
		return fmt.Errorf("store report: %w", err)
	}
	return nil
}
