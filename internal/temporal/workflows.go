package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/workflow"
)

// AuditInput holds the workflow parameters.
type AuditInput struct {
	Project     string // Logical project name used as the graph store key
	ProjectPath string // Root of the Angular source tree

	StoreGraph bool // Whether to persist the module graph
}

// AuditOutput holds the workflow result.
type AuditOutput struct {
	ReportJSON  string
	GatePassed  bool
	GateSummary string

	ModuleCount    int
	ViolationCount int
	CycleCount     int
}

// AuditWorkflow orchestrates one architecture audit: discover the modules,
// analyze the dependency graph, persist it, and evaluate the quality gates.
func AuditWorkflow(ctx workflow.Context, input AuditInput) (*AuditOutput, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var scanResult ScanResult
	if err := workflow.ExecuteActivity(ctx, ScanActivity, input).Get(ctx, &scanResult); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	var analyzeResult AnalyzeResult
	if err := workflow.ExecuteActivity(ctx, AnalyzeActivity, scanResult.RecordsJSON).Get(ctx, &analyzeResult); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	if input.StoreGraph {
		if err := workflow.ExecuteActivity(ctx, StoreActivity, input.Project, analyzeResult.ReportJSON).Get(ctx, nil); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
	}

	var gateResult GateResult
	if err := workflow.ExecuteActivity(ctx, GateActivity, analyzeResult.ReportJSON).Get(ctx, &gateResult); err != nil {
		return nil, fmt.Errorf("gate: %w", err)
	}

	return &AuditOutput{
		ReportJSON:     analyzeResult.ReportJSON,
		GatePassed:     gateResult.Passed,
		GateSummary:    gateResult.Summary,
		ModuleCount:    scanResult.ModuleCount,
		ViolationCount: analyzeResult.ViolationCount,
		CycleCount:     analyzeResult.CycleCount,
	}, nil
}
