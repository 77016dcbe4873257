package temporal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/classify"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/config"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/depgraph"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/gate"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/graph"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/observability"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/scan"
)

// ErrNoGraphStore is returned by StoreActivity when no repository is wired.
var ErrNoGraphStore = errors.New("no graph store configured")

// ScanResult is the serializable result of the discovery activity.
type ScanResult struct {
	RecordsJSON string
	ModuleCount int
}

// AnalyzeResult is the serializable result of the analysis activity.
type AnalyzeResult struct {
	ReportJSON     string
	ViolationCount int
	CycleCount     int
}

// GateResult is the serializable result of the gate activity.
type GateResult struct {
	Passed  bool
	Summary string
	Report  string // Human-readable gate report
}

// Dependencies holds shared resources injected into activities.
type Dependencies struct {
	Repo      graph.Repository
	Gate      config.GateConfig
	Excludes  []string
	Overrides map[string]modules.Kind
}

var deps *Dependencies

// SetDependencies injects shared resources (called during worker setup).
func SetDependencies(d *Dependencies) {
	deps = d
}

func ScanActivity(ctx context.Context, input AuditInput) (ScanResult, error) {
	ctx, span := observability.StartScanSpan(ctx, input.ProjectPath)
	defer span.End()

	scanner := scan.New(input.ProjectPath, deps.Excludes...)
	records, err := scanner.Scan(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return ScanResult{}, err
	}
	records = classify.Apply(records, deps.Overrides)
	observability.RecordScanResult(span, len(records))

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return ScanResult{}, fmt.Errorf("marshal records: %w", err)
	}
	return ScanResult{RecordsJSON: string(recordsJSON), ModuleCount: len(records)}, nil
}

func AnalyzeActivity(ctx context.Context, recordsJSON string) (AnalyzeResult, error) {
	var records []modules.Record
	if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
		return AnalyzeResult{}, err
	}

	_, span := observability.StartAnalyzeSpan(ctx, len(records))
	defer span.End()

	reg, err := modules.NewRegistry(records)
	if err != nil {
		observability.RecordError(span, err)
		return AnalyzeResult{}, err
	}

	report := depgraph.Analyze(reg)
	observability.RecordAnalyzeResult(span,
		len(report.DependencyViolations), len(report.CircularDependencies), report.Metrics.CouplingFactor)

	reportJSON, err := depgraph.ExportJSON(report)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("marshal report: %w", err)
	}
	return AnalyzeResult{
		ReportJSON:     string(reportJSON),
		ViolationCount: len(report.DependencyViolations),
		CycleCount:     len(report.CircularDependencies),
	}, nil
}

func StoreActivity(ctx context.Context, project, reportJSON string) error {
	if deps.Repo == nil {
		return ErrNoGraphStore
	}

	ctx, span := observability.StartStoreSpan(ctx, project)
	defer span.End()

	var report depgraph.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return err
	}
	if err := deps.Repo.StoreReport(ctx, project, &report); err != nil {
		observability.RecordError(span, err)
		return err
	}
	return nil
}

func GateActivity(ctx context.Context, reportJSON string) (GateResult, error) {
	_, span := observability.StartGateSpan(ctx)
	defer span.End()

	var report depgraph.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return GateResult{}, err
	}

	pipeline := gate.BuildPipeline(deps.Gate)
	result := pipeline.Run(&gate.EvalContext{Report: &report})

	passed := result.Status != gate.GateFailed
	observability.RecordGateResult(span, passed, result.Summary)

	return GateResult{
		Passed:  passed,
		Summary: result.Summary,
		Report:  gate.FormatReport(result),
	}, nil
}
