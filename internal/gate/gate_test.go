package gate

import (
	"strings"
	"testing"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/config"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/depgraph"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

func reportWith(violations int, cycles [][]string, coupling float64) *depgraph.Report {
	r := &depgraph.Report{
		Modules: []modules.Record{
			{Name: "CoreModule", Kind: modules.KindCore},
			{Name: "UserModule", Kind: modules.KindFeature},
		},
		DependencyViolations: []depgraph.Violation{},
		CircularDependencies: cycles,
		Metrics:              depgraph.Metrics{TotalModules: 2, CouplingFactor: coupling},
	}
	for i := 0; i < violations; i++ {
		r.DependencyViolations = append(r.DependencyViolations, depgraph.Violation{
			FromModule:  "CoreModule",
			ToModule:    "UserModule",
			Type:        depgraph.CoreDependsOnFeature,
			Description: "Core module CoreModule depends on Feature module UserModule",
		})
	}
	return r
}

func TestViolationGate(t *testing.T) {
	tests := []struct {
		name          string
		maxViolations int
		violations    int
		wantStatus    GateStatus
	}{
		{"pass clean", 0, 0, GatePassed},
		{"pass at limit", 2, 2, GatePassed},
		{"fail over limit", 0, 1, GateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewViolationGate(tt.maxViolations, SeverityRequired)
			ctx := &EvalContext{Report: reportWith(tt.violations, nil, 0)}

			result, err := gate.Evaluate(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("got status %v, want %v", result.Status, tt.wantStatus)
			}
			if result.Name != "violations" {
				t.Errorf("got name %q, want %q", result.Name, "violations")
			}
			if tt.wantStatus == GateFailed && len(result.Details) != tt.violations {
				t.Errorf("got %d details, want %d", len(result.Details), tt.violations)
			}
		})
	}
}

func TestCycleGate(t *testing.T) {
	tests := []struct {
		name        string
		allowCycles bool
		cycles      [][]string
		wantStatus  GateStatus
	}{
		{"pass no cycles", false, nil, GatePassed},
		{"fail with cycle", false, [][]string{{"A", "B"}}, GateFailed},
		{"skip when allowed", true, [][]string{{"A", "B"}}, GateSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewCycleGate(tt.allowCycles, SeverityRequired)
			ctx := &EvalContext{Report: reportWith(0, tt.cycles, 0)}

			result, err := gate.Evaluate(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("got status %v, want %v", result.Status, tt.wantStatus)
			}
		})
	}
}

func TestCouplingGate(t *testing.T) {
	tests := []struct {
		name        string
		maxCoupling float64
		coupling    float64
		wantStatus  GateStatus
	}{
		{"pass under threshold", 0.5, 0.25, GatePassed},
		{"pass at threshold", 0.5, 0.5, GatePassed},
		{"fail over threshold", 0.3, 0.5, GateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewCouplingGate(tt.maxCoupling, SeverityAdvisory)
			ctx := &EvalContext{Report: reportWith(0, nil, tt.coupling)}

			result, err := gate.Evaluate(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("got status %v, want %v", result.Status, tt.wantStatus)
			}
			if result.Threshold != tt.maxCoupling {
				t.Errorf("got threshold %v, want %v", result.Threshold, tt.maxCoupling)
			}
		})
	}
}

func TestUnknownKindGate(t *testing.T) {
	gate := NewUnknownKindGate(SeverityAdvisory)

	report := reportWith(0, nil, 0)
	result, err := gate.Evaluate(&EvalContext{Report: report})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != GatePassed {
		t.Errorf("fully classified report: got %v, want passed", result.Status)
	}

	report.Modules = append(report.Modules, modules.Record{Name: "mystery", Kind: modules.KindUnknown})
	result, err = gate.Evaluate(&EvalContext{Report: report})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != GateWarning {
		t.Errorf("unclassified module: got %v, want warning", result.Status)
	}
	if len(result.Details) != 1 || result.Details[0] != "mystery" {
		t.Errorf("details = %v, want the unclassified module name", result.Details)
	}

	empty := &depgraph.Report{Modules: []modules.Record{}}
	result, err = gate.Evaluate(&EvalContext{Report: empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != GateSkipped {
		t.Errorf("empty report: got %v, want skipped", result.Status)
	}
}

func TestPipeline_Run(t *testing.T) {
	p := NewPipeline(
		NewViolationGate(0, SeverityRequired),
		NewCycleGate(false, SeverityRequired),
		NewCouplingGate(0.5, SeverityAdvisory),
	)

	result := p.Run(&EvalContext{Report: reportWith(0, nil, 0.25)})
	if result.Status != GatePassed {
		t.Errorf("clean report: got %v, want passed", result.Status)
	}
	if result.PassedCount != 3 {
		t.Errorf("got %d passed, want 3", result.PassedCount)
	}

	result = p.Run(&EvalContext{Report: reportWith(1, nil, 0.25)})
	if result.Status != GateFailed {
		t.Errorf("violating report: got %v, want failed", result.Status)
	}
	// A required failure does not abort later gates.
	if result.PassedCount != 2 || result.FailedCount != 1 {
		t.Errorf("got %d passed %d failed, want 2/1", result.PassedCount, result.FailedCount)
	}
}

func TestPipeline_CriticalAborts(t *testing.T) {
	p := NewPipeline(
		NewViolationGate(0, SeverityCritical),
		NewCycleGate(false, SeverityRequired),
	)

	result := p.Run(&EvalContext{Report: reportWith(1, nil, 0)})
	if result.Status != GateFailed {
		t.Errorf("got %v, want failed", result.Status)
	}
	if result.SkippedCount != 1 {
		t.Errorf("got %d skipped, want 1 (gate after critical failure)", result.SkippedCount)
	}
	if result.Gates[1].Status != GateSkipped {
		t.Errorf("second gate status = %v, want skipped", result.Gates[1].Status)
	}
}

func TestPipeline_AdvisoryDoesNotBlock(t *testing.T) {
	p := NewPipeline(NewCouplingGate(0.1, SeverityAdvisory))

	result := p.Run(&EvalContext{Report: reportWith(0, nil, 0.9)})
	if result.Status != GatePassed {
		t.Errorf("advisory failure should not fail the pipeline, got %v", result.Status)
	}
	if result.FailedCount != 1 {
		t.Errorf("got %d failed, want 1", result.FailedCount)
	}
}

func TestBuildPipeline(t *testing.T) {
	p := BuildPipeline(config.GateConfig{MaxViolations: 0, AllowCycles: false, MaxCoupling: 0.4})
	result := p.Run(&EvalContext{Report: reportWith(0, nil, 0.2)})

	names := make([]string, 0, len(result.Gates))
	for _, gr := range result.Gates {
		names = append(names, gr.Name)
	}
	want := []string{"violations", "cycles", "coupling", "classification"}
	if len(names) != len(want) {
		t.Fatalf("gates = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("gate %d = %q, want %q", i, names[i], want[i])
		}
	}

	// MaxCoupling of 1.0 means no coupling gate.
	p = BuildPipeline(config.GateConfig{MaxCoupling: 1.0})
	result = p.Run(&EvalContext{Report: reportWith(0, nil, 0.9)})
	for _, gr := range result.Gates {
		if gr.Name == "coupling" {
			t.Error("coupling gate should be omitted at threshold 1.0")
		}
	}
}

func TestFormatReport(t *testing.T) {
	p := BuildPipeline(config.GateConfig{MaxViolations: 0})
	result := p.Run(&EvalContext{Report: reportWith(1, nil, 0)})

	out := FormatReport(result)
	if !strings.Contains(out, "Quality Gate Report") {
		t.Error("missing report header")
	}
	if !strings.Contains(out, "FAILED") {
		t.Error("missing overall status")
	}
	if !strings.Contains(out, "[REQUIRED]") {
		t.Error("missing severity tag")
	}
}
