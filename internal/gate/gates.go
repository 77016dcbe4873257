package gate

import (
	"fmt"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// ViolationGate checks that layering violations stay within a limit.
type ViolationGate struct {
	MaxViolations int
	severity      GateSeverity
}

func NewViolationGate(maxViolations int, severity GateSeverity) *ViolationGate {
	return &ViolationGate{MaxViolations: maxViolations, severity: severity}
}

func (g *ViolationGate) Name() string           { return "violations" }
func (g *ViolationGate) Severity() GateSeverity { return g.severity }
func (g *ViolationGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{
		Name:     g.Name(),
		Severity: g.severity,
	}

	count := len(ctx.Report.DependencyViolations)
	if count <= g.MaxViolations {
		r.Status = GatePassed
		r.Score = 1.0
		r.Message = fmt.Sprintf("Violation count %d within limit %d", count, g.MaxViolations)
	} else {
		r.Status = GateFailed
		r.Score = 0.0
		r.Message = fmt.Sprintf("Violation count %d exceeds limit %d", count, g.MaxViolations)
		for _, v := range ctx.Report.DependencyViolations {
			r.Details = append(r.Details, v.Description)
		}
	}
	return r, nil
}

// CycleGate checks that the module graph has no circular dependencies.
type CycleGate struct {
	AllowCycles bool
	severity    GateSeverity
}

func NewCycleGate(allowCycles bool, severity GateSeverity) *CycleGate {
	return &CycleGate{AllowCycles: allowCycles, severity: severity}
}

func (g *CycleGate) Name() string           { return "cycles" }
func (g *CycleGate) Severity() GateSeverity { return g.severity }
func (g *CycleGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{
		Name:     g.Name(),
		Severity: g.severity,
	}

	if g.AllowCycles {
		r.Status = GateSkipped
		r.Message = "Cycle checking disabled"
		return r, nil
	}

	cycles := ctx.Report.CircularDependencies
	if len(cycles) == 0 {
		r.Status = GatePassed
		r.Score = 1.0
		r.Message = "No circular dependencies"
	} else {
		r.Status = GateFailed
		r.Score = 0.0
		r.Message = fmt.Sprintf("Found %d circular dependency groups", len(cycles))
		for _, cycle := range cycles {
			r.Details = append(r.Details, fmt.Sprintf("%v", cycle))
		}
	}
	return r, nil
}

// CouplingGate checks that the coupling factor stays under a threshold.
type CouplingGate struct {
	MaxCoupling float64
	severity    GateSeverity
}

func NewCouplingGate(maxCoupling float64, severity GateSeverity) *CouplingGate {
	return &CouplingGate{MaxCoupling: maxCoupling, severity: severity}
}

func (g *CouplingGate) Name() string           { return "coupling" }
func (g *CouplingGate) Severity() GateSeverity { return g.severity }
func (g *CouplingGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{
		Name:      g.Name(),
		Severity:  g.severity,
		Threshold: g.MaxCoupling,
	}

	coupling := ctx.Report.Metrics.CouplingFactor
	r.Score = 1.0 - coupling
	if r.Score < 0 {
		r.Score = 0
	}

	if coupling <= g.MaxCoupling {
		r.Status = GatePassed
		r.Message = fmt.Sprintf("Coupling factor %.2f within threshold %.2f", coupling, g.MaxCoupling)
	} else {
		r.Status = GateFailed
		r.Message = fmt.Sprintf("Coupling factor %.2f exceeds threshold %.2f", coupling, g.MaxCoupling)
	}
	return r, nil
}

// UnknownKindGate warns when modules resist classification. Unclassified
// modules exempt their edges from the layering rules, so a growing Unknown
// count silently erodes the audit.
type UnknownKindGate struct {
	severity GateSeverity
}

func NewUnknownKindGate(severity GateSeverity) *UnknownKindGate {
	return &UnknownKindGate{severity: severity}
}

func (g *UnknownKindGate) Name() string           { return "classification" }
func (g *UnknownKindGate) Severity() GateSeverity { return g.severity }
func (g *UnknownKindGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{
		Name:     g.Name(),
		Severity: g.severity,
	}

	total := len(ctx.Report.Modules)
	if total == 0 {
		r.Status = GateSkipped
		r.Message = "No modules to evaluate"
		return r, nil
	}

	unknown := 0
	for _, rec := range ctx.Report.Modules {
		if rec.Kind == modules.KindUnknown {
			unknown++
			r.Details = append(r.Details, rec.Name)
		}
	}
	r.Score = float64(total-unknown) / float64(total)

	if unknown == 0 {
		r.Status = GatePassed
		r.Message = "All modules classified"
	} else {
		r.Status = GateWarning
		r.Message = fmt.Sprintf("%d of %d modules unclassified", unknown, total)
	}
	return r, nil
}
