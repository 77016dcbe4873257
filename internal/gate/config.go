package gate

import (
	"fmt"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/config"
)

// BuildPipeline constructs a gate pipeline from configuration. Violations
// and cycles block the build; coupling and classification only advise.
func BuildPipeline(cfg config.GateConfig) *Pipeline {
	p := NewPipeline()

	p.AddGate(NewViolationGate(cfg.MaxViolations, SeverityRequired))
	p.AddGate(NewCycleGate(cfg.AllowCycles, SeverityRequired))

	if cfg.MaxCoupling > 0 && cfg.MaxCoupling < 1 {
		p.AddGate(NewCouplingGate(cfg.MaxCoupling, SeverityAdvisory))
	}

	p.AddGate(NewUnknownKindGate(SeverityAdvisory))

	return p
}

// FormatReport returns a human-readable quality gate report.
func FormatReport(result *PipelineResult) string {
	var s string
	s += "╔══════════════════════════════════════════╗\n"
	s += "║        Quality Gate Report               ║\n"
	s += "╠══════════════════════════════════════════╣\n"

	for _, gr := range result.Gates {
		icon := "✓"
		switch gr.Status {
		case GateFailed:
			icon = "✗"
		case GateSkipped:
			icon = "○"
		case GateWarning:
			icon = "⚠"
		}

		severity := ""
		switch gr.Severity {
		case SeverityCritical:
			severity = "[CRITICAL]"
		case SeverityRequired:
			severity = "[REQUIRED]"
		case SeverityAdvisory:
			severity = "[ADVISORY]"
		}

		s += fmt.Sprintf("║ %s %-14s %-10s %s\n", icon, gr.Name, severity, gr.Message)
		for _, d := range gr.Details {
			s += fmt.Sprintf("║   → %s\n", d)
		}
	}

	s += "╠══════════════════════════════════════════╣\n"
	status := "PASSED"
	if result.Status == GateFailed {
		status = "FAILED"
	}
	s += fmt.Sprintf("║ Result: %s (%s)\n", status, result.Summary)
	s += "╚══════════════════════════════════════════╝\n"

	return s
}
