package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/depgraph"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// kindOrder fixes the section ordering of the modules-by-kind listing.
var kindOrder = []modules.Kind{
	modules.KindCore,
	modules.KindShared,
	modules.KindFeature,
	modules.KindUnknown,
}

// RenderReport writes the human-readable analysis report. Sections follow a
// fixed order and modules keep their report order within each kind, so the
// rendering is reproducible for a given report.
func RenderReport(w io.Writer, report *depgraph.Report) {
	s := DefaultStyles()

	fmt.Fprintln(w, s.Header.Render("=== Angular Module Analysis Report ==="))
	fmt.Fprintln(w)

	renderMetrics(w, s, report.Metrics)
	renderViolations(w, s, report.DependencyViolations)
	renderCycles(w, s, report.CircularDependencies)
	renderModules(w, s, report.Modules)

	if len(report.DependencyViolations) == 0 && len(report.CircularDependencies) == 0 {
		fmt.Fprintln(w, s.Success.Render("No dependency violations found!"))
	}
}

func renderMetrics(w io.Writer, s *Styles, m depgraph.Metrics) {
	fmt.Fprintln(w, s.Section.Render("Architecture Metrics"))
	fmt.Fprintf(w, "  Total Modules:   %d\n", m.TotalModules)
	fmt.Fprintf(w, "  Core Modules:    %d\n", m.CoreModules)
	fmt.Fprintf(w, "  Shared Modules:  %d\n", m.SharedModules)
	fmt.Fprintf(w, "  Feature Modules: %d\n", m.FeatureModules)
	fmt.Fprintf(w, "  Average Dependencies per Module: %.2f\n", m.AverageDependenciesPerModule)
	fmt.Fprintf(w, "  Max Dependency Depth: %d\n", m.MaxDependencyDepth)
	fmt.Fprintf(w, "  Coupling Factor: %.2f\n", m.CouplingFactor)
	fmt.Fprintln(w)
}

func renderViolations(w io.Writer, s *Styles, violations []depgraph.Violation) {
	if len(violations) == 0 {
		return
	}
	fmt.Fprintln(w, s.Section.Render("Dependency Violations"))
	for _, v := range violations {
		arrow := fmt.Sprintf("%s -> %s", v.FromModule, v.ToModule)
		fmt.Fprintf(w, "  %s: %s\n", s.Violation.Render(arrow), v.Description)
	}
	fmt.Fprintln(w)
}

func renderCycles(w io.Writer, s *Styles, cycles [][]string) {
	if len(cycles) == 0 {
		return
	}
	fmt.Fprintln(w, s.Section.Render("Circular Dependencies"))
	for i, cycle := range cycles {
		path := strings.Join(cycle, " -> ")
		fmt.Fprintf(w, "  %d: %s\n", i+1, s.Cycle.Render(path+" -> "+cycle[0]))
	}
	fmt.Fprintln(w)
}

func renderModules(w io.Writer, s *Styles, records []modules.Record) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintln(w, s.Section.Render("Modules by Type"))
	for _, kind := range kindOrder {
		var group []modules.Record
		for _, rec := range records {
			if rec.Kind == kind {
				group = append(group, rec)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s:\n", s.KindStyle(kind).Render(string(kind)))
		for _, rec := range group {
			fmt.Fprintf(w, "    - %s (%d dependencies)\n", rec.Name, len(rec.Dependencies))
		}
	}
	fmt.Fprintln(w)
}
