package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// Color constants shared by the console renderer.
const (
	ColorBlue   = "#58a6ff"
	ColorGreen  = "#3fb950"
	ColorRed    = "#f85149"
	ColorYellow = "#d29922"
	ColorGray   = "#8b949e"
	ColorCyan   = "#39c5cf"
)

// Styles holds the lipgloss styles for the console report.
type Styles struct {
	Header    lipgloss.Style
	Section   lipgloss.Style
	Violation lipgloss.Style
	Cycle     lipgloss.Style
	Success   lipgloss.Style
	Dim       lipgloss.Style

	Core    lipgloss.Style
	Shared  lipgloss.Style
	Feature lipgloss.Style
	Unknown lipgloss.Style
}

// DefaultStyles creates the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCyan)),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorBlue)),
		Violation: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Cycle:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),

		Core:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlue)),
		Shared:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Feature: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Unknown: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
	}
}

// KindStyle returns the style for a module kind.
func (s *Styles) KindStyle(kind modules.Kind) lipgloss.Style {
	switch kind {
	case modules.KindCore:
		return s.Core
	case modules.KindShared:
		return s.Shared
	case modules.KindFeature:
		return s.Feature
	default:
		return s.Unknown
	}
}
