package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

func TestValidate_Empty(t *testing.T) {
	cfg := &Config{}
	warnings := cfg.Validate()
	if len(warnings) != 0 {
		t.Errorf("empty config should have no warnings, got %v", warnings)
	}
}

func TestValidate_UnknownOverrideKind(t *testing.T) {
	cfg := &Config{
		Analyzer: AnalyzerConfig{
			KindOverrides: map[string]string{"AppModule": "Widget"},
		},
	}
	warnings := cfg.Validate()
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "Widget") {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected warning about unknown kind 'Widget'")
	}
}

func TestValidate_MaxCoupling(t *testing.T) {
	tests := []struct {
		name     string
		coupling float64
		want     bool // true = should warn
	}{
		{"zero", 0, false},
		{"mid", 0.5, false},
		{"max", 1.0, false},
		{"negative", -0.1, true},
		{"too_high", 1.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Gate: GateConfig{MaxCoupling: tt.coupling}}
			hasWarn := false
			for _, w := range cfg.Validate() {
				if strings.Contains(w, "max_coupling") {
					hasWarn = true
				}
			}
			if hasWarn != tt.want {
				t.Errorf("max_coupling=%.1f: hasWarn=%v, want=%v", tt.coupling, hasWarn, tt.want)
			}
		})
	}
}

func TestValidate_NegativeMaxViolations(t *testing.T) {
	cfg := &Config{Gate: GateConfig{MaxViolations: -1}}
	found := false
	for _, w := range cfg.Validate() {
		if strings.Contains(w, "max_violations") {
			found = true
		}
	}
	if !found {
		t.Error("expected warning about negative max_violations")
	}
}

func TestValidate_GraphWithoutUsername(t *testing.T) {
	cfg := &Config{Graph: GraphConfig{URI: "bolt://localhost:7687"}}
	found := false
	for _, w := range cfg.Validate() {
		if strings.Contains(w, "username") {
			found = true
		}
	}
	if !found {
		t.Error("expected warning about missing graph username")
	}
}

func TestResolveOverrides(t *testing.T) {
	cfg := AnalyzerConfig{
		KindOverrides: map[string]string{
			"AppModule":    "Core",
			"AdminModule":  "feature",
			"BrokenModule": "Widget",
		},
	}

	resolved := cfg.ResolveOverrides()
	if resolved["AppModule"] != modules.KindCore {
		t.Errorf("AppModule = %v, want Core", resolved["AppModule"])
	}
	// Kind parsing is case-insensitive.
	if resolved["AdminModule"] != modules.KindFeature {
		t.Errorf("AdminModule = %v, want Feature", resolved["AdminModule"])
	}
	// Unparseable overrides are dropped rather than mapped to Unknown.
	if _, ok := resolved["BrokenModule"]; ok {
		t.Error("unparseable override should be dropped")
	}

	if got := (AnalyzerConfig{}).ResolveOverrides(); got != nil {
		t.Errorf("no overrides should resolve to nil, got %v", got)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Temporal.TaskQueue != "angular-analyzer" {
		t.Errorf("TaskQueue = %q", cfg.Temporal.TaskQueue)
	}
	if cfg.Gate.MaxCoupling != 1.0 {
		t.Errorf("MaxCoupling = %v", cfg.Gate.MaxCoupling)
	}
	if warnings := cfg.Validate(); len(warnings) != 0 {
		t.Errorf("defaults should validate cleanly, got %v", warnings)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyzer.yaml")
	content := `
analyzer:
  exclude:
    - coverage
  kind_overrides:
    AppModule: Core
gate:
  max_violations: 3
  allow_cycles: true
  max_coupling: 0.4
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Analyzer.Exclude) != 1 || cfg.Analyzer.Exclude[0] != "coverage" {
		t.Errorf("Exclude = %v", cfg.Analyzer.Exclude)
	}
	if cfg.Gate.MaxViolations != 3 || !cfg.Gate.AllowCycles {
		t.Errorf("Gate = %+v", cfg.Gate)
	}
	if cfg.Gate.MaxCoupling != 0.4 {
		t.Errorf("MaxCoupling = %v", cfg.Gate.MaxCoupling)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
	// Unset sections fall back to defaults.
	if cfg.Temporal.Host != "localhost:7233" {
		t.Errorf("Temporal.Host = %q", cfg.Temporal.Host)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
