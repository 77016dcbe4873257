package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

// Config holds all application configuration.
type Config struct {
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	Gate     GateConfig     `mapstructure:"gate"`
	Graph    GraphConfig    `mapstructure:"graph"`
	Temporal TemporalConfig `mapstructure:"temporal"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Log      LogConfig      `mapstructure:"log"`
}

type AnalyzerConfig struct {
	// Directory names skipped during discovery in addition to the
	// built-in defaults (node_modules, dist, .git).
	Exclude []string `mapstructure:"exclude"`

	// Explicit module classifications. Keys are module names, values are
	// Core, Shared or Feature.
	KindOverrides map[string]string `mapstructure:"kind_overrides"`
}

// ResolveOverrides converts the configured classifications into typed kinds.
// Unparseable values are dropped so a typo never reclassifies a module.
func (c AnalyzerConfig) ResolveOverrides() map[string]modules.Kind {
	if len(c.KindOverrides) == 0 {
		return nil
	}
	resolved := make(map[string]modules.Kind, len(c.KindOverrides))
	for name, value := range c.KindOverrides {
		if kind, ok := modules.ParseKind(value); ok {
			resolved[name] = kind
		}
	}
	return resolved
}

type GateConfig struct {
	MaxViolations int     `mapstructure:"max_violations"`
	AllowCycles   bool    `mapstructure:"allow_cycles"`
	MaxCoupling   float64 `mapstructure:"max_coupling"`
}

type GraphConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type TemporalConfig struct {
	Host      string `mapstructure:"host"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Environment string  `mapstructure:"environment"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	for name, value := range c.Analyzer.KindOverrides {
		if _, ok := modules.ParseKind(value); !ok {
			warnings = append(warnings, fmt.Sprintf("kind override for '%s' has unknown kind '%s'", name, value))
		}
	}

	if c.Gate.MaxViolations < 0 {
		warnings = append(warnings, fmt.Sprintf("gate max_violations %d is negative", c.Gate.MaxViolations))
	}

	// Coupling factor is a ratio in [0, 1]; a threshold outside that range
	// either can never trip or always trips.
	if c.Gate.MaxCoupling < 0 || c.Gate.MaxCoupling > 1 {
		warnings = append(warnings, fmt.Sprintf("gate max_coupling %.2f is outside range [0.0, 1.0]", c.Gate.MaxCoupling))
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		warnings = append(warnings, fmt.Sprintf("tracing sample_rate %.2f is outside range [0.0, 1.0]", c.Tracing.SampleRate))
	}

	if c.Graph.URI != "" && c.Graph.Username == "" {
		warnings = append(warnings, "graph uri is configured but username is empty")
	}

	return warnings
}

// Defaults returns the configuration used when no config file is given.
func Defaults() *Config {
	return &Config{
		Gate: GateConfig{
			MaxViolations: 0,
			AllowCycles:   false,
			MaxCoupling:   1.0,
		},
		Temporal: TemporalConfig{
			Host:      "localhost:7233",
			Namespace: "default",
			TaskQueue: "angular-analyzer",
		},
		Tracing: TracingConfig{
			SampleRate:  1.0,
			Environment: "development",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from file and environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("gate.max_coupling", 1.0)
	v.SetDefault("temporal.host", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "angular-analyzer")
	v.SetDefault("tracing.sample_rate", 1.0)
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Validate configuration and print warnings
	if warnings := cfg.Validate(); len(warnings) > 0 {
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}
	}

	return &cfg, nil
}
