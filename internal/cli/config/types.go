// Package config provides configuration management for the latexhooks CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Jobs         int         `koanf:"jobs"`
	Context      bool        `koanf:"context"`
	Lint         *LintConfig `koanf:"lint"`
}

// LintConfig selects rules and sets their severities and options.
// Rule maps are keyed by rule ID (SP01) or hook name (abbreviation-spacing).
type LintConfig struct {
	Disabled    []string                  `koanf:"disabled"`
	Enabled     []string                  `koanf:"enabled"`
	Severity    map[string]string         `koanf:"severity"`
	MinSeverity string                    `koanf:"min_severity"`
	Rules       map[string]map[string]any `koanf:"rules"`
}

// Default configuration values.
const (
	DefaultConfigFile  = ".latexhooks.yaml"
	DefaultOutput      = "auto" // TTY=text, otherwise plain
	DefaultJobs        = 1
	DefaultMinSeverity = "hint"
	EnvPrefix          = "LATEXHOOKS_"
)

// configFileNames are tried in order in every searched directory.
var configFileNames = []string{DefaultConfigFile, ".latexhooks.yml"}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		Jobs:         DefaultJobs,
		Lint: &LintConfig{
			MinSeverity: DefaultMinSeverity,
		},
	}
}
