package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// KeyAnnotation is the pflag annotation naming the config key a flag sets.
// Flags without it map to their own name in snake_case.
const KeyAnnotation = "latexhooks_config_key"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// BindFlag routes a flag to a nested config key such as
// "lint.rules.CV02.regex".
func BindFlag(flags *pflag.FlagSet, name, key string) error {
	return flags.SetAnnotation(name, KeyAnnotation, []string{key})
}

// RuleOptionKey returns the config key of a rule option.
func RuleOptionKey(ruleID, option string) string {
	return "lint.rules." + ruleID + "." + option
}

// configIn returns the config file in dir, or "".
func configIn(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")
	configFileUsed = ""

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"verbose":           false,
		"output":            DefaultOutput,
		"jobs":              DefaultJobs,
		"context":           false,
		"lint.min_severity": DefaultMinSeverity,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file. An explicit path must exist.
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		configFileUsed = cfgFile
	} else if cwd, err := os.Getwd(); err == nil {
		configFileUsed = findConfigUpward(cwd)
	}
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (LATEXHOOKS_ prefix)
	// Transform: LATEXHOOKS_JOBS -> jobs, LATEXHOOKS_LINT__RULES__RF02__LOOKAHEAD -> lint.rules.RF02.lookahead
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if keys := f.Annotations[KeyAnnotation]; len(keys) > 0 {
				key = keys[0]
			}
			return key, flagValue(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Lint == nil {
		cfg.Lint = &LintConfig{MinSeverity: DefaultMinSeverity}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// envKey maps an environment variable name to a config key. A double
// underscore separates levels; rule segments are resolved to rule IDs.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.Split(key, "__")
	if len(parts) >= 3 && parts[0] == "lint" && (parts[1] == "rules" || parts[1] == "severity") {
		parts[2] = envRuleKey(parts[2])
	}
	return strings.Join(parts, ".")
}

// envRuleKey resolves a rule segment of an environment variable. Variable
// names cannot hold '-', so hook names arrive with '_' instead.
func envRuleKey(name string) string {
	if r, err := ResolveRule(strings.ReplaceAll(name, "_", "-")); err == nil {
		return r.ID()
	}
	return CanonicalRuleKey(name)
}

// CanonicalRuleKey resolves a rule ID or hook name to the rule ID.
// Unknown names are upper-cased so they compare like IDs.
func CanonicalRuleKey(name string) string {
	if r, err := ResolveRule(name); err == nil {
		return r.ID()
	}
	return strings.ToUpper(strings.TrimSpace(name))
}

// flagValue extends posflag.FlagVal with repeatable string flags, which
// must keep commas inside values such as regex patterns.
func flagValue(flags *pflag.FlagSet, f *pflag.Flag) interface{} {
	switch f.Value.Type() {
	case "stringArray":
		v, _ := flags.GetStringArray(f.Name)
		return v
	case "stringSlice":
		v, _ := flags.GetStringSlice(f.Name)
		return v
	}
	return posflag.FlagVal(flags, f)
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
