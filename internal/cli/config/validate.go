package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

// OutputModes lists the accepted values of the output setting.
var OutputModes = []string{"auto", "text", "plain"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OutputFormat != "" && !slices.Contains(OutputModes, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of %v)", c.OutputFormat, OutputModes)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.Lint == nil {
		return nil
	}
	if c.Lint.MinSeverity != "" {
		if _, ok := lint.ParseSeverity(c.Lint.MinSeverity); !ok {
			return fmt.Errorf("invalid severity %q", c.Lint.MinSeverity)
		}
	}
	for id, sev := range c.Lint.Severity {
		if _, ok := lint.ParseSeverity(sev); !ok {
			return fmt.Errorf("invalid severity %q for rule %s", sev, id)
		}
	}
	return nil
}
