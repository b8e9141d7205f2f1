package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

// ResolveRule finds a registered rule by ID or hook name, ignoring case.
func ResolveRule(name string) (lint.Rule, error) {
	name = strings.TrimSpace(name)
	for _, candidate := range []string{name, strings.ToUpper(name), strings.ToLower(name)} {
		if r, ok := lint.LookupRule(candidate); ok {
			return r, nil
		}
	}
	return nil, fmt.Errorf("unknown rule %q", name)
}

// BuildLintConfig converts the loaded settings into a lint.Config.
// Rule names that match no registered rule are configuration errors.
func BuildLintConfig(c *Config) (*lint.Config, error) {
	lintCfg := lint.NewConfig()
	if c == nil || c.Lint == nil {
		return lintCfg, nil
	}
	l := c.Lint

	if l.MinSeverity != "" {
		sev, ok := lint.ParseSeverity(l.MinSeverity)
		if !ok {
			return nil, fmt.Errorf("invalid severity %q", l.MinSeverity)
		}
		lintCfg.SetMinSeverity(sev)
	}

	// Enable clears a Disable, so disabling comes last and wins.
	for _, name := range l.Enabled {
		r, err := ResolveRule(name)
		if err != nil {
			return nil, err
		}
		lintCfg.Enable(r.ID())
	}
	for _, name := range l.Disabled {
		r, err := ResolveRule(name)
		if err != nil {
			return nil, err
		}
		lintCfg.Disable(r.ID())
	}

	for _, name := range sortedKeys(l.Severity) {
		r, err := ResolveRule(name)
		if err != nil {
			return nil, err
		}
		sev, ok := lint.ParseSeverity(l.Severity[name])
		if !ok {
			return nil, fmt.Errorf("invalid severity %q for rule %s", l.Severity[name], name)
		}
		lintCfg.SetSeverity(r.ID(), sev)
	}

	// Keys spelled as hook names come from the config file only; flags and
	// env always use IDs. Applying aliases first lets the ID layer win.
	names := sortedKeys(l.Rules)
	sort.SliceStable(names, func(i, j int) bool {
		return !isRuleID(names[i]) && isRuleID(names[j])
	})
	for _, name := range names {
		r, err := ResolveRule(name)
		if err != nil {
			return nil, err
		}
		lintCfg.SetRuleOptions(r.ID(), l.Rules[name])
	}

	return lintCfg, nil
}

func isRuleID(name string) bool {
	_, ok := lint.GetRuleByID(name)
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
