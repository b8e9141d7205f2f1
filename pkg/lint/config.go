package lint

// Config controls which rules run, their severity and their options.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// EnabledRules contains opt-in rule IDs to run
	EnabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity

	// RuleOptions holds rule-specific options keyed by rule ID
	RuleOptions map[string]map[string]any

	// MinSeverity drops diagnostics less severe than this level
	MinSeverity Severity
}

// NewConfig creates a default configuration with all non-opt-in rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		EnabledRules:      make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		RuleOptions:       make(map[string]map[string]any),
		MinSeverity:       SeverityHint,
	}
}

// IsDisabled returns true if the rule was explicitly disabled.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// IsActive reports whether the rule should run. Opt-in rules need an
// explicit Enable; a Disable always wins.
func (c *Config) IsActive(r Rule) bool {
	if c.IsDisabled(r.ID()) {
		return false
	}
	if r.OptIn() {
		return c != nil && c.EnabledRules[r.ID()]
	}
	return true
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule, or nil.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// Enable turns on an opt-in rule and clears a previous Disable.
func (c *Config) Enable(ruleID string) *Config {
	c.EnabledRules[ruleID] = true
	delete(c.DisabledRules, ruleID)
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions merges options into the rule's option map.
// Later calls override earlier keys.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	dst := c.RuleOptions[ruleID]
	if dst == nil {
		dst = make(map[string]any, len(opts))
		c.RuleOptions[ruleID] = dst
	}
	for k, v := range opts {
		dst[k] = v
	}
	return c
}

// SetMinSeverity sets the least severe level that is still reported.
func (c *Config) SetMinSeverity(sev Severity) *Config {
	c.MinSeverity = sev
	return c
}
