package lint

import (
	"fmt"
	"sort"
	"sync"
)

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = &Registry{
	rules: make(map[string]Rule),
	hooks: make(map[string]string),
}

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule   // keyed by ID
	hooks map[string]string // hook name -> rule ID
}

// Register adds a rule to the global registry.
// Call this from init() functions in rule packages. Registering two rules
// with the same ID or hook panics, since it can only be a programming error.
func Register(def RuleDef) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	if _, dup := globalRegistry.rules[def.ID]; dup {
		panic(fmt.Sprintf("lint: rule %s registered twice", def.ID))
	}
	if def.Hook != "" {
		if other, dup := globalRegistry.hooks[def.Hook]; dup {
			panic(fmt.Sprintf("lint: hook %q already used by %s", def.Hook, other))
		}
		globalRegistry.hooks[def.Hook] = def.ID
	}
	globalRegistry.rules[def.ID] = WrapRuleDef(def)
}

// AllRules returns all registered rules sorted by ID.
func AllRules() []Rule {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]Rule, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID() < rules[j].ID() })
	return rules
}

// AllRuleInfo returns metadata for all registered rules sorted by ID.
func AllRuleInfo() []RuleInfo {
	rules := AllRules()
	infos := make([]RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, GetRuleInfo(r))
	}
	return infos
}

// GetRuleByID returns a rule by its ID.
func GetRuleByID(id string) (Rule, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[id]
	return rule, ok
}

// GetRuleByHook returns the rule behind a hook name.
func GetRuleByHook(hook string) (Rule, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	id, ok := globalRegistry.hooks[hook]
	if !ok {
		return nil, false
	}
	return globalRegistry.rules[id], true
}

// LookupRule resolves a rule by ID or hook name.
func LookupRule(idOrHook string) (Rule, bool) {
	if r, ok := GetRuleByID(idOrHook); ok {
		return r, true
	}
	return GetRuleByHook(idOrHook)
}

// GetRulesByGroup returns all rules in a group sorted by ID.
func GetRulesByGroup(group string) []Rule {
	var rules []Rule
	for _, rule := range AllRules() {
		if rule.Group() == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}
