// Package lint provides the rule framework behind the LaTeX pre-commit hooks.
//
// # Architecture
//
// The package holds the shared contracts:
//
//  1. RuleDef and the Rule interface: one pure scan function per rule
//  2. The global registry, filled by init() functions in rule packages
//  3. Config: disabled/enabled rules, severity overrides, rule options
//  4. Runner: loads files, applies the active rules, collects diagnostics
//  5. Formatting: "path:line: message" lines and the exit status
//
// # Rule Registration
//
// Rules are registered via init() functions when their package is imported:
//
//	import _ "github.com/leapstack-labs/latexhooks/pkg/lint/rules"
//
// # Rule Categories
//
//   - SP (Spacing): abbreviations and citation spacing
//   - RF (References): cross-reference macros and labels
//   - CV (Convention): quotation marks, spelling, banned words
//
// # Running Rules
//
//	cfg := lint.NewConfig()
//	cfg.SetRuleOptions("CV02", map[string]any{"emph": []string{"et al."}})
//	runner, err := lint.NewRunner(cfg)
//	if err != nil {
//		return err // bad option, nothing was read
//	}
//	diags, err := runner.Run(ctx, files)
//
// # Creating Custom Rules
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "custom.my_rule",
//		Hook:        "my-rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    lint.SeverityWarning,
//		Check:       checkMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
