// Package rules provides the LaTeX lint rules behind the pre-commit hooks.
//
// Rules are organized by category:
//   - spacing: abbreviation and citation spacing (SP01-SP03)
//   - references: cleveref usage and labels (RF01-RF03)
//   - convention: quotation marks, spelling, banned words (CV01-CV03)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/latexhooks/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/latexhooks/pkg/lint/rules/spacing"
package rules
