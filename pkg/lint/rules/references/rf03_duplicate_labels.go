package references

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

func init() {
	lint.Register(DuplicateLabels)
}

const (
	duplicateLabelsID       = "RF03"
	duplicateLabelsSeverity = lint.SeverityError
)

// DuplicateLabels reports labels defined twice in the same file.
var DuplicateLabels = lint.RuleDef{
	ID:          duplicateLabelsID,
	Name:        "references.duplicate_labels",
	Hook:        "duplicate-labels",
	Group:       "references",
	Description: "A \\label must be defined only once per file.",
	Severity:    duplicateLabelsSeverity,
	Check:       checkDuplicateLabels,

	Rationale: `LaTeX only warns about multiply defined labels and every \ref then points to
the last definition.`,
	BadExample: `\label{fig:speed}
...
\label{fig:speed}`,
	GoodExample: `\label{fig:speed}
...
\label{fig:memory}`,
}

var reLabelDef = regexp.MustCompile(`\\label\{\s*(?P<name>[^\s}]*?)\s*\}`)

func checkDuplicateLabels(src *lint.Source, _ map[string]any) []lint.Diagnostic {
	first := make(map[string]int)

	var diagnostics []lint.Diagnostic
	for _, m := range src.FindAll(reLabelDef) {
		name := m.Group(reLabelDef, "name")
		if name == "" {
			continue
		}
		line, seen := first[name]
		if !seen {
			first[name] = m.Line
			continue
		}
		diagnostics = append(diagnostics, src.Diagnostic(duplicateLabelsID, duplicateLabelsSeverity,
			m.Line, m.Start, m.End, fmt.Sprintf("label '%s' already defined on line %d", name, line)))
	}
	return diagnostics
}
