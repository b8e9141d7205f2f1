package spacing

import (
	"strings"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
	"github.com/leapstack-labs/latexhooks/pkg/lint/internal/tex"
)

func init() {
	lint.Register(TildeBeforeCite)
}

const (
	tildeBeforeCiteID       = "SP03"
	tildeBeforeCiteSeverity = lint.SeverityWarning
)

// TildeBeforeCite requires a non-breaking space before citation macros.
var TildeBeforeCite = lint.RuleDef{
	ID:          tildeBeforeCiteID,
	Name:        "spacing.tilde_before_cite",
	Hook:        "tilde-before-cite",
	Group:       "spacing",
	Description: "Citation macros must be preceded by a tilde.",
	Severity:    tildeBeforeCiteSeverity,
	Options:     []lint.OptionDef{citeCommandsOption},
	Validate:    validateCiteCommands,
	Check:       checkTildeBeforeCite,

	Rationale:   `The tie keeps the citation on the same line as the word it belongs to.`,
	BadExample:  `as shown before\cite{knuth84}`,
	GoodExample: `as shown before~\cite{knuth84}`,
	Fix:         `Replace the space (or nothing) before the macro with "~".`,
}

func checkTildeBeforeCite(src *lint.Source, opts map[string]any) []lint.Diagnostic {
	o, err := parseCiteOptions(opts)
	if err != nil {
		return nil
	}
	re, err := tex.CitePattern(o.Commands)
	if err != nil {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for _, m := range src.FindAll(re) {
		line := src.Line(m.Line)
		cmdStart, cmdEnd := m.Span(re, "cmd")
		if strings.TrimSpace(line[:cmdStart]) == "" {
			continue
		}
		switch tex.RuneBefore(line, cmdStart) {
		case '~', '(', '[', '{':
			continue
		}
		cmd := line[cmdStart:cmdEnd]
		d := src.Diagnostic(tildeBeforeCiteID, tildeBeforeCiteSeverity, m.Line, cmdStart, cmdEnd,
			"missing ~ before "+cmd)
		d.Hint = "~" + cmd
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}
