package spacing

import (
	"fmt"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
	"github.com/leapstack-labs/latexhooks/pkg/lint/internal/tex"
)

func init() {
	lint.Register(NoSpaceBeforeCite)
}

// citeCommandsOption is shared by the citation rules.
var citeCommandsOption = lint.OptionDef{
	Key:     "commands",
	Flag:    "command",
	Kind:    lint.OptionStringList,
	Default: []string{"cite"},
	Usage:   "citation macro name without backslash (repeatable)",
}

const (
	noSpaceBeforeCiteID       = "SP02"
	noSpaceBeforeCiteSeverity = lint.SeverityWarning
)

// NoSpaceBeforeCite flags whitespace right before a citation macro.
// It overlaps with SP03, so it only runs under "lint" when enabled.
var NoSpaceBeforeCite = lint.RuleDef{
	ID:          noSpaceBeforeCiteID,
	Name:        "spacing.no_space_before_cite",
	Hook:        "no-space-before-cite",
	Group:       "spacing",
	Description: "No whitespace immediately before a citation macro.",
	Severity:    noSpaceBeforeCiteSeverity,
	Options:     []lint.OptionDef{citeCommandsOption},
	OptIn:       true,
	Validate:    validateCiteCommands,
	Check:       checkNoSpaceBeforeCite,

	Rationale:   `A normal space before \cite allows a line break between the text and the citation.`,
	BadExample:  `as shown before \cite{knuth84}`,
	GoodExample: `as shown before~\cite{knuth84}`,
}

type citeOptions struct {
	Commands []string `option:"commands"`
}

func parseCiteOptions(opts map[string]any) (citeOptions, error) {
	o := citeOptions{Commands: tex.DefaultCiteCommands}
	err := lint.DecodeOptions(opts, &o)
	return o, err
}

func validateCiteCommands(opts map[string]any) error {
	o, err := parseCiteOptions(opts)
	if err != nil {
		return err
	}
	if _, err := tex.CitePattern(o.Commands); err != nil {
		return fmt.Errorf("invalid citation commands: %w", err)
	}
	return nil
}

func checkNoSpaceBeforeCite(src *lint.Source, opts map[string]any) []lint.Diagnostic {
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
		ws := cmdStart
		for ws > 0 && (line[ws-1] == ' ' || line[ws-1] == '\t') {
			ws--
		}
		// Nothing but indentation before the macro.
		if ws == cmdStart || ws == 0 {
			continue
		}
		cmd := line[cmdStart:cmdEnd]
		d := src.Diagnostic(noSpaceBeforeCiteID, noSpaceBeforeCiteSeverity, m.Line, ws, cmdEnd,
			"space before "+cmd)
		d.Hint = "~" + cmd
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}
