package references

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
	"github.com/leapstack-labs/latexhooks/pkg/lint/internal/tex"
)

func init() {
	lint.Register(CleverefCapitalization)
}

const (
	cleverefCapitalizationID       = "RF01"
	cleverefCapitalizationSeverity = lint.SeverityWarning
)

// CleverefCapitalization checks that \Cref starts sentences and \cref is
// used everywhere else.
var CleverefCapitalization = lint.RuleDef{
	ID:          cleverefCapitalizationID,
	Name:        "references.cleveref_capitalization",
	Hook:        "cleveref-capitalization",
	Group:       "references",
	Description: "Use \\Cref at the start of a sentence and \\cref inside one.",
	Severity:    cleverefCapitalizationSeverity,
	Options: []lint.OptionDef{
		{
			Key:     "mid_sentence",
			Kind:    lint.OptionBool,
			Default: true,
			Usage:   `also flag \Cref in the middle of a sentence`,
		},
	},
	Check: checkCleverefCapitalization,

	Rationale: `cleveref prints the reference name ("figure", "section") in lower case for
\cref. At the start of a sentence that produces a lower-case first word.`,
	BadExample:  `The model is fast. \cref{fig:speed} shows why.`,
	GoodExample: `The model is fast. \Cref{fig:speed} shows why.`,
}

var reCleveref = regexp.MustCompile(`\\(?P<cmd>[cC](?:ref|refrange|pageref|pagerefrange))\b`)

type cleverefOptions struct {
	MidSentence bool `option:"mid_sentence"`
}

func checkCleverefCapitalization(src *lint.Source, opts map[string]any) []lint.Diagnostic {
	o := cleverefOptions{MidSentence: true}
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for _, m := range src.FindAll(reCleveref) {
		cmd := m.Group(reCleveref, "cmd")
		upper := cmd[0] == 'C'
		atStart := tex.AtSentenceStart(src.Lines, m.Line-1, m.Start)

		var message, hint string
		switch {
		case atStart && !upper:
			message = `\` + cmd + " at the start of a sentence"
			hint = `\C` + cmd[1:]
		case !atStart && upper && o.MidSentence:
			message = `\` + cmd + " in the middle of a sentence"
			hint = `\` + strings.ToLower(cmd[:1]) + cmd[1:]
		default:
			continue
		}
		d := src.Diagnostic(cleverefCapitalizationID, cleverefCapitalizationSeverity,
			m.Line, m.Start, m.End, message)
		d.Hint = hint
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}
