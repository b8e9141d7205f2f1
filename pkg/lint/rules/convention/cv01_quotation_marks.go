package convention

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

func init() {
	lint.Register(QuotationMarks)
}

const (
	quotationMarksID       = "CV01"
	quotationMarksSeverity = lint.SeverityWarning
)

// QuotationMarks flags ASCII quotes that TeX typesets as closing quotes.
var QuotationMarks = lint.RuleDef{
	ID:          quotationMarksID,
	Name:        "convention.quotation_marks",
	Hook:        "quotation-marks",
	Group:       "convention",
	Description: "Use a quoting macro instead of ASCII quotation marks.",
	Severity:    quotationMarksSeverity,
	Options: []lint.OptionDef{
		{
			Key:     "macro",
			Kind:    lint.OptionString,
			Default: `\enquote`,
			Usage:   "quoting macro suggested in messages",
		},
		{
			Key:     "ignore_babel_shorthands",
			Kind:    lint.OptionBool,
			Default: false,
			Usage:   `accept babel shorthands such as "a and "-`,
		},
	},
	Check: checkQuotationMarks,

	Rationale: `TeX renders both ends of "text" as closing quotes. A macro such as
\enquote from csquotes picks the right glyphs for the document language.`,
	BadExample:  `the so-called "kernel trick"`,
	GoodExample: `the so-called \enquote{kernel trick}`,
}

var (
	reDoubleQuote  = regexp.MustCompile(`"`)
	reOpeningQuote = regexp.MustCompile(`(?:^|[\s(\[{])(?P<q>''?)[\pL\pN]`)
)

// Characters that follow " in babel shorthands ("a, "s, "-, "~, ...).
const babelShorthandFollowers = `aeiouAEIOUsSzZckCKlLpPtTfF-=~|"<>`

type quotationOptions struct {
	Macro                 string `option:"macro"`
	IgnoreBabelShorthands bool   `option:"ignore_babel_shorthands"`
}

func checkQuotationMarks(src *lint.Source, opts map[string]any) []lint.Diagnostic {
	o := quotationOptions{Macro: `\enquote`}
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil
	}
	hint := o.Macro + "{...}"

	var diagnostics []lint.Diagnostic
	for _, m := range src.FindAll(reDoubleQuote) {
		line := src.Line(m.Line)
		// \" is the umlaut accent.
		if m.Start > 0 && line[m.Start-1] == '\\' {
			continue
		}
		if o.IgnoreBabelShorthands && m.End < len(line) &&
			strings.IndexByte(babelShorthandFollowers, line[m.End]) >= 0 {
			continue
		}
		d := src.Diagnostic(quotationMarksID, quotationMarksSeverity, m.Line, m.Start, m.End,
			"ASCII double quote")
		d.Hint = hint
		diagnostics = append(diagnostics, d)
	}

	for _, m := range src.FindAll(reOpeningQuote) {
		start, end := m.Span(reOpeningQuote, "q")
		d := src.Diagnostic(quotationMarksID, quotationMarksSeverity, m.Line, start, end,
			"straight opening quote")
		d.Hint = hint
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}
