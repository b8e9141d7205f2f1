package spacing

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

func init() {
	lint.Register(AbbreviationSpacing)
}

// Abbreviation spacing styles.
const (
	StyleAmerican = "american"
	StyleSpacing  = "spacing"
)

const (
	abbreviationSpacingID       = "SP01"
	abbreviationSpacingSeverity = lint.SeverityWarning
)

// AbbreviationSpacing flags "e.g." and friends that TeX would follow with
// an inter-sentence space.
var AbbreviationSpacing = lint.RuleDef{
	ID:          abbreviationSpacingID,
	Name:        "spacing.abbreviation_spacing",
	Hook:        "abbreviation-spacing",
	Group:       "spacing",
	Description: "Abbreviations like e.g. and i.e. must be followed by a comma or an explicit space.",
	Severity:    abbreviationSpacingSeverity,
	Options: []lint.OptionDef{
		{
			Key:     "abbreviations",
			Flag:    "abbreviation",
			Kind:    lint.OptionStringList,
			Default: []string{"e.g.", "i.e."},
			Usage:   "abbreviation to check (repeatable)",
		},
		{
			Key:     "style",
			Kind:    lint.OptionString,
			Default: StyleAmerican,
			Usage:   `"american" requires a comma, "spacing" also accepts ~, "\ " and "\@"`,
		},
	},
	Validate: validateAbbreviationSpacing,
	Check:    checkAbbreviationSpacing,

	Rationale: `TeX treats a period followed by a space as the end of a sentence and inserts
a wider space. After "e.g." or "i.e." that space is wrong. American usage puts a
comma after the abbreviation, which also fixes the spacing.`,
	BadExample:  `Some methods, e.g. kNN, are lazy.`,
	GoodExample: `Some methods, e.g., kNN, are lazy.`,
	Fix:         `Add a comma after the abbreviation, or with style "spacing" write "e.g.\ " or "e.g.~".`,
}

type abbreviationOptions struct {
	Abbreviations []string `option:"abbreviations"`
	Style         string   `option:"style"`
}

func parseAbbreviationOptions(opts map[string]any) (abbreviationOptions, error) {
	o := abbreviationOptions{
		Abbreviations: []string{"e.g.", "i.e."},
		Style:         StyleAmerican,
	}
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return o, err
	}
	o.Style = strings.ToLower(strings.TrimSpace(o.Style))
	return o, nil
}

func validateAbbreviationSpacing(opts map[string]any) error {
	o, err := parseAbbreviationOptions(opts)
	if err != nil {
		return err
	}
	if o.Style != StyleAmerican && o.Style != StyleSpacing {
		return fmt.Errorf("invalid style %q: want %q or %q", o.Style, StyleAmerican, StyleSpacing)
	}
	for _, a := range o.Abbreviations {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("empty abbreviation")
		}
	}
	return nil
}

// abbreviationPattern matches any of the abbreviations when they do not
// continue a word or a macro name.
func abbreviationPattern(abbrevs []string) *regexp.Regexp {
	alts := make([]string, 0, len(abbrevs))
	for _, a := range abbrevs {
		alts = append(alts, regexp.QuoteMeta(strings.TrimSpace(a)))
	}
	// Longest first so "e.g." never shadows a longer variant.
	sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })
	return regexp.MustCompile(`(?i)(?:^|[^\pL\\])(?P<abbr>` + strings.Join(alts, "|") + `)`)
}

func checkAbbreviationSpacing(src *lint.Source, opts map[string]any) []lint.Diagnostic {
	o, err := parseAbbreviationOptions(opts)
	if err != nil || len(o.Abbreviations) == 0 {
		return nil
	}
	re := abbreviationPattern(o.Abbreviations)

	var diagnostics []lint.Diagnostic
	for _, m := range src.FindAll(re) {
		start, end := m.Span(re, "abbr")
		line := src.Line(m.Line)
		rest := line[end:]
		if abbreviationFollowOK(rest, o.Style) {
			continue
		}
		abbr := line[start:end]
		d := src.Diagnostic(abbreviationSpacingID, abbreviationSpacingSeverity, m.Line, start, end,
			fmt.Sprintf("%q is followed by an inter-sentence space", abbr))
		d.Hint = abbr + ","
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}

func abbreviationFollowOK(rest, style string) bool {
	if strings.HasPrefix(rest, ",") {
		return true
	}
	if style != StyleSpacing {
		return false
	}
	for _, ok := range []string{"~", `\ `, `\@`, ")", ":", ";"} {
		if strings.HasPrefix(rest, ok) {
			return true
		}
	}
	return false
}
