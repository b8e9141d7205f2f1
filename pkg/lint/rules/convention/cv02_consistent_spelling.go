package convention

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
	"github.com/leapstack-labs/latexhooks/pkg/lint/internal/tex"
)

func init() {
	lint.Register(ConsistentSpelling)
}

const (
	consistentSpellingID       = "CV02"
	consistentSpellingSeverity = lint.SeverityWarning
)

// Spelling modes.
const (
	// ModeCanonical flags every spelling other than the canonical form.
	ModeCanonical = "canonical"
	// ModeConsistency flags files that mix spellings of one term.
	ModeConsistency = "consistency"
)

// ConsistentSpelling enforces one spelling per configured term.
var ConsistentSpelling = lint.RuleDef{
	ID:          consistentSpellingID,
	Name:        "convention.consistent_spelling",
	Hook:        "consistent-spelling",
	Group:       "convention",
	Description: "Configured terms must use their canonical spelling.",
	Severity:    consistentSpellingSeverity,
	Options: []lint.OptionDef{
		{
			Key:   "emph",
			Kind:  lint.OptionStringList,
			Usage: `phrase that must always be wrapped in \emph{...} (repeatable)`,
		},
		{
			Key:   "regex",
			Kind:  lint.OptionStringList,
			Usage: `"canonical=pattern": every match of pattern must equal canonical; in consistency mode canonical only names the term (repeatable)`,
		},
		{
			Key:     "mode",
			Kind:    lint.OptionString,
			Default: ModeCanonical,
			Usage:   `"canonical" flags spellings other than the canonical form, "consistency" flags files mixing spellings`,
		},
		{
			Key:     "ignore_case",
			Kind:    lint.OptionBool,
			Default: true,
			Usage:   "match case-insensitively and accept case-preserved canonical forms",
		},
	},
	RequireOneOf: []string{"emph", "regex"},
	Validate:     validateConsistentSpelling,
	Check:        checkConsistentSpelling,

	Rationale: `Documents written over months drift between "dataset" and "data set" or
"et al." and "\emph{et al.}". One spelling reads better and is easier to grep.`,
	BadExample:  `data set ... dataset ... Data-set`,
	GoodExample: `dataset ... dataset ... Dataset`,
	Fix:         `Configure --regex=dataset='data[ -]?set' or --emph='et al.' and apply the suggested spelling.`,
}

type spellingOptions struct {
	Emph       []string `option:"emph"`
	Regex      []string `option:"regex"`
	IgnoreCase bool     `option:"ignore_case"`
	Mode       string   `option:"mode"`
}

// spellingRule is one compiled canonical/pattern pair.
type spellingRule struct {
	canonical string
	re        *regexp.Regexp
	emph      bool
}

// occurrence is one spelling of a term found in a file.
type occurrence struct {
	line      int
	start     int // span of the spelling, \emph{...} included
	end       int
	termStart int
	termEnd   int
	text      string
	emph      bool // wrapped in \emph{...}
}

func parseSpellingOptions(opts map[string]any) (spellingOptions, error) {
	o := spellingOptions{IgnoreCase: true, Mode: ModeCanonical}
	err := lint.DecodeOptions(opts, &o)
	return o, err
}

// ParseRegexRule splits "canonical=pattern" at the first '='.
func ParseRegexRule(s string) (canonical, pattern string, err error) {
	canonical, pattern, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid regex rule %q: want canonical=pattern", s)
	}
	if canonical == "" {
		return "", "", fmt.Errorf("invalid regex rule %q: empty canonical form", s)
	}
	if pattern == "" {
		return "", "", fmt.Errorf("invalid regex rule %q: empty pattern", s)
	}
	return canonical, pattern, nil
}

func compileSpellingRules(o spellingOptions) ([]spellingRule, error) {
	flags := ""
	if o.IgnoreCase {
		flags = "(?i)"
	}

	var rules []spellingRule
	for _, term := range o.Emph {
		if strings.TrimSpace(term) == "" {
			return nil, errors.New("empty emph phrase")
		}
		re := regexp.MustCompile(flags + `(?P<open>(?-i:\\emph)\{)?(?P<term>` + regexp.QuoteMeta(term) + `)(?P<close>\})?`)
		rules = append(rules, spellingRule{canonical: term, re: re, emph: true})
	}
	for _, entry := range o.Regex {
		canonical, pattern, err := ParseRegexRule(entry)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(flags + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex rule %q: %w", entry, err)
		}
		rules = append(rules, spellingRule{canonical: canonical, re: re})
	}
	return rules, nil
}

func validateConsistentSpelling(opts map[string]any) error {
	o, err := parseSpellingOptions(opts)
	if err != nil {
		return err
	}
	if o.Mode != ModeCanonical && o.Mode != ModeConsistency {
		return fmt.Errorf("invalid mode %q: want %s or %s", o.Mode, ModeCanonical, ModeConsistency)
	}
	_, err = compileSpellingRules(o)
	return err
}

func checkConsistentSpelling(src *lint.Source, opts map[string]any) []lint.Diagnostic {
	o, err := parseSpellingOptions(opts)
	if err != nil {
		return nil
	}
	rules, err := compileSpellingRules(o)
	if err != nil {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for _, rule := range rules {
		occs := findOccurrences(src, rule)
		if o.Mode == ModeConsistency {
			diagnostics = append(diagnostics, checkMixedSpellings(src, rule, occs, o.IgnoreCase)...)
			continue
		}
		for _, occ := range occs {
			var d lint.Diagnostic
			var ok bool
			if rule.emph {
				d, ok = checkEmph(src, rule, occ)
			} else {
				d, ok = checkSpelling(src, rule, occ, o.IgnoreCase)
			}
			if ok {
				diagnostics = append(diagnostics, d)
			}
		}
	}
	return diagnostics
}

func findOccurrences(src *lint.Source, rule spellingRule) []occurrence {
	var occs []occurrence
	for _, m := range src.FindAll(rule.re) {
		if m.Text == "" {
			continue
		}
		if !rule.emph {
			occs = append(occs, occurrence{
				line: m.Line, start: m.Start, end: m.End,
				termStart: m.Start, termEnd: m.End, text: m.Text,
			})
			continue
		}

		line := src.Line(m.Line)
		start, end := m.Span(rule.re, "term")
		// Terms must not start or end inside a longer word.
		if tex.IsWordRune(tex.RuneAt(line, start)) && tex.IsWordRune(tex.RuneBefore(line, start)) {
			continue
		}
		if tex.IsWordRune(tex.RuneBefore(line, end)) && tex.IsWordRune(tex.RuneAt(line, end)) {
			continue
		}
		occ := occurrence{line: m.Line, start: start, end: end, termStart: start, termEnd: end}
		if m.Group(rule.re, "open") != "" {
			occ.emph = true
			occ.start = m.Start
			if m.Group(rule.re, "close") != "" {
				occ.end = m.End
			}
		} else if strings.HasSuffix(line[:start], `\emph{`) {
			occ.emph = true
		}
		occ.text = line[occ.start:occ.end]
		occs = append(occs, occ)
	}
	return occs
}

func checkEmph(src *lint.Source, rule spellingRule, occ occurrence) (lint.Diagnostic, bool) {
	if occ.emph {
		return lint.Diagnostic{}, false
	}
	d := src.Diagnostic(consistentSpellingID, consistentSpellingSeverity, occ.line, occ.termStart, occ.termEnd,
		fmt.Sprintf(`"%s" must be written as \emph{%s}`, occ.text, rule.canonical))
	d.Hint = `\emph{` + occ.text + `}`
	return d, true
}

func checkSpelling(src *lint.Source, rule spellingRule, occ occurrence, ignoreCase bool) (lint.Diagnostic, bool) {
	want := rule.canonical
	if ignoreCase {
		want = preserveCase(rule.canonical, occ.text)
	}
	if occ.text == want {
		return lint.Diagnostic{}, false
	}
	d := src.Diagnostic(consistentSpellingID, consistentSpellingSeverity, occ.line, occ.start, occ.end,
		fmt.Sprintf(`non-canonical spelling "%s" of "%s"`, occ.text, rule.canonical))
	d.Hint = want
	return d, true
}

// checkMixedSpellings flags every spelling other than the most frequent one
// when a file holds more than one. Ties go to the spelling seen first.
func checkMixedSpellings(src *lint.Source, rule spellingRule, occs []occurrence, ignoreCase bool) []lint.Diagnostic {
	key := func(s string) string {
		if ignoreCase {
			return foldCase(s)
		}
		return s
	}

	counts := make(map[string]int)
	first := make(map[string]occurrence)
	var order []string
	for _, occ := range occs {
		k := key(occ.text)
		if counts[k] == 0 {
			order = append(order, k)
			first[k] = occ
		}
		counts[k]++
	}
	if len(order) < 2 {
		return nil
	}
	dominant := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[dominant] {
			dominant = k
		}
	}
	want := first[dominant]

	var diagnostics []lint.Diagnostic
	for _, occ := range occs {
		if key(occ.text) == dominant {
			continue
		}
		d := src.Diagnostic(consistentSpellingID, consistentSpellingSeverity, occ.line, occ.start, occ.end,
			fmt.Sprintf(`inconsistent spelling "%s" of "%s"; line %d uses "%s"`, occ.text, rule.canonical, want.line, want.text))
		d.Hint = want.text
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}
