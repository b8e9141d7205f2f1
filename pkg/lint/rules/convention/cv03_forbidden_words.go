package convention

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
	"github.com/leapstack-labs/latexhooks/pkg/lint/internal/tex"
)

func init() {
	lint.Register(ForbiddenWords)
}

// DefaultForbiddenWords are filler words most style guides discourage.
var DefaultForbiddenWords = []string{
	"obviously",
	"clearly",
	"trivially",
	"basically",
	"simply",
	"very",
	"of course",
}

const (
	forbiddenWordsID       = "CV03"
	forbiddenWordsSeverity = lint.SeverityWarning
)

var ForbiddenWords = lint.RuleDef{
	ID:          forbiddenWordsID,
	Name:        "convention.forbidden_words",
	Hook:        "forbidden-words",
	Group:       "convention",
	Description: "Words on the deny-list must not be used.",
	Severity:    forbiddenWordsSeverity,
	Options: []lint.OptionDef{
		{
			Key:     "words",
			Flag:    "word",
			Kind:    lint.OptionStringList,
			Default: DefaultForbiddenWords,
			Usage:   "forbidden word or phrase; replaces the built-in list (repeatable)",
		},
	},
	Validate: validateForbiddenWords,
	Check:    checkForbiddenWords,

	Rationale:   `Words like "obviously" tell the reader how to feel instead of showing why.`,
	BadExample:  `The proof is obviously correct.`,
	GoodExample: `The proof is correct by Lemma~2.`,
}

type forbiddenOptions struct {
	Words []string `option:"words"`
}

func parseForbiddenOptions(opts map[string]any) (forbiddenOptions, error) {
	o := forbiddenOptions{Words: DefaultForbiddenWords}
	err := lint.DecodeOptions(opts, &o)
	return o, err
}

func validateForbiddenWords(opts map[string]any) error {
	o, err := parseForbiddenOptions(opts)
	if err != nil {
		return err
	}
	for _, w := range o.Words {
		if strings.TrimSpace(w) == "" {
			return errors.New("empty forbidden word")
		}
	}
	return nil
}

// forbiddenPattern builds a case-insensitive alternation, longest word
// first. Whitespace inside a phrase matches any run of whitespace.
func forbiddenPattern(words []string) *regexp.Regexp {
	alts := make([]string, 0, len(words))
	for _, w := range words {
		parts := strings.Fields(w)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		alts = append(alts, strings.Join(parts, `\s+`))
	}
	sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
}

func checkForbiddenWords(src *lint.Source, opts map[string]any) []lint.Diagnostic {
	o, err := parseForbiddenOptions(opts)
	if err != nil || len(o.Words) == 0 {
		return nil
	}
	re := forbiddenPattern(o.Words)

	var diagnostics []lint.Diagnostic
	for _, m := range src.FindAll(re) {
		line := src.Line(m.Line)
		before := tex.RuneBefore(line, m.Start)
		if tex.IsWordRune(before) || before == '\\' || tex.IsWordRune(tex.RuneAt(line, m.End)) {
			continue
		}
		diagnostics = append(diagnostics, src.Diagnostic(forbiddenWordsID, forbiddenWordsSeverity,
			m.Line, m.Start, m.End, fmt.Sprintf(`forbidden word "%s"`, m.Text)))
	}
	return diagnostics
}
