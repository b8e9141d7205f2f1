package references

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
	"github.com/leapstack-labs/latexhooks/pkg/lint/internal/tex"
)

func init() {
	lint.Register(EnsureLabels)
}

// DefaultLookahead is how many lines after a heading may hold its label.
const DefaultLookahead = 1

// skipLabelMarker in a heading's comment accepts whatever label follows.
const skipLabelMarker = "skip-label"

var defaultLevels = []string{"chapter", "section", "subsection", "subsubsection"}

const (
	ensureLabelsID       = "RF02"
	ensureLabelsSeverity = lint.SeverityWarning
)

// EnsureLabels requires a \label right after every sectioning command,
// optionally matching the slug of the heading title.
var EnsureLabels = lint.RuleDef{
	ID:          ensureLabelsID,
	Name:        "references.ensure_labels",
	Hook:        "ensure-labels",
	Group:       "references",
	Description: "Sectioning commands must be followed by a \\label derived from their title.",
	Severity:    ensureLabelsSeverity,
	Options: []lint.OptionDef{
		{
			Key:     "levels",
			Flag:    "level",
			Kind:    lint.OptionStringList,
			Default: defaultLevels,
			Usage:   "sectioning command to check (repeatable)",
		},
		{
			Key:     "lookahead",
			Kind:    lint.OptionInt,
			Default: DefaultLookahead,
			Usage:   "number of lines after the heading that may hold the label",
		},
		{
			Key:     "enforce_slug",
			Kind:    lint.OptionBool,
			Default: true,
			Usage:   "require the label to match the slugified title",
		},
	},
	Validate: validateEnsureLabels,
	Check:    checkEnsureLabels,

	Rationale: `Labels named after their heading are predictable to reference and make
renamed sections visible in review.`,
	BadExample: `\section{Related Work}
Prior work has ...`,
	GoodExample: `\section{Related Work}
\label{sec:related-work}`,
	Fix: `Add the suggested \label, or put "% skip-label" on the heading line to keep a custom one.`,
}

var (
	reHeading = regexp.MustCompile(`^[ \t]*\\(?P<kind>chapter|section|subsection|subsubsection)(?P<star>\*)?`)
	// reNextHeading finds further headings after a title on the same line.
	reNextHeading = regexp.MustCompile(`\\(?P<kind>chapter|section|subsection|subsubsection)(?P<star>\*)?`)
	reLabel   = regexp.MustCompile(`\\label\{(?P<name>[^}]*)\}`)
)

type ensureLabelsOptions struct {
	Levels      []string `option:"levels"`
	Lookahead   int      `option:"lookahead"`
	EnforceSlug bool     `option:"enforce_slug"`
}

func parseEnsureLabelsOptions(opts map[string]any) (ensureLabelsOptions, error) {
	o := ensureLabelsOptions{
		Levels:      defaultLevels,
		Lookahead:   DefaultLookahead,
		EnforceSlug: true,
	}
	err := lint.DecodeOptions(opts, &o)
	return o, err
}

func validateEnsureLabels(opts map[string]any) error {
	o, err := parseEnsureLabelsOptions(opts)
	if err != nil {
		return err
	}
	if o.Lookahead < 0 {
		return fmt.Errorf("lookahead must not be negative, got %d", o.Lookahead)
	}
	for _, lvl := range o.Levels {
		if _, ok := labelPrefixes[lvl]; !ok {
			return fmt.Errorf("unknown sectioning level %q", lvl)
		}
	}
	return nil
}

// heading is a sectioning command found on one line.
type heading struct {
	kind     string
	start    int // offset of the backslash
	end      int // offset after the command name and star
	title    string
	restAt   int    // offset of rest in the line
	rest     string // text after the title, comment stripped
	comment  string
	parsable bool
	followed bool // another heading follows on the same line
}

// parseHeading reads "\section*[short]{title} rest % comment" starting at
// the end of the command match.
func parseHeading(line string, kind string, start, end int) heading {
	h := heading{kind: kind, start: start, end: end}
	i := skipSpaces(line, end)
	if i < len(line) && line[i] == '[' {
		j := tex.MatchBracket(line, i)
		if j < 0 {
			return h
		}
		i = skipSpaces(line, j)
	}
	if i >= len(line) || line[i] != '{' {
		return h
	}
	j := tex.MatchBrace(line, i)
	if j < 0 {
		return h
	}
	h.title = line[i+1 : j-1]
	h.restAt = j
	h.rest = line[j:]
	if cs := tex.CommentStart(h.rest); cs >= 0 {
		h.comment = h.rest[cs:]
		h.rest = h.rest[:cs]
	}
	h.parsable = true
	return h
}

func skipSpaces(line string, i int) int {
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

// findLabel looks for a \label on the heading line and up to lookahead
// following lines. A later heading closes the window.
func findLabel(lines []string, idx int, h heading, lookahead int) (string, bool) {
	if m := reLabel.FindStringSubmatch(h.rest); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if h.followed {
		return "", false
	}
	for j := idx + 1; j <= idx+lookahead && j < len(lines); j++ {
		line := lines[j]
		if reHeading.MatchString(line) {
			break
		}
		if cs := tex.CommentStart(line); cs >= 0 {
			line = line[:cs]
		}
		if m := reLabel.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

func checkEnsureLabels(src *lint.Source, opts map[string]any) []lint.Diagnostic {
	o, err := parseEnsureLabelsOptions(opts)
	if err != nil {
		return nil
	}
	levels := make(map[string]bool, len(o.Levels))
	for _, lvl := range o.Levels {
		levels[lvl] = true
	}

	var diagnostics []lint.Diagnostic
	for i, line := range src.Lines {
		for _, h := range headingsOn(line) {
			if !levels[h.kind] {
				continue
			}
			if !h.parsable {
				diagnostics = append(diagnostics, src.Diagnostic(ensureLabelsID, lint.SeverityWarning,
					i+1, h.start, len(line), fmt.Sprintf(`unprocessable \%s heading`, h.kind)))
				continue
			}
			if d, ok := checkHeadingLabel(src, i, h, o); ok {
				diagnostics = append(diagnostics, d)
			}
		}
	}
	return diagnostics
}

// headingsOn returns the headings on a line: one at its start and any that
// follow the previous title.
func headingsOn(line string) []heading {
	var headings []heading
	idx := reHeading.FindStringSubmatchIndex(line)
	for idx != nil {
		// \sectionmark and friends are not headings.
		if tex.IsWordRune(tex.RuneAt(line, idx[1])) {
			break
		}
		h := parseHeading(line, line[idx[2]:idx[3]], idx[2]-1, idx[1])
		headings = append(headings, h)
		if !h.parsable {
			break
		}
		idx = nextHeading(h.rest, h.restAt)
		if idx != nil {
			last := &headings[len(headings)-1]
			last.rest = last.rest[:idx[0]-h.restAt]
			last.followed = true
		}
	}
	return headings
}

// nextHeading finds the first heading command in rest and returns its
// submatch indices shifted by offset.
func nextHeading(rest string, offset int) []int {
	for _, idx := range reNextHeading.FindAllStringSubmatchIndex(rest, -1) {
		if tex.IsWordRune(tex.RuneAt(rest, idx[1])) {
			continue
		}
		for k := range idx {
			if idx[k] >= 0 {
				idx[k] += offset
			}
		}
		return idx
	}
	return nil
}

func checkHeadingLabel(src *lint.Source, i int, h heading, o ensureLabelsOptions) (lint.Diagnostic, bool) {
	want := LabelFor(h.kind, h.title)
	label, found := findLabel(src.Lines, i, h, o.Lookahead)
	switch {
	case !found:
		d := src.Diagnostic(ensureLabelsID, ensureLabelsSeverity, i+1, h.start, h.end,
			fmt.Sprintf(`missing \label after \%s`, h.kind))
		d.Hint = `\label{` + want + `}`
		return d, true
	case o.EnforceSlug && label != want && !strings.Contains(h.comment, skipLabelMarker):
		d := src.Diagnostic(ensureLabelsID, ensureLabelsSeverity, i+1, h.start, h.end,
			fmt.Sprintf("wrong label '%s'", label))
		d.Hint = `\label{` + want + `}`
		return d, true
	}
	return lint.Diagnostic{}, false
}
