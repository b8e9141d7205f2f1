package output

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

// LintSummary counts the diagnostics of a run.
type LintSummary struct {
	FilesChecked    int
	FilesWithIssues int
	TotalIssues     int
	Errors          int
	Warnings        int
	Info            int
	Hints           int
}

// Summarize counts diagnostics by severity and file.
func Summarize(files int, diags []lint.Diagnostic) LintSummary {
	s := LintSummary{FilesChecked: files, TotalIssues: len(diags)}
	seen := make(map[string]bool)
	for _, d := range diags {
		if !seen[d.Path] {
			seen[d.Path] = true
			s.FilesWithIssues++
		}
		switch d.Severity {
		case lint.SeverityError:
			s.Errors++
		case lint.SeverityWarning:
			s.Warnings++
		case lint.SeverityInfo:
			s.Info++
		case lint.SeverityHint:
			s.Hints++
		}
	}
	return s
}

// String renders "3 issues (1 error, 2 warnings) in 2 of 5 files".
func (s LintSummary) String() string {
	var parts []string
	for _, c := range []struct {
		n    int
		name string
	}{
		{s.Errors, "error"},
		{s.Warnings, "warning"},
		{s.Info, "info"},
		{s.Hints, "hint"},
	} {
		if c.n > 0 {
			parts = append(parts, plural(c.n, c.name))
		}
	}
	out := plural(s.TotalIssues, "issue")
	if len(parts) > 0 {
		out += " (" + strings.Join(parts, ", ") + ")"
	}
	return fmt.Sprintf("%s in %d of %s", out, s.FilesWithIssues, plural(s.FilesChecked, "file"))
}

func plural(n int, word string) string {
	if n == 1 || word == "info" {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Diagnostics writes one line per diagnostic to stdout. In plain mode the
// line is exactly lint.FormatDiagnostic. withContext adds the source line
// and a caret under the match.
func (r *Renderer) Diagnostics(diags []lint.Diagnostic, withContext bool) {
	plain := r.EffectiveMode() == ModePlain
	if plain && !withContext {
		_, _ = lint.WriteDiagnostics(r.out, diags)
		return
	}
	for _, d := range diags {
		if plain {
			r.Println(lint.FormatDiagnostic(d))
		} else {
			r.Println(r.styledDiagnostic(d))
		}
		if withContext && d.Context != "" {
			caret := caretLine(d)
			if !plain {
				caret = r.styles.Caret.Render(caret)
			}
			r.Println("    " + d.Context)
			r.Println("    " + caret)
		}
	}
}

func (r *Renderer) styledDiagnostic(d lint.Diagnostic) string {
	loc := r.styles.Path.Render(d.Path) + r.styles.Muted.Render(fmt.Sprintf(":%d:", d.Pos.Line))
	msg := d.Message
	if d.Hint != "" {
		msg += "; use " + r.styles.Bold.Render(d.Hint)
	}
	return fmt.Sprintf("%s %s %s %s", loc, r.SeverityLabel(d.Severity), msg,
		r.styles.Muted.Render("["+d.RuleID+"]"))
}

// SeverityLabel renders a severity in its color.
func (r *Renderer) SeverityLabel(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.styles.Error.Render(sev.String())
	case lint.SeverityWarning:
		return r.styles.Warning.Render(sev.String())
	case lint.SeverityInfo:
		return r.styles.Info.Render(sev.String())
	default:
		return r.styles.Muted.Render(sev.String())
	}
}

// caretLine underlines the diagnostic span. Tabs before the match are
// kept so the caret lines up with the source line.
func caretLine(d lint.Diagnostic) string {
	start := d.Pos.Column - 1
	if start < 0 {
		start = 0
	}
	if start > len(d.Context) {
		start = len(d.Context)
	}
	var b strings.Builder
	for _, c := range d.Context[:start] {
		if c == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	width := utf8.RuneCountInString(d.Match)
	if width < 1 {
		width = 1
	}
	b.WriteByte('^')
	b.WriteString(strings.Repeat("~", width-1))
	return b.String()
}

// Summary writes the run summary to stderr. A clean run only reports
// success in text mode so hooks stay quiet in pipelines.
func (r *Renderer) Summary(s LintSummary) {
	if s.TotalIssues == 0 {
		if r.EffectiveMode() == ModeText {
			r.Success(fmt.Sprintf("No issues found in %s", plural(s.FilesChecked, "file")))
		}
		return
	}
	if r.EffectiveMode() == ModeText {
		r.Fail(s.String())
		return
	}
	r.Eprintln(s.String())
}
