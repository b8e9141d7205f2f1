package lint

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Source is the content of one input file, addressed by line.
type Source struct {
	Path  string
	Text  string
	Lines []string // Without line terminators
}

// NewSource builds a Source from in-memory text. CRLF line endings are
// reduced to LF in Lines; Text is kept verbatim.
func NewSource(path, text string) *Source {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &Source{Path: path, Text: text, Lines: lines}
}

// LoadSource reads a whole file into a Source.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from the hook invocation
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewSource(path, string(data)), nil
}

// Line returns the 1-based line n, or "" when out of range.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.Lines) {
		return ""
	}
	return s.Lines[n-1]
}

// LineMatch is one regex match inside a single line.
type LineMatch struct {
	Line   int      // 1-based line number
	Start  int      // Byte offset of the match in the line
	End    int      // Exclusive end offset
	Text   string   // Matched text
	Groups []string // Submatches; Groups[0] == Text. Unmatched groups are ""
	Index  []int    // Raw submatch index pairs relative to the line
}

// Group returns the named submatch, or "" if absent.
func (m LineMatch) Group(re *regexp.Regexp, name string) string {
	i := re.SubexpIndex(name)
	if i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}

// Span returns the offsets of the named submatch, or -1, -1 when it did
// not participate in the match.
func (m LineMatch) Span(re *regexp.Regexp, name string) (start, end int) {
	i := re.SubexpIndex(name)
	if i < 0 || 2*i+1 >= len(m.Index) {
		return -1, -1
	}
	return m.Index[2*i], m.Index[2*i+1]
}

// FindAll returns every non-overlapping match of re, line by line, in
// source order.
func (s *Source) FindAll(re *regexp.Regexp) []LineMatch {
	var matches []LineMatch
	for i, line := range s.Lines {
		for _, idx := range re.FindAllStringSubmatchIndex(line, -1) {
			groups := make([]string, len(idx)/2)
			for g := range groups {
				if idx[2*g] >= 0 {
					groups[g] = line[idx[2*g]:idx[2*g+1]]
				}
			}
			matches = append(matches, LineMatch{
				Line:   i + 1,
				Start:  idx[0],
				End:    idx[1],
				Text:   line[idx[0]:idx[1]],
				Groups: groups,
				Index:  idx,
			})
		}
	}
	return matches
}

// Diagnostic builds a diagnostic for a span of a line. start and end are
// byte offsets within the line.
func (s *Source) Diagnostic(ruleID string, sev Severity, line, start, end int, message string) Diagnostic {
	text := s.Line(line)
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}
	return Diagnostic{
		RuleID:    ruleID,
		Severity:  sev,
		Path:      s.Path,
		Pos:       Position{Line: line, Column: start + 1},
		EndColumn: end + 1,
		Match:     text[start:end],
		Message:   message,
		Context:   text,
	}
}
