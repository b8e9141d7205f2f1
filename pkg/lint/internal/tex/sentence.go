package tex

import (
	"regexp"
	"strings"
)

var (
	reItemEnd = regexp.MustCompile(`\\item(?:\[[^\]]*\])?$`)

	// Abbreviations whose final period does not end a sentence.
	nonTerminalAbbrevs = []string{"e.g.", "i.e.", "cf.", "vs.", "resp.", "et al.", "approx."}
)

// AtSentenceStart reports whether byte offset col of line idx (0-based)
// begins a sentence. Text before col on the same line decides first; an
// empty prefix looks back across earlier lines, skipping comment lines.
// The start of the file, a blank line, an \item or a command-only line
// all count as a sentence boundary.
func AtSentenceStart(lines []string, idx, col int) bool {
	line := lines[idx]
	if col > len(line) {
		col = len(line)
	}
	prefix := strings.TrimRight(line[:col], " \t~")
	if strings.TrimSpace(prefix) != "" {
		return endsBoundary(strings.TrimSpace(prefix), false)
	}

	for j := idx - 1; j >= 0; j-- {
		prev := lines[j]
		if cs := CommentStart(prev); cs >= 0 {
			if IsCommentLine(prev) {
				continue
			}
			prev = prev[:cs]
		}
		prev = strings.TrimSpace(prev)
		if prev == "" {
			return true
		}
		return endsBoundary(prev, true)
	}
	return true
}

func endsBoundary(s string, wholeLine bool) bool {
	if reItemEnd.MatchString(s) {
		return true
	}
	if wholeLine && isCommandLine(s) {
		return true
	}
	return EndsSentence(s)
}

// isCommandLine matches lines such as \label{...} or \begin{figure}[t].
func isCommandLine(s string) bool {
	if !strings.HasPrefix(s, `\`) {
		return false
	}
	last := s[len(s)-1]
	if last != '}' && last != ']' {
		return false
	}
	return !strings.ContainsAny(s, " \t") || strings.HasPrefix(s, `\begin`) || strings.HasPrefix(s, `\end`)
}

// EndsSentence reports whether s ends with sentence punctuation, ignoring
// closing brackets and quotes and a short list of abbreviations.
func EndsSentence(s string) bool {
	s = strings.TrimRight(s, `)]}'"`)
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, abbr := range nonTerminalAbbrevs {
		if strings.HasSuffix(lower, abbr) {
			return false
		}
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
