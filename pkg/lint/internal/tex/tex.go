// Package tex provides line-level LaTeX scanning utilities for lint rules.
//
// Nothing here parses LaTeX. The helpers work on single lines and know
// just enough about braces, comments and macro names to keep the rules
// short.
package tex

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultCiteCommands are the citation macros checked when a rule has no
// explicit list.
var DefaultCiteCommands = []string{"cite"}

// CitePattern compiles a regex matching the given citation macros
// (without backslash), an optional star, and the opening [ or { of the
// first argument. The macro itself is captured as "cmd".
func CitePattern(commands []string) (*regexp.Regexp, error) {
	if len(commands) == 0 {
		commands = DefaultCiteCommands
	}
	alts := make([]string, 0, len(commands))
	for _, c := range commands {
		c = strings.TrimPrefix(strings.TrimSpace(c), `\`)
		if c == "" {
			continue
		}
		alts = append(alts, regexp.QuoteMeta(c))
	}
	if len(alts) == 0 {
		alts = []string{"cite"}
	}
	return regexp.Compile(`(?P<cmd>\\(?:` + strings.Join(alts, "|") + `)\*?)[\[{]`)
}

// CommentStart returns the byte offset of the first unescaped % in line,
// or -1.
func CommentStart(line string) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++ // skip the escaped character
		case '%':
			return i
		}
	}
	return -1
}

// MatchBrace returns the offset just past the brace group that opens at
// line[open], or -1 when the group does not close on this line. Escaped
// braces (\{ and \}) do not count.
func MatchBrace(line string, open int) int {
	return matchDelim(line, open, '{', '}')
}

// MatchBracket is MatchBrace for a [...] optional argument.
func MatchBracket(line string, open int) int {
	return matchDelim(line, open, '[', ']')
}

func matchDelim(line string, open int, lo, hi byte) int {
	if open < 0 || open >= len(line) || line[open] != lo {
		return -1
	}
	depth := 0
	for i := open; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case lo:
			depth++
		case hi:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// RuneBefore returns the rune ending at byte offset i, or utf8.RuneError
// at the start of the line.
func RuneBefore(line string, i int) rune {
	if i <= 0 || i > len(line) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(line[:i])
	return r
}

// RuneAt returns the rune starting at byte offset i, or utf8.RuneError at
// the end of the line.
func RuneAt(line string, i int) rune {
	if i < 0 || i >= len(line) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(line[i:])
	return r
}

// IsWordRune reports whether r continues a word.
func IsWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// IsCommentLine reports whether a line holds only a comment.
func IsCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "%")
}
