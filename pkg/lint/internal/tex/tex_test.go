package tex

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCitePattern(t *testing.T) {
	re, err := CitePattern(nil)
	require.NoError(t, err)
	assert.True(t, re.MatchString(`\cite{x}`))
	assert.True(t, re.MatchString(`\cite[p.~1]{x}`))
	assert.True(t, re.MatchString(`\cite*{x}`))
	assert.False(t, re.MatchString(`\citep{x}`))
	assert.False(t, re.MatchString(`\cite x`))

	re, err = CitePattern([]string{`\citep`, " parencite ", ""})
	require.NoError(t, err)
	assert.True(t, re.MatchString(`\citep{x}`))
	assert.True(t, re.MatchString(`\parencite{x}`))
	assert.False(t, re.MatchString(`\cite{x}`))

	m := re.FindStringSubmatch(`see \parencite*[3]{x}`)
	require.NotNil(t, m)
	assert.Equal(t, `\parencite*`, m[re.SubexpIndex("cmd")])
}

func TestCommentStart(t *testing.T) {
	assert.Equal(t, -1, CommentStart(`no comment`))
	assert.Equal(t, 4, CommentStart(`text% comment`))
	assert.Equal(t, -1, CommentStart(`50\% of all`))
	assert.Equal(t, 7, CommentStart(`50\% ok% yes`))
	assert.Equal(t, 0, CommentStart(`% full line`))
}

func TestMatchBrace(t *testing.T) {
	tests := []struct {
		line string
		open int
		want int
	}{
		{`{abc}`, 0, 5},
		{`x{a{b}c}d`, 1, 8},
		{`{a\}b}`, 0, 6},
		{`{unclosed`, 0, -1},
		{`abc`, 0, -1},
		{`{a}`, 5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchBrace(tt.line, tt.open))
		})
	}

	assert.Equal(t, 7, MatchBracket(`[short]{long}`, 0))
}

func TestRunes(t *testing.T) {
	line := "ä b"
	assert.Equal(t, utf8.RuneError, RuneBefore(line, 0))
	assert.Equal(t, 'ä', RuneBefore(line, 2))
	assert.Equal(t, 'ä', RuneAt(line, 0))
	assert.Equal(t, utf8.RuneError, RuneAt(line, len(line)))

	assert.True(t, IsWordRune('ä'))
	assert.True(t, IsWordRune('7'))
	assert.False(t, IsWordRune('.'))
	assert.False(t, IsWordRune(utf8.RuneError))

	assert.True(t, IsCommentLine("  % note"))
	assert.False(t, IsCommentLine("text % note"))
}

func TestAtSentenceStart(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		idx   int
		col   int
		want  bool
	}{
		{"start of file", []string{`\cref{a}`}, 0, 0, true},
		{"after period", []string{`Done. \cref{a}`}, 0, 6, true},
		{"after tie", []string{`Done.~\cref{a}`}, 0, 6, true},
		{"mid sentence", []string{`as in \cref{a}`}, 0, 6, false},
		{"after abbreviation", []string{`see e.g. \cref{a}`}, 0, 9, false},
		{"after et al.", []string{`Smith et al. \cref{a}`}, 0, 13, false},
		{"after question", []string{`Why? \cref{a}`}, 0, 5, true},
		{"after closing brace", []string{`\emph{done.} \cref{a}`}, 0, 13, true},
		{"after item", []string{`\item[a] \cref{a}`}, 0, 9, true},
		{"after blank line", []string{"text", "", `\cref{a}`}, 2, 0, true},
		{"continued line", []string{"as in", `\cref{a}`}, 1, 0, false},
		{"ended line", []string{"done.", `\cref{a}`}, 1, 0, true},
		{"skips comment lines", []string{"done.", "% note", `\cref{a}`}, 2, 0, true},
		{"trailing comment", []string{"as in % see", `\cref{a}`}, 1, 0, false},
		{"after label line", []string{`\label{sec:a}`, `\cref{a}`}, 1, 0, true},
		{"after begin", []string{`\begin{figure}[t]`, `\cref{a}`}, 1, 0, true},
		{"after command in text", []string{`shown by \emph{x}`, `\cref{a}`}, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AtSentenceStart(tt.lines, tt.idx, tt.col))
		})
	}
}
