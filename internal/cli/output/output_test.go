package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

func newTestRenderer(mode Mode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func citeDiagnostic() lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:    "SP03",
		Severity:  lint.SeverityWarning,
		Path:      "doc.tex",
		Pos:       lint.Position{Line: 3, Column: 6},
		EndColumn: 11,
		Match:     `\cite`,
		Message:   `missing ~ before \cite`,
		Hint:      `~\cite`,
		Context:   "\tsee \\cite{knuth}",
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{mode: ModeAuto, isTTY: true, want: ModeText},
		{mode: ModeAuto, isTTY: false, want: ModePlain},
		{mode: "", isTTY: false, want: ModePlain},
		{mode: ModeText, isTTY: false, want: ModeText},
		{mode: ModePlain, isTTY: true, want: ModePlain},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(new(bytes.Buffer), new(bytes.Buffer), ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModePlain, r.EffectiveMode())
}

func TestDiagnostics_Plain(t *testing.T) {
	r, out, _ := newTestRenderer(ModePlain, false)
	r.Diagnostics([]lint.Diagnostic{citeDiagnostic()}, false)
	assert.Equal(t, "doc.tex:3: missing ~ before \\cite; use ~\\cite [SP03]\n", out.String())
}

func TestDiagnostics_PlainContext(t *testing.T) {
	r, out, _ := newTestRenderer(ModePlain, false)
	r.Diagnostics([]lint.Diagnostic{citeDiagnostic()}, true)

	want := "doc.tex:3: missing ~ before \\cite; use ~\\cite [SP03]\n" +
		"    \tsee \\cite{knuth}\n" +
		"    \t    ^~~~~\n"
	assert.Equal(t, want, out.String())
}

func TestDiagnostics_TextIsStyled(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)
	r.Diagnostics([]lint.Diagnostic{citeDiagnostic()}, false)

	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "missing ~ before")
	assert.Contains(t, out.String(), "SP03")
}

func TestCaretLine(t *testing.T) {
	tests := []struct {
		name string
		diag lint.Diagnostic
		want string
	}{
		{
			name: "start of line",
			diag: lint.Diagnostic{Pos: lint.Position{Column: 1}, Match: "ab", Context: "ab cd"},
			want: "^~",
		},
		{
			name: "empty match",
			diag: lint.Diagnostic{Pos: lint.Position{Column: 3}, Context: "ab cd"},
			want: "  ^",
		},
		{
			name: "multibyte match",
			diag: lint.Diagnostic{Pos: lint.Position{Column: 3}, Match: "Café", Context: "a Café"},
			want: "  ^~~~",
		},
		{
			name: "column past the end",
			diag: lint.Diagnostic{Pos: lint.Position{Column: 10}, Match: "x", Context: "ab"},
			want: "  ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, caretLine(tt.diag))
		})
	}
}

func TestSummarize(t *testing.T) {
	diags := []lint.Diagnostic{
		{Path: "a.tex", Severity: lint.SeverityError},
		{Path: "a.tex", Severity: lint.SeverityWarning},
		{Path: "b.tex", Severity: lint.SeverityWarning},
	}
	s := Summarize(5, diags)

	assert.Equal(t, 2, s.FilesWithIssues)
	assert.Equal(t, 3, s.TotalIssues)
	assert.Equal(t, "3 issues (1 error, 2 warnings) in 2 of 5 files", s.String())

	one := Summarize(1, diags[1:2])
	assert.Equal(t, "1 issue (1 warning) in 1 of 1 file", one.String())
}

func TestSummary(t *testing.T) {
	t.Run("clean plain run is silent", func(t *testing.T) {
		r, out, errOut := newTestRenderer(ModePlain, false)
		r.Summary(Summarize(2, nil))
		assert.Empty(t, out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("clean text run reports success", func(t *testing.T) {
		r, out, errOut := newTestRenderer(ModeText, true)
		r.Summary(Summarize(2, nil))
		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "No issues found in 2 files")
	})

	t.Run("issues go to stderr", func(t *testing.T) {
		r, out, errOut := newTestRenderer(ModePlain, false)
		r.Summary(Summarize(1, []lint.Diagnostic{citeDiagnostic()}))
		assert.Empty(t, out.String())
		require.Equal(t, "1 issue (1 warning) in 1 of 1 file\n", errOut.String())
	})

	t.Run("text mode styles issues as failure", func(t *testing.T) {
		r, _, errOut := newTestRenderer(ModeText, true)
		r.Summary(Summarize(1, []lint.Diagnostic{citeDiagnostic()}))
		assert.Contains(t, errOut.String(), "1 issue (1 warning) in 1 of 1 file")
		assert.Equal(t, r.Styles().Error.Render("1 issue (1 warning) in 1 of 1 file")+"\n", errOut.String())
	})
}
