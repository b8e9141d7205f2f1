// Package output renders CLI results for terminals and for pipes.
package output

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how output is rendered.
type Mode string

// Output modes.
const (
	ModeAuto  Mode = "auto"  // text on a TTY, plain otherwise
	ModeText  Mode = "text"  // styled
	ModePlain Mode = "plain" // no escape codes, one diagnostic per line
)

// Color palette
var (
	ErrorColor   = lipgloss.Color("#FF5F87")
	WarningColor = lipgloss.Color("#FFAF00")
	InfoColor    = lipgloss.Color("#00BBBE")
	SuccessColor = lipgloss.Color("#59CFA8")
	MutedColor   = lipgloss.Color("#808080")
)

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Caret   lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  lr.NewStyle().Bold(true).Foreground(InfoColor),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(MutedColor),
		Path:    lr.NewStyle().Bold(true).Underline(true),
		Error:   lr.NewStyle().Bold(true).Foreground(ErrorColor),
		Warning: lr.NewStyle().Foreground(WarningColor),
		Info:    lr.NewStyle().Foreground(InfoColor),
		Success: lr.NewStyle().Foreground(SuccessColor),
		Caret:   lr.NewStyle().Bold(true).Foreground(ErrorColor),
	}
}

// Renderer writes results to stdout and summaries to stderr.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}

	lr := lipgloss.NewRenderer(out)
	switch {
	case r.EffectiveMode() == ModePlain:
		lr.SetColorProfile(termenv.Ascii)
	case isTTY:
		lr.SetColorProfile(termenv.NewOutput(out).EnvColorProfile())
	default:
		// Forced text mode into a pipe still gets colors.
		lr.SetColorProfile(termenv.ANSI256)
	}
	r.styles = newStyles(lr)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	if fd > math.MaxInt32 {
		return false
	}
	return term.IsTerminal(int(fd)) //nolint:gosec // checked for overflow above
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModePlain
}

// IsTTY reports whether stdout is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Println writes a line to stdout.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Eprintln writes a line to stderr.
func (r *Renderer) Eprintln(s string) {
	_, _ = fmt.Fprintln(r.errOut, s)
}

// Success writes a success message to stderr.
func (r *Renderer) Success(msg string) {
	r.Eprintln(r.styles.Success.Render(msg))
}

// Fail writes a failure message to stderr.
func (r *Renderer) Fail(msg string) {
	r.Eprintln(r.styles.Error.Render(msg))
}
