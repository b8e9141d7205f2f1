package lint

import (
	"fmt"
	"io"
)

// FormatDiagnostic renders a diagnostic as "<path>:<line>: <message> [<ID>]".
func FormatDiagnostic(d Diagnostic) string {
	msg := d.Message
	if d.Hint != "" {
		msg += "; use " + d.Hint
	}
	return fmt.Sprintf("%s:%d: %s [%s]", d.Path, d.Pos.Line, msg, d.RuleID)
}

// ExitStatus returns 0 for no diagnostics and 1 otherwise.
func ExitStatus(diags []Diagnostic) int {
	if len(diags) == 0 {
		return 0
	}
	return 1
}

// WriteDiagnostics prints one line per diagnostic and returns the exit status.
func WriteDiagnostics(w io.Writer, diags []Diagnostic) (int, error) {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, FormatDiagnostic(d)); err != nil {
			return ExitStatus(diags), err
		}
	}
	return ExitStatus(diags), nil
}
