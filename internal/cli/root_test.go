package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/latexhooks/internal/cli/commands"
	"github.com/leapstack-labs/latexhooks/internal/cli/config"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func (r result) code() int { return ExitCode(r.err) }

// execute runs the CLI in dir with fresh configuration state.
func execute(t *testing.T, dir string, args ...string) result {
	t.Helper()
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(commands.ErrIssuesFound))
	assert.Equal(t, 2, ExitCode(assert.AnError))
}

func TestHook_ReportsIssues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "Intro.\nsee also\\cite{knuth}\n")

	res := execute(t, dir, "tilde-before-cite", "doc.tex")

	require.ErrorIs(t, res.err, commands.ErrIssuesFound)
	assert.Equal(t, 1, res.code())
	assert.Equal(t, "doc.tex:2: missing ~ before \\cite; use ~\\cite [SP03]\n", res.stdout)
	assert.Contains(t, res.stderr, "1 issue")
	assert.NotContains(t, res.stderr, "Error:")
}

func TestHook_Clean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "see also~\\cite{knuth}\n")

	res := execute(t, dir, "tilde-before-cite", "doc.tex")

	require.NoError(t, res.err)
	assert.Equal(t, 0, res.code())
	assert.Empty(t, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestHook_NoFiles(t *testing.T) {
	res := execute(t, t.TempDir(), "ensure-labels")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestHook_Context(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "see also\\cite{knuth}\n")

	res := execute(t, dir, "--context", "tilde-before-cite", "doc.tex")

	assert.Equal(t, 1, res.code())
	assert.Equal(t,
		"doc.tex:1: missing ~ before \\cite; use ~\\cite [SP03]\n"+
			"    see also\\cite{knuth}\n"+
			"            ^~~~~\n",
		res.stdout)
}

func TestHook_MissingFile(t *testing.T) {
	res := execute(t, t.TempDir(), "tilde-before-cite", "missing.tex")

	assert.Equal(t, 2, res.code())
	assert.Contains(t, res.stderr, "Error: read missing.tex")
	assert.Empty(t, res.stdout)
}

func TestHook_RequireOneOf(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "a data set\n")

	res := execute(t, dir, "consistent-spelling", "doc.tex")

	assert.Equal(t, 2, res.code())
	assert.Contains(t, res.stderr, "at least one of --emph or --regex is required")
}

func TestHook_InvalidOptionBeforeRead(t *testing.T) {
	// The file does not exist: validation must fail first.
	res := execute(t, t.TempDir(), "consistent-spelling", "--regex", "dataset=data(", "missing.tex")

	assert.Equal(t, 2, res.code())
	assert.Contains(t, res.stderr, "invalid configuration")
	assert.NotContains(t, res.stderr, "read missing.tex")
}

func TestHook_RegexFlag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "We use a data set.\nThe dataset is big.\n")

	res := execute(t, dir, "consistent-spelling", "--regex", "dataset=data[ -]?set", "doc.tex")

	assert.Equal(t, 1, res.code())
	assert.Contains(t, res.stdout, `doc.tex:1: non-canonical spelling "data set" of "dataset"`)
	assert.NotContains(t, res.stdout, "doc.tex:2:")
}

func TestHook_ConsistencyMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "We use a data set.\nThe data set is big.\nOne dataset.\n")

	res := execute(t, dir, "consistent-spelling", "--mode", "consistency", "--regex", "dataset=data[ -]?set", "doc.tex")

	assert.Equal(t, 1, res.code())
	assert.Equal(t, "doc.tex:3: inconsistent spelling \"dataset\" of \"dataset\"; line 1 uses \"data set\"; use data set [CV02]\n", res.stdout)

	res = execute(t, dir, "consistent-spelling", "--mode", "loose", "--emph", "et al.", "doc.tex")
	assert.Equal(t, 2, res.code())
	assert.Contains(t, res.stderr, `invalid mode "loose"`)
}

func TestHook_SeverityFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "see also\\cite{knuth}\n")

	res := execute(t, dir, "--severity", "error", "tilde-before-cite", "doc.tex")

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestHook_InvalidSeverity(t *testing.T) {
	res := execute(t, t.TempDir(), "--severity", "loud", "tilde-before-cite")

	assert.Equal(t, 2, res.code())
	assert.Contains(t, res.stderr, `invalid severity "loud"`)
}

func TestHook_ConfigFileOptions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "\\section{Intro}\n\n\\label{sec:intro}\n")

	res := execute(t, dir, "ensure-labels", "doc.tex")
	assert.Equal(t, 1, res.code())
	assert.Contains(t, res.stdout, `doc.tex:1: missing \label after \section; use \label{sec:intro} [RF02]`)

	writeFile(t, dir, config.DefaultConfigFile, "lint:\n  rules:\n    ensure-labels:\n      lookahead: 2\n")
	res = execute(t, dir, "ensure-labels", "doc.tex")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	// Flags win over the file.
	res = execute(t, dir, "ensure-labels", "--lookahead", "1", "doc.tex")
	assert.Equal(t, 1, res.code())
}

func TestHook_EnvOptionByHookName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "\\section{Intro}\n\n\\label{sec:intro}\n")
	t.Setenv("LATEXHOOKS_LINT__RULES__ENSURE_LABELS__LOOKAHEAD", "2")

	res := execute(t, dir, "ensure-labels", "doc.tex")

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestHook_ConfigFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.DefaultConfigFile, "lint:\n  min_severity: error\n")
	writeFile(t, dir, "chapters/one.tex", "see also\\cite{knuth}\n")

	res := execute(t, filepath.Join(dir, "chapters"), "tilde-before-cite", "one.tex")

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestLint_SelectedRules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "\\section{Intro}\nsee also\\cite{knuth}, e.g. here\n")

	res := execute(t, dir, "lint", "--rule", "SP03", "--rule", "ensure-labels", "doc.tex")

	assert.Equal(t, 1, res.code())
	assert.Equal(t,
		"doc.tex:1: missing \\label after \\section; use \\label{sec:intro} [RF02]\n"+
			"doc.tex:2: missing ~ before \\cite; use ~\\cite [SP03]\n",
		res.stdout)
	assert.Contains(t, res.stderr, "2 issues (2 warnings) in 1 of 1 file")
}

func TestLint_Disable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.tex", "see also\\cite{knuth}\n")

	res := execute(t, dir, "lint", "--rule", "SP03", "--disable", "tilde-before-cite", "doc.tex")

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestLint_UnknownRule(t *testing.T) {
	res := execute(t, t.TempDir(), "lint", "--rule", "XX99")
	assert.Equal(t, 2, res.code())
	assert.Contains(t, res.stderr, `unknown rule "XX99"`)
}

const unsortedBib = `@misc{zeta, title = {Z}, abstract = {long}}
@misc{Alpha, title = {A}}
`

func TestSortBib_Fixes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "refs.bib", unsortedBib)

	res := execute(t, dir, "sort-bib", "refs.bib")

	assert.Equal(t, 1, res.code())
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "FIXED: "+abs)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Less(t, bytes.Index(data, []byte("Alpha")), bytes.Index(data, []byte("zeta")))
	assert.NotContains(t, string(data), "abstract")

	// A second run finds nothing to do.
	res = execute(t, dir, "sort-bib", "refs.bib")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestSortBib_CheckOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "refs.bib", unsortedBib)

	res := execute(t, dir, "sort-bib", "--check-only", "refs.bib")

	assert.Equal(t, 1, res.code())
	assert.Contains(t, res.stdout, "UNSORTED: ")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, unsortedBib, string(data))
}

func TestSortBib_SilentOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "refs.bib", unsortedBib)

	res := execute(t, dir, "sort-bib", "--silent-overwrite", "refs.bib")

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, unsortedBib, string(data))
}

func TestSortBib_ParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "refs.bib", "@misc{a, title={x}}\n@misc{A, title={y}}\n")

	res := execute(t, dir, "sort-bib", "refs.bib")

	assert.Equal(t, 2, res.code())
	assert.Contains(t, res.stderr, "Error:")
}

func TestManifest(t *testing.T) {
	res := execute(t, t.TempDir(), "manifest")
	require.NoError(t, res.err)

	var hooks []commands.ManifestHook
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &hooks))

	ids := make([]string, 0, len(hooks))
	for _, h := range hooks {
		ids = append(ids, h.ID)
	}
	assert.Contains(t, ids, "ensure-labels")
	assert.Contains(t, ids, "no-space-before-cite")
	assert.Equal(t, "sort-bib", ids[len(ids)-1])
}

func TestManifest_File(t *testing.T) {
	dir := t.TempDir()
	res := execute(t, dir, "manifest", "--file", ".pre-commit-hooks.yaml")
	require.NoError(t, res.err)

	data, err := os.ReadFile(filepath.Join(dir, ".pre-commit-hooks.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "entry: latexhooks tilde-before-cite")
}

func TestRules(t *testing.T) {
	res := execute(t, t.TempDir(), "rules")
	require.NoError(t, res.err)
	for _, want := range []string{"SP01", "RF02", "CV03", "ensure-labels", "(opt-in)"} {
		assert.Contains(t, res.stdout, want)
	}

	res = execute(t, t.TempDir(), "rules", "ensure-labels")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "RF02 - ")
	assert.Contains(t, res.stdout, "--lookahead")
	assert.Contains(t, res.stdout, "lint.rules.RF02.lookahead")

	res = execute(t, t.TempDir(), "rules", "--group", "nope")
	assert.Equal(t, 2, res.code())
}

func TestCompletion(t *testing.T) {
	res := execute(t, t.TempDir(), "completion", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "latexhooks")
}
