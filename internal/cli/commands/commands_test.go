package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/latexhooks/internal/cli/config"
	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

func mustRule(t *testing.T, id string) lint.Rule {
	t.Helper()
	rule, ok := lint.GetRuleByID(id)
	require.True(t, ok, "rule %s not registered", id)
	return rule
}

func TestNewHookCommands(t *testing.T) {
	cmds := NewHookCommands()
	require.NotEmpty(t, cmds)

	names := make(map[string]bool, len(cmds))
	for _, cmd := range cmds {
		names[cmd.Name()] = true
		assert.Equal(t, HooksGroupID, cmd.GroupID, "%s should be in the hooks group", cmd.Name())
		assert.NotEmpty(t, cmd.Short)
	}
	for _, want := range []string{
		"abbreviation-spacing", "no-space-before-cite", "tilde-before-cite",
		"cleveref-capitalization", "ensure-labels", "duplicate-labels",
		"quotation-marks", "consistent-spelling", "forbidden-words",
	} {
		assert.True(t, names[want], "missing hook command %s", want)
	}
}

func TestNewHookCommand_Flags(t *testing.T) {
	tests := []struct {
		ruleID  string
		flag    string
		typ     string
		def     string
		cfgKey  string
		notFlag string
	}{
		{ruleID: "RF02", flag: "lookahead", typ: "int", def: "1", cfgKey: "lint.rules.RF02.lookahead"},
		{ruleID: "RF02", flag: "enforce-slug", typ: "bool", def: "true", cfgKey: "lint.rules.RF02.enforce_slug"},
		{ruleID: "RF02", flag: "level", typ: "stringArray", cfgKey: "lint.rules.RF02.levels", notFlag: "levels"},
		{ruleID: "CV02", flag: "regex", typ: "stringArray", def: "[]", cfgKey: "lint.rules.CV02.regex"},
		{ruleID: "CV01", flag: "macro", typ: "string", def: `\enquote`, cfgKey: "lint.rules.CV01.macro"},
		{ruleID: "CV02", flag: "mode", typ: "string", def: "canonical", cfgKey: "lint.rules.CV02.mode"},
	}

	for _, tt := range tests {
		t.Run(tt.ruleID+"/"+tt.flag, func(t *testing.T) {
			cmd := NewHookCommand(mustRule(t, tt.ruleID))
			f := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, f, "flag %q should exist", tt.flag)
			assert.Equal(t, tt.typ, f.Value.Type())
			if tt.def != "" {
				assert.Equal(t, tt.def, f.DefValue)
			}
			assert.Equal(t, []string{tt.cfgKey}, f.Annotations[config.KeyAnnotation])
			if tt.notFlag != "" {
				assert.Nil(t, cmd.Flags().Lookup(tt.notFlag))
			}
		})
	}
}

func TestNewHookCommand_Use(t *testing.T) {
	cmd := NewHookCommand(mustRule(t, "SP03"))
	assert.Equal(t, "tilde-before-cite [flags] FILE...", cmd.Use)
	assert.Contains(t, cmd.Long, "(SP03)")
	assert.Contains(t, cmd.Example, "latexhooks tilde-before-cite")
}

func TestHookLong_RequireOneOf(t *testing.T) {
	long := hookLong(mustRule(t, "CV02"))
	assert.Contains(t, long, "At least one of --emph or --regex must be given")
	assert.Contains(t, long, "lint.rules.CV02")

	assert.NotContains(t, hookLong(mustRule(t, "SP03")), "At least one of")
}

func TestFlagList(t *testing.T) {
	rf02 := mustRule(t, "RF02")
	assert.Equal(t, "--level", flagList(rf02, []string{"levels"}))
	assert.Equal(t, "--level or --enforce-slug", flagList(rf02, []string{"levels", "enforce_slug"}))
	assert.Equal(t, "--unknown", flagList(rf02, []string{"unknown"}))
}

func TestRunHook_RequireOneOf(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewHookCommand(mustRule(t, "CV02"))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"doc.tex"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consistent-spelling: at least one of --emph or --regex is required")
}

func TestBuildLintConfig_EnableDisable(t *testing.T) {
	cfg := config.Default()
	cfg.Lint.Disabled = []string{"SP01"}

	lintCfg, err := buildLintConfig(cfg, &LintOptions{
		Enable:  []string{"no-space-before-cite"},
		Disable: []string{"tilde-before-cite"},
	})
	require.NoError(t, err)

	assert.True(t, lintCfg.IsActive(mustRule(t, "SP02")))
	assert.False(t, lintCfg.IsActive(mustRule(t, "SP03")))
	assert.False(t, lintCfg.IsActive(mustRule(t, "SP01")))
	assert.True(t, lintCfg.IsActive(mustRule(t, "RF02")))

	_, err = buildLintConfig(cfg, &LintOptions{Enable: []string{"nope"}})
	assert.Error(t, err)
}

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [flags] FILE...", cmd.Use)
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	for _, flag := range []string{"rule", "disable", "enable"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr string
	}{
		{
			name: "list all",
			want: []string{"SP01", "SP02", "SP03", "RF01", "RF02", "RF03", "CV01", "CV02", "CV03", "(opt-in)"},
		},
		{
			name:    "filter by group",
			args:    []string{"--group", "references"},
			want:    []string{"RF01", "RF03"},
			notWant: []string{"SP01", "CV01"},
		},
		{
			name: "show by hook",
			args: []string{"forbidden-words"},
			want: []string{"CV03 - ", "Hook: forbidden-words", "Description", "Options", "--word", "lint.rules.CV03.words"},
		},
		{
			name: "show lower-case ID",
			args: []string{"sp02"},
			want: []string{"SP02 - ", "Opt-in: only under 'lint --enable SP02'"},
		},
		{
			name:    "unknown rule",
			args:    []string{"ZZ01"},
			wantErr: `unknown rule "ZZ01"`,
		},
		{
			name:    "empty group",
			args:    []string{"--group", "nope"},
			wantErr: `no rules in group "nope"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRulesCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(new(bytes.Buffer))
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			out := buf.String()
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, out, notWant)
			}
			assert.NotContains(t, out, "\x1b[", "buffers are not terminals")
		})
	}
}

func TestFormatDefault(t *testing.T) {
	assert.Equal(t, "", formatDefault(nil))
	assert.Equal(t, "e.g., i.e.", formatDefault([]string{"e.g.", "i.e."}))
	assert.Equal(t, "1", formatDefault(1))
	assert.Equal(t, "true", formatDefault(true))
}

func TestManifestHooks(t *testing.T) {
	hooks := ManifestHooks()
	require.Len(t, hooks, lint.Count()+1)

	for i, h := range hooks[:len(hooks)-1] {
		assert.Equal(t, "latexhooks "+h.ID, h.Entry)
		assert.Equal(t, "golang", h.Language)
		assert.Equal(t, []string{"tex"}, h.Types)
		if i > 0 {
			prev, _ := lint.GetRuleByHook(hooks[i-1].ID)
			cur, _ := lint.GetRuleByHook(h.ID)
			assert.Less(t, prev.ID(), cur.ID(), "hooks are ordered by rule ID")
		}
	}

	last := hooks[len(hooks)-1]
	assert.Equal(t, "sort-bib", last.ID)
	assert.Equal(t, `\.bib$`, last.Files)
	assert.Empty(t, last.Types)
}

func TestWriteManifest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteManifest(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, manifestHeader))
	assert.Contains(t, out, "- id: ensure-labels\n  name: Ensure labels\n")
	assert.Contains(t, out, "files: \\.bib$")
}

func TestHookTitle(t *testing.T) {
	assert.Equal(t, "Ensure labels", hookTitle("ensure-labels"))
	assert.Equal(t, "Sort bib", hookTitle("sort-bib"))
	assert.Equal(t, "", hookTitle(""))
}

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantOut []string
	}{
		{
			name:    "release",
			version: "1.2.3",
			wantOut: []string{"latexhooks v1.2.3", "commit abc123, built 2026-01-01"},
		},
		{
			name:    "dev version",
			version: "dev",
			wantOut: []string{"latexhooks vdev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version, "abc123", "2026-01-01")
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			require.NoError(t, cmd.Execute())
			for _, want := range tt.wantOut {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestSortBibCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	require.NoError(t, os.WriteFile(path, []byte("@misc{b, title = {B}}\n@misc{a, title = {A}, file = {x.pdf}}\n"), 0o600))

	cmd := NewSortBibCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, buf.String(), "FIXED: "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "file mode is preserved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "x.pdf")
}

func TestSortBibCommand_Exclusive(t *testing.T) {
	cmd := NewSortBibCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--check-only", "--silent-overwrite", "refs.bib"})

	assert.Error(t, cmd.Execute())
}

func TestCommandContext_Jobs(t *testing.T) {
	c := &CommandContext{Cfg: config.Default()}
	c.Cfg.Jobs = 4
	assert.Equal(t, 4, c.Jobs())
	c.Cfg.Jobs = 0
	assert.Positive(t, c.Jobs())
}
