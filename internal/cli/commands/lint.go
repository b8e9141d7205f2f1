package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/latexhooks/internal/cli/config"
	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Rules   []string // Run only these rules (IDs or hook names)
	Disable []string // Rules to skip
	Enable  []string // Opt-in rules to add
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [flags] FILE...",
		Short: "Run all configured rules",
		Long: `Run every active rule over the given files.

Rules, severities and options come from .latexhooks.yaml (searched upward
from the working directory), LATEXHOOKS_* environment variables and flags.
Opt-in rules such as no-space-before-cite only run when enabled.

Exit status is 0 when no issues are found, 1 when issues are found and 2
on configuration or read errors.`,
		Example: `  # Lint all sources
  latexhooks lint *.tex

  # Only run two rules
  latexhooks lint --rule SP01 --rule ensure-labels main.tex

  # Add an opt-in rule, skip another
  latexhooks lint --enable SP02 --disable SP03 main.tex

  # Only report errors
  latexhooks lint --severity error main.tex`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts, args)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs or hooks to disable")
	cmd.Flags().StringSliceVar(&opts.Enable, "enable", nil, "Opt-in rule IDs or hooks to enable")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions, paths []string) error {
	cmdCtx := NewCommandContext(cmd)

	lintCfg, err := buildLintConfig(cmdCtx.Cfg, opts)
	if err != nil {
		return err
	}

	var runnerOpts []lint.RunnerOption
	if len(opts.Rules) > 0 {
		rules := make([]lint.Rule, 0, len(opts.Rules))
		for _, name := range opts.Rules {
			rule, err := config.ResolveRule(name)
			if err != nil {
				return err
			}
			if !lintCfg.IsDisabled(rule.ID()) {
				rules = append(rules, rule)
			}
		}
		runnerOpts = append(runnerOpts, lint.WithRules(rules...))
	}

	return runCheck(cmd, cmdCtx, lintCfg, paths, runnerOpts...)
}

// buildLintConfig applies CLI overrides on top of the configured settings.
func buildLintConfig(cfg *config.Config, opts *LintOptions) (*lint.Config, error) {
	lintCfg, err := config.BuildLintConfig(cfg)
	if err != nil {
		return nil, err
	}
	for _, name := range opts.Enable {
		rule, err := config.ResolveRule(name)
		if err != nil {
			return nil, err
		}
		lintCfg.Enable(rule.ID())
	}
	for _, name := range opts.Disable {
		rule, err := config.ResolveRule(name)
		if err != nil {
			return nil, err
		}
		lintCfg.Disable(rule.ID())
	}
	return lintCfg, nil
}
