package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/latexhooks/internal/cli/config"
	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

// HooksGroupID groups the per-rule hook commands in help output.
const HooksGroupID = "hooks"

// NewHookCommands creates one subcommand per registered rule.
func NewHookCommands() []*cobra.Command {
	var cmds []*cobra.Command
	for _, rule := range lint.AllRules() {
		if rule.Hook() == "" {
			continue
		}
		cmds = append(cmds, NewHookCommand(rule))
	}
	return cmds
}

// NewHookCommand creates the command that runs a single rule. Its flags are
// generated from the rule's options and bound to lint.rules.<ID>.<key>.
func NewHookCommand(rule lint.Rule) *cobra.Command {
	cmd := &cobra.Command{
		Use:     rule.Hook() + " [flags] FILE...",
		Short:   rule.Description(),
		Long:    hookLong(rule),
		GroupID: HooksGroupID,
		Example: fmt.Sprintf("  latexhooks %s main.tex chapters/*.tex", rule.Hook()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, rule, args)
		},
	}

	for _, opt := range rule.Options() {
		addOptionFlag(cmd.Flags(), rule.ID(), opt)
	}

	return cmd
}

func hookLong(rule lint.Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", rule.Description(), rule.ID())
	if rule.Rationale() != "" {
		b.WriteString("\n" + rule.Rationale() + "\n")
	}
	if req := rule.RequireOneOf(); len(req) > 0 {
		fmt.Fprintf(&b, "\nAt least one of %s must be given, on the command line or under\nlint.rules.%s in %s.\n",
			flagList(rule, req), rule.ID(), config.DefaultConfigFile)
	}
	return b.String()
}

// addOptionFlag declares the flag for a rule option. List options are
// repeatable and keep commas, so regex patterns pass through intact.
func addOptionFlag(fs *pflag.FlagSet, ruleID string, opt lint.OptionDef) {
	name := opt.FlagName()
	switch opt.Kind {
	case lint.OptionStringList:
		def, _ := opt.Default.([]string)
		fs.StringArray(name, def, opt.Usage)
	case lint.OptionInt:
		def, _ := opt.Default.(int)
		fs.Int(name, def, opt.Usage)
	case lint.OptionBool:
		def, _ := opt.Default.(bool)
		fs.Bool(name, def, opt.Usage)
	default:
		def, _ := opt.Default.(string)
		fs.String(name, def, opt.Usage)
	}
	// The flag was declared above, so SetAnnotation cannot fail.
	_ = config.BindFlag(fs, name, config.RuleOptionKey(ruleID, opt.Key))
}

func runHook(cmd *cobra.Command, rule lint.Rule, paths []string) error {
	cmdCtx := NewCommandContext(cmd)

	lintCfg, err := config.BuildLintConfig(cmdCtx.Cfg)
	if err != nil {
		return err
	}

	if req := rule.RequireOneOf(); len(req) > 0 {
		opts := lintCfg.GetRuleOptions(rule.ID())
		found := false
		for _, key := range req {
			if lint.HasOption(opts, key) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s: at least one of %s is required", rule.Hook(), flagList(rule, req))
		}
	}

	return runCheck(cmd, cmdCtx, lintCfg, paths, lint.WithRules(rule))
}

// flagList renders option keys as "--emph or --regex".
func flagList(rule lint.Rule, keys []string) string {
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name := key
		for _, opt := range rule.Options() {
			if opt.Key == key {
				name = opt.FlagName()
				break
			}
		}
		names = append(names, "--"+name)
	}
	return strings.Join(names, " or ")
}
