package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/latexhooks/internal/cli/config"
	"github.com/leapstack-labs/latexhooks/internal/cli/output"
	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show rationale under each rule
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id|hook]",
		Short: "List available rules",
		Long: `List all rules with their hook names and default severities.

Pass a rule ID or hook name to see its documentation and options.`,
		Example: `  # List all rules
  latexhooks rules

  # Show details for a specific rule
  latexhooks rules RF02
  latexhooks rules ensure-labels

  # List rules in the spacing group
  latexhooks rules --group spacing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0])
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	// Shadows the global --verbose; keep it away from the log level.
	_ = config.BindFlag(cmd.Flags(), "verbose", "rules.verbose")

	return cmd
}

func newTable(r *output.Renderer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	if r.EffectiveMode() == output.ModePlain {
		t.SetStyle(table.StyleDefault)
	} else {
		t.SetStyle(table.StyleLight)
	}
	return t
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := NewCommandContext(cmd).Renderer

	var rules []lint.RuleInfo
	if opts.Group == "" {
		rules = lint.AllRuleInfo()
	} else {
		for _, rule := range lint.GetRulesByGroup(opts.Group) {
			rules = append(rules, lint.GetRuleInfo(rule))
		}
	}
	if len(rules) == 0 {
		return fmt.Errorf("no rules in group %q", opts.Group)
	}

	// Sort by group, then ID
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})

	t := newTable(r)
	t.AppendHeader(table.Row{"ID", "Hook", "Group", "Severity", "Description"})
	for _, rule := range rules {
		desc := rule.Description
		if rule.OptIn {
			desc += " (opt-in)"
		}
		if opts.Verbose && rule.Rationale != "" {
			desc += "\n" + r.Styles().Muted.Render(oneLine(rule.Rationale))
		}
		t.AppendRow(table.Row{rule.ID, rule.Hook, rule.Group, r.SeverityLabel(rule.DefaultSeverity), desc})
	}
	t.Render()

	r.Println("")
	r.Println(r.Styles().Muted.Render("Use 'latexhooks rules <rule-id>' for detailed documentation"))
	return nil
}

func showRule(cmd *cobra.Command, name string) error {
	r := NewCommandContext(cmd).Renderer

	rule, err := config.ResolveRule(name)
	if err != nil {
		return err
	}
	info := lint.GetRuleInfo(rule)
	styles := r.Styles()

	r.Println(styles.Header.Render(fmt.Sprintf("%s - %s", info.ID, info.Name)))
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Hook"), info.Hook)
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), info.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), r.SeverityLabel(info.DefaultSeverity))
	if info.OptIn {
		r.Printf("  %s: only under 'lint --enable %s'\n", styles.Bold.Render("Opt-in"), info.ID)
	}
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + info.Description)
	r.Println("")

	if info.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + oneLine(info.Rationale))
		r.Println("")
	}

	if info.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(info.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if info.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(info.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if info.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + info.Fix)
		r.Println("")
	}

	if len(info.Options) > 0 {
		r.Println(styles.Bold.Render("Options"))
		t := newTable(r)
		t.AppendHeader(table.Row{"Flag", "Config key", "Type", "Default", "Description"})
		for _, opt := range info.Options {
			t.AppendRow(table.Row{
				"--" + opt.FlagName(),
				config.RuleOptionKey(info.ID, opt.Key),
				opt.Kind.String(),
				formatDefault(opt.Default),
				opt.Usage,
			})
		}
		t.Render()
	}

	return nil
}

func formatDefault(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(d, ", ")
	default:
		return fmt.Sprint(d)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
