package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/latexhooks/internal/cli/config"
	"github.com/leapstack-labs/latexhooks/pkg/lint"
	_ "github.com/leapstack-labs/latexhooks/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"spacing":    "Rules about spaces and ties around abbreviations and citations.",
	"references": "Rules about labels and cross-references.",
	"convention": "Rules about quotation marks, spelling and wording.",
}

// groupOrder is the order groups appear in on the rules page.
var groupOrder = []string{"spacing", "references", "convention"}

// generateRuleDocs generates the rule overview and reference pages.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.AllRules()

	if err := generateRulesIndex(outDir, rules); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	if err := generateRulesPage(outDir); err != nil {
		return err
	}
	log.Printf("  Generated rules.md")

	return nil
}

// generateRulesIndex generates the overview page with one row per rule.
func generateRulesIndex(outDir string, rules []lint.Rule) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "LaTeX lint rules shipped with latexhooks")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("latexhooks ships **%d rules**. Each one is a pre-commit hook of its own; %s runs all active rules in one pass.",
		lint.Count(), InlineCode("latexhooks lint")))

	var rows [][]string
	for _, rule := range rules {
		desc := cleanDescription(rule.Description())
		if rule.OptIn() {
			desc += " " + Bold("Opt-in.")
		}
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/rules/rules#%s)", rule.ID(), rule.ID()),
			InlineCode(rule.Hook()),
			InlineCode(rule.DefaultSeverity().String()),
			desc,
		})
	}
	w.Table([]string{"ID", "Hook", "Severity", "Description"}, rows)

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Almost certainly wrong"},
			{InlineCode("warning"), "Style problem that should be fixed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph(fmt.Sprintf("Rules are keyed by ID or hook name in %s:", InlineCode(config.DefaultConfigFile)))
	w.CodeBlock("yaml", `lint:
  disabled: [SP03]          # skip a rule in lint
  enabled: [SP02]           # add an opt-in rule
  severity:
    RF03: error             # override severity
  rules:
    forbidden-words:
      words: [obviously, clearly]`)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateRulesPage generates the full rule reference grouped by category.
func generateRulesPage(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rule Reference", "Documentation and options of every latexhooks rule")
	w.GeneratedMarker()

	w.Header(1, "Rule Reference")

	for _, group := range groupOrder {
		groupRules := lint.GetRulesByGroup(group)
		if len(groupRules) == 0 {
			continue
		}

		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()
		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		for _, rule := range groupRules {
			writeRuleDoc(w, rule)
		}
	}

	return os.WriteFile(filepath.Join(outDir, "rules.md"), w.Bytes(), 0600)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.Rule) {
	// ### RF02 - references.ensure_labels {#RF02}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", rule.ID(), rule.Name(), rule.ID()))
	w.Newline()

	w.Line(fmt.Sprintf("**Hook:** %s  ", InlineCode(rule.Hook())))
	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.DefaultSeverity().String())))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description()))

	if rationale := rule.Rationale(); rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(cleanDescription(rationale))
	}
	if bad := rule.BadExample(); bad != "" {
		w.Header(4, "Bad")
		w.CodeBlock("latex", bad)
	}
	if good := rule.GoodExample(); good != "" {
		w.Header(4, "Good")
		w.CodeBlock("latex", good)
	}
	if fix := rule.Fix(); fix != "" {
		w.Header(4, "How to Fix")
		w.Paragraph(fix)
	}

	if opts := rule.Options(); len(opts) > 0 {
		w.Header(4, "Options")
		rows := make([][]string, 0, len(opts))
		for _, opt := range opts {
			rows = append(rows, []string{
				InlineCode("--" + opt.FlagName()),
				InlineCode(config.RuleOptionKey(rule.ID(), opt.Key)),
				opt.Kind.String(),
				formatDefault(opt.Default),
				opt.Usage,
			})
		}
		w.Table([]string{"Flag", "Config key", "Type", "Default", "Description"}, rows)
	}
	if req := rule.RequireOneOf(); len(req) > 0 {
		w.Paragraph(fmt.Sprintf("At least one of %s is required when run as a hook.", InlineCode(strings.Join(req, ", "))))
	}

	w.Line("---")
	w.Newline()
}

func formatDefault(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case []string:
		codes := make([]string, len(d))
		for i, s := range d {
			codes[i] = InlineCode(s)
		}
		return strings.Join(codes, ", ")
	default:
		return InlineCode(fmt.Sprint(d))
	}
}
