package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/latexhooks/internal/cli"
	"github.com/leapstack-labs/latexhooks/internal/cli/commands"
	"github.com/leapstack-labs/latexhooks/internal/cli/config"
)

// generateCLIDocs generates CLI documentation from Cobra commands.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	// Create output directory
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Get root command
	rootCmd := cli.NewRootCmd()

	// Generate index page
	if err := generateCLIIndex(rootCmd, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	// Generate page for each command
	for _, cmd := range rootCmd.Commands() {
		if !documented(cmd) {
			continue
		}
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

// generateCLIIndex generates the CLI overview page.
func generateCLIIndex(rootCmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for latexhooks")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("latexhooks bundles pre-commit hooks for LaTeX sources and BibTeX files into one binary. Each hook is a subcommand.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/latexhooks/cmd/latexhooks@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", "latexhooks <hook> [options] FILE...")

	hooks, other := splitCommands(rootCmd)

	w.Header(2, "Hooks")
	w.Table([]string{"Hook", "Description"}, commandRows(hooks))

	w.Header(2, "Other Commands")
	w.Table([]string{"Command", "Description"}, commandRows(other))

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Configuration")
	w.Paragraph(fmt.Sprintf("Settings are read from the nearest %s, searched upward from the working directory, "+
		"then from %s environment variables and finally from flags. A double underscore separates nested keys.",
		InlineCode(config.DefaultConfigFile), InlineCode(config.EnvPrefix+"*")))
	w.CodeBlock("yaml", `output: plain
jobs: 4
lint:
  disabled: [CV01]
  enabled: [no-space-before-cite]
  min_severity: warning
  severity:
    RF03: error
  rules:
    ensure-labels:
      lookahead: 2
    consistent-spelling:
      regex: ["dataset=data[ -]?set"]`)
	w.Table([]string{"Variable", "Key"}, [][]string{
		{InlineCode(config.EnvPrefix + "OUTPUT"), InlineCode("output")},
		{InlineCode(config.EnvPrefix + "JOBS"), InlineCode("jobs")},
		{InlineCode(config.EnvPrefix + "LINT__MIN_SEVERITY"), InlineCode("lint.min_severity")},
		{InlineCode(config.EnvPrefix + "LINT__RULES__RF02__LOOKAHEAD"), InlineCode("lint.rules.RF02.lookahead")},
	})

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "No issues"},
		{InlineCode("1"), "Issues found, or sort-bib rewrote a file"},
		{InlineCode("2"), "Configuration or read error (check stderr for details)"},
	})

	w.Header(2, "Getting Help")
	w.CodeBlock("bash", `# General help
latexhooks --help

# Hook-specific help
latexhooks ensure-labels --help`)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// splitCommands separates hook commands from the rest, skipping help.
func splitCommands(rootCmd *cobra.Command) (hooks, other []*cobra.Command) {
	for _, cmd := range rootCmd.Commands() {
		if !documented(cmd) {
			continue
		}
		if cmd.GroupID == commands.HooksGroupID {
			hooks = append(hooks, cmd)
		} else {
			other = append(other, cmd)
		}
	}
	return hooks, other
}

func documented(cmd *cobra.Command) bool {
	return !cmd.Hidden && cmd.Name() != "help" && cmd.Name() != "__complete"
}

func commandRows(cmds []*cobra.Command) [][]string {
	rows := make([][]string, 0, len(cmds))
	for _, cmd := range cmds {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	return rows
}

// generateCommandPage generates documentation for a single command.
func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	// Frontmatter
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.CodeBlock("", cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	// Usage
	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if !strings.HasPrefix(useLine, "latexhooks") {
		useLine = "latexhooks " + useLine
	}
	w.CodeBlock("bash", useLine)

	// Local flags
	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	// Inherited flags from parent
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	// Examples
	if cmd.Example != "" {
		w.Header(2, "Examples")
		// Clean up example - remove common leading whitespace
		example := cleanExample(cmd.Example)
		w.CodeBlock("bash", example)
	}

	// Write file
	filename := filepath.Join(outDir, cmd.Name()+".md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

// writeFlagsTable writes a table of flags.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	headers := []string{"Option", "Short", "Default", "Description", "Config key"}
	var rows [][]string

	flags.VisitAll(func(f *pflag.Flag) {
		// Skip hidden flags
		if f.Hidden {
			return
		}

		option := "--" + f.Name
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}

		defVal := f.DefValue
		switch {
		case defVal == "":
			// Keep empty
		case defVal == "false" || defVal == "true":
			// Keep as-is for booleans
		case f.Value.Type() == "string" && defVal != "":
			defVal = InlineCode(defVal)
		}

		desc := cleanDescription(f.Usage)

		key := ""
		if keys := f.Annotations[config.KeyAnnotation]; len(keys) > 0 && strings.HasPrefix(keys[0], "lint.") {
			key = InlineCode(keys[0])
		}

		rows = append(rows, []string{
			InlineCode(option),
			short,
			defVal,
			desc,
			key,
		})
	})

	w.Table(headers, rows)
}

// cleanExample removes common leading whitespace from example text.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	if len(lines) == 0 {
		return example
	}

	// Find minimum indentation (ignoring empty lines)
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	// Remove common indentation
	var result []string
	for _, line := range lines {
		if len(line) >= minIndent {
			result = append(result, line[minIndent:])
		} else {
			result = append(result, strings.TrimLeft(line, " \t"))
		}
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
