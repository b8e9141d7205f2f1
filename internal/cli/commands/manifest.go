package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/latexhooks/pkg/lint"
)

// ManifestHook is one entry of .pre-commit-hooks.yaml.
type ManifestHook struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Entry       string   `yaml:"entry"`
	Language    string   `yaml:"language"`
	Types       []string `yaml:"types,omitempty"`
	Files       string   `yaml:"files,omitempty"`
}

const manifestHeader = "# Generated by `latexhooks manifest`. Do not edit.\n"

// NewManifestCommand creates the manifest command.
func NewManifestCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the pre-commit hook manifest",
		Long: `Print a .pre-commit-hooks.yaml declaring every hook: one per rule plus
sort-bib. Rule hooks run on files of type tex; sort-bib on *.bib files.`,
		Example: `  latexhooks manifest > .pre-commit-hooks.yaml
  latexhooks manifest --file .pre-commit-hooks.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return WriteManifest(cmd.OutOrStdout())
			}
			var buf bytes.Buffer
			if err := WriteManifest(&buf); err != nil {
				return err
			}
			if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil { //nolint:gosec // manifest is a public repo file
				return fmt.Errorf("write %s: %w", file, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write the manifest to a file instead of stdout")
	return cmd
}

// ManifestHooks lists the hooks in manifest order: rules by ID, then sort-bib.
func ManifestHooks() []ManifestHook {
	var hooks []ManifestHook
	for _, rule := range lint.AllRules() {
		if rule.Hook() == "" {
			continue
		}
		hooks = append(hooks, ManifestHook{
			ID:          rule.Hook(),
			Name:        hookTitle(rule.Hook()),
			Description: rule.Description(),
			Entry:       "latexhooks " + rule.Hook(),
			Language:    "golang",
			Types:       []string{"tex"},
		})
	}
	return append(hooks, ManifestHook{
		ID:          "sort-bib",
		Name:        "Sort bib",
		Description: "Sort BibTeX entries by key and drop banned fields.",
		Entry:       "latexhooks sort-bib",
		Language:    "golang",
		Files:       `\.bib$`,
	})
}

// WriteManifest encodes the manifest as YAML.
func WriteManifest(w io.Writer) error {
	if _, err := io.WriteString(w, manifestHeader); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ManifestHooks()); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}

// hookTitle turns "ensure-labels" into "Ensure labels".
func hookTitle(hook string) string {
	s := strings.ReplaceAll(hook, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
