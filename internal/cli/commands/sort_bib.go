package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/latexhooks/pkg/bibtex"
)

// SortBibOptions holds options for the sort-bib command.
type SortBibOptions struct {
	BannedFields    []string
	CheckOnly       bool
	SilentOverwrite bool
}

// NewSortBibCommand creates the sort-bib command.
func NewSortBibCommand() *cobra.Command {
	opts := &SortBibOptions{}
	cmd := &cobra.Command{
		Use:     "sort-bib [flags] FILE...",
		Short:   "Sort BibTeX entries by key and drop banned fields",
		GroupID: HooksGroupID,
		Long: `Sort the entries of each .bib file by key, ignoring case, and remove
fields such as abstract and file that reference managers export.

By default a file that needs changes is rewritten, reported as
"FIXED: <path>" and the command exits 1 so the commit is retried with the
fixed file. --check-only reports without writing; --silent-overwrite
rewrites without failing.`,
		Example: `  latexhooks sort-bib refs.bib
  latexhooks sort-bib --check-only refs.bib
  latexhooks sort-bib --banned-fields abstract,url refs.bib`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSortBib(cmd, opts, args)
		},
	}

	cmd.Flags().StringSliceVar(&opts.BannedFields, "banned-fields", bibtex.DefaultBannedFields, "Fields to strip from entries")
	cmd.Flags().BoolVar(&opts.CheckOnly, "check-only", false, "Report unsorted files without rewriting them")
	cmd.Flags().BoolVar(&opts.SilentOverwrite, "silent-overwrite", false, "Rewrite files without failing")
	cmd.MarkFlagsMutuallyExclusive("check-only", "silent-overwrite")

	return cmd
}

func runSortBib(cmd *cobra.Command, opts *SortBibOptions, paths []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	failed := false
	for _, path := range paths {
		lib, err := bibtex.ParseFile(path)
		if err != nil {
			return err
		}
		reordered := lib.Sort()
		dropped := lib.DropFields(opts.BannedFields...)
		cmdCtx.Logger.Debug("checked bibliography",
			slog.String("path", path),
			slog.Int("entries", len(lib.Entries)),
			slog.Bool("reordered", reordered),
			slog.Int("dropped_fields", dropped))

		if !reordered && dropped == 0 {
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if opts.CheckOnly {
			failed = true
			r.Printf("UNSORTED: %s\n", abs)
			continue
		}

		if err := writeFilePreservingMode(path, []byte(lib.Format())); err != nil {
			return err
		}
		if !opts.SilentOverwrite {
			failed = true
			r.Printf("FIXED: %s\n", abs)
		}
	}

	if failed {
		return ErrIssuesFound
	}
	return nil
}

func writeFilePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
