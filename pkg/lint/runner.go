package lint

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Runner applies the active rules to a list of files.
type Runner struct {
	config   *Config
	rules    []Rule
	explicit bool // rules came from WithRules
	jobs     int
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithJobs sets how many files may be scanned at once. Values below 1 mean 1.
func WithJobs(n int) RunnerOption {
	return func(r *Runner) {
		if n < 1 {
			n = 1
		}
		r.jobs = n
	}
}

// WithLogger sets the logger used for per-file debug output.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRules restricts the runner to the given rules instead of the active
// registry rules. Config still supplies options and severities.
func WithRules(rules ...Rule) RunnerOption {
	return func(r *Runner) {
		r.rules = rules
		r.explicit = true
	}
}

// NewRunner resolves the active rules and validates their options.
// A configuration error is returned before any file is touched.
func NewRunner(config *Config, opts ...RunnerOption) (*Runner, error) {
	if config == nil {
		config = NewConfig()
	}
	r := &Runner{
		config: config,
		jobs:   1,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	if !r.explicit {
		for _, rule := range AllRules() {
			if config.IsActive(rule) {
				r.rules = append(r.rules, rule)
			}
		}
	}

	for _, rule := range r.rules {
		if err := rule.Validate(config.GetRuleOptions(rule.ID())); err != nil {
			return nil, fmt.Errorf("rule %s (%s): %w", rule.ID(), rule.Hook(), err)
		}
	}

	return r, nil
}

// Rules returns the rules this runner applies.
func (r *Runner) Rules() []Rule {
	return r.rules
}

// CheckSource applies every rule to an in-memory source.
func (r *Runner) CheckSource(src *Source) []Diagnostic {
	var diagnostics []Diagnostic
	for _, rule := range r.rules {
		diags := rule.Check(src, r.config.GetRuleOptions(rule.ID()))
		for i := range diags {
			diags[i].Severity = r.config.GetSeverity(rule.ID(), diags[i].Severity)
			if diags[i].Path == "" {
				diags[i].Path = src.Path
			}
		}
		for _, d := range diags {
			if d.Severity <= r.config.MinSeverity {
				diagnostics = append(diagnostics, d)
			}
		}
	}
	SortDiagnostics(diagnostics)
	return diagnostics
}

// Run loads and checks every path. Any read error aborts the run and no
// diagnostics are returned.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Diagnostic, error) {
	results := make([][]Diagnostic, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := LoadSource(path)
			if err != nil {
				return err
			}
			results[i] = r.CheckSource(src)
			r.logger.Debug("checked file",
				slog.String("path", path),
				slog.Int("lines", len(src.Lines)),
				slog.Int("diagnostics", len(results[i])))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Diagnostic
	for _, diags := range results {
		all = append(all, diags...)
	}
	SortDiagnostics(all)
	return all, nil
}

// SortDiagnostics orders diagnostics by path, line, column and rule ID.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		return a.RuleID < b.RuleID
	})
}
