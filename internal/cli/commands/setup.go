package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/latexhooks/internal/cli/config"
	"github.com/leapstack-labs/latexhooks/internal/cli/output"
	"github.com/leapstack-labs/latexhooks/pkg/lint"
	_ "github.com/leapstack-labs/latexhooks/pkg/lint/rules" // register rules
)

// ErrIssuesFound is returned when a check reported at least one problem.
// main maps it to exit status 1; every other error is status 2.
var ErrIssuesFound = errors.New("issues found")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Jobs returns the number of files scanned at once. Zero means one per CPU.
func (c *CommandContext) Jobs() int {
	if c.Cfg.Jobs == 0 {
		return runtime.NumCPU()
	}
	return c.Cfg.Jobs
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	cfg := config.Default()
	cfg.OutputFormat = getEnvOrDefault("LATEXHOOKS_OUTPUT", config.DefaultOutput)
	cfg.Verbose = os.Getenv("LATEXHOOKS_VERBOSE") == "true"
	cfg.Context = os.Getenv("LATEXHOOKS_CONTEXT") == "true"
	if jobs, err := strconv.Atoi(os.Getenv("LATEXHOOKS_JOBS")); err == nil && jobs >= 0 {
		cfg.Jobs = jobs
	}
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// runCheck validates the rule options, scans paths and prints the results.
// Configuration errors are returned before any file is read.
func runCheck(cmd *cobra.Command, cmdCtx *CommandContext, lintCfg *lint.Config, paths []string, opts ...lint.RunnerOption) error {
	opts = append([]lint.RunnerOption{
		lint.WithJobs(cmdCtx.Jobs()),
		lint.WithLogger(cmdCtx.Logger),
	}, opts...)

	runner, err := lint.NewRunner(lintCfg, opts...)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ruleIDs := make([]string, 0, len(runner.Rules()))
	for _, rule := range runner.Rules() {
		ruleIDs = append(ruleIDs, rule.ID())
	}
	cmdCtx.Logger.Debug("running checks",
		slog.Any("rules", ruleIDs),
		slog.Int("files", len(paths)),
		slog.Int("jobs", cmdCtx.Jobs()))

	if len(paths) == 0 {
		return nil
	}

	diags, err := runner.Run(cmd.Context(), paths)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	r.Diagnostics(diags, cmdCtx.Cfg.Context)
	r.Summary(output.Summarize(len(paths), diags))

	if len(diags) > 0 {
		return ErrIssuesFound
	}
	return nil
}
