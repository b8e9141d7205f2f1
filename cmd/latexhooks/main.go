// Package main is the latexhooks command: pre-commit hooks for LaTeX
// sources and BibTeX files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/latexhooks/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.ExitCode(cli.Execute(ctx, args, os.Stdout, os.Stderr))
}
