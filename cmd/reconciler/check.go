package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"trade-netting/internal/presenter"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	file string

	out io.Writer
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "exit non-zero when a ticker of the blotter does not net to zero" }
func (*checkCmd) Usage() string {
	return `reconciler check -f <blotter.xlsx|blotter.csv>

  Prints a one line status. Exits 0 when every ticker nets to zero and 1 when
  any ticker does not, or when the blotter cannot be read.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Path to the trade blotter (.xlsx or .csv)")
}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f is required.")
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := a.uc.Reconcile(ctx, c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describe(err))
		return subcommands.ExitFailure
	}

	fmt.Fprintln(c.out, presenter.StatusLine(report))
	if !report.Balanced {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
