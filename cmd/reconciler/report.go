package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"trade-netting/internal/presenter"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	file          string
	discrepancies bool
	format        string
	plain         bool
	style         string
	width         int

	out io.Writer
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the netting report of a daily trade blotter" }
func (*reportCmd) Usage() string {
	return `reconciler report -f <blotter.xlsx|blotter.csv> [-discrepancies] [-format markdown|json] [-plain]

  Nets buys against sells per base ticker and prints one row per ticker.
  With -discrepancies only the tickers whose net is not zero are printed.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Path to the trade blotter (.xlsx or .csv)")
	f.BoolVar(&c.discrepancies, "discrepancies", false, "only print tickers that do not net to zero")
	f.StringVar(&c.format, "format", "markdown", "output format: markdown or json")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering it for the terminal")
	f.StringVar(&c.style, "style", "auto", "terminal style: auto, dark, light, notty or ascii")
	f.IntVar(&c.width, "width", 120, "word wrap width of the terminal rendering")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f is required.")
		return subcommands.ExitUsageError
	}
	if c.format != "markdown" && c.format != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q.\n", c.format)
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

	if c.format == "json" {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		var v interface{} = report
		if c.discrepancies {
			v = report.Discrepancies
		}
		if err := enc.Encode(v); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate JSON report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	md := presenter.ReportMarkdown(report, presenter.MarkdownOptions{
		Title:             "Resultados del Neteo: " + filepath.Base(c.file),
		OnlyDiscrepancies: c.discrepancies,
	})
	if !c.plain {
		rendered, err := presenter.Terminal(md, c.style, c.width)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
			return subcommands.ExitFailure
		}
		md = rendered
	}
	fmt.Fprint(c.out, md)
	return subcommands.ExitSuccess
}
