// Package presenter renders reconciliation reports for people.
package presenter

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"trade-netting/internal/domain"
)

//go:embed templates/*.md
var templates embed.FS

const (
	msgBalanced   = "¡Todas las cantidades de compras y ventas están neteadas (neto = 0 para todos los tickers)!"
	msgUnbalanced = "Algunas cantidades no están neteadas. Revisa los tickers con 'Neto' diferente de 0."
)

var funcs = template.FuncMap{"cell": escapeCell}

// MarkdownOptions selects what ReportMarkdown includes.
type MarkdownOptions struct {
	Title             string
	OnlyDiscrepancies bool // render only the discrepancy table
	SkipDiscrepancies bool // omit the discrepancy section after the full table
}

type reportView struct {
	Title             string
	Report            *domain.ReconciliationReport
	SkipDiscrepancies bool
	MsgBalanced       string
	MsgUnbalanced     string
}

// ReportMarkdown renders the report as a markdown document: a netting table,
// a status line and, when something does not net, the discrepancies.
func ReportMarkdown(r *domain.ReconciliationReport, opts MarkdownOptions) string {
	view := reportView{
		Title:             opts.Title,
		Report:            r,
		SkipDiscrepancies: opts.SkipDiscrepancies,
		MsgBalanced:       msgBalanced,
		MsgUnbalanced:     msgUnbalanced,
	}
	if view.Title == "" {
		view.Title = "Resultados del Neteo"
	}

	partials := map[string]string{"table": "table.md"}
	if opts.OnlyDiscrepancies {
		return renderTemplate("discrepancies.md", partials, view)
	}
	return renderTemplate("report.md", partials, view)
}

// StatusLine summarizes the report in one line.
func StatusLine(r *domain.ReconciliationReport) string {
	if r.Balanced {
		return fmt.Sprintf("OK: %d tickers netted", len(r.Entries))
	}
	tickers := make([]string, len(r.Discrepancies))
	for i, e := range r.Discrepancies {
		tickers[i] = fmt.Sprintf("%s (%s)", e.BaseTicker, e.NetEquationText)
	}
	return fmt.Sprintf("DISCREPANCIES: %d of %d tickers do not net: %s",
		len(r.Discrepancies), len(r.Entries), strings.Join(tickers, "; "))
}

// renderTemplate executes mainFile with the named partials available to it.
func renderTemplate(mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(mainFile).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, mainFile, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", mainFile, err)
	}
	return b.String()
}

// escapeCell keeps symbols containing '|' from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
