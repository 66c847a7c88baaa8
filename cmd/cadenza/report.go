package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/cadenza/internal/report"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

var passTitles = map[report.Pass]string{
	report.Resolution: "Name resolution",
	report.TypeCheck:  "Type checking",
}

type reportPrinter struct {
	w     io.Writer
	color bool
}

func newReportPrinter(w io.Writer, color bool) *reportPrinter {
	return &reportPrinter{w: w, color: color}
}

func (p *reportPrinter) verdict(ok bool) string {
	text, code := "✓ OK", ansiGreen
	if !ok {
		text, code = "✗ ERROR", ansiRed
	}
	if !p.color {
		return text
	}
	return code + text + ansiReset
}

func (p *reportPrinter) print(rep *report.Report) {
	p.section(report.Resolution, rep.Resolution, rep.Resolved)
	if !rep.Resolved {
		fmt.Fprintf(p.w, "\n%s skipped: name resolution failed\n", passTitles[report.TypeCheck])
		return
	}
	p.section(report.TypeCheck, rep.TypeCheck, rep.TypeChecked)
	fmt.Fprintf(p.w, "\nRun %s: %d statements, %d bindings\n", rep.RunID, len(rep.Resolution), len(rep.Bindings))
}

func (p *reportPrinter) section(pass report.Pass, outcomes []report.Outcome, ok bool) {
	title := passTitles[pass]
	fmt.Fprintf(p.w, "\n=== %s ===\n\n", title)
	fmt.Fprintf(p.w, "%-40s | RESULT\n", "NODE")
	fmt.Fprintln(p.w, strings.Repeat("-", 60))
	for _, o := range outcomes {
		fmt.Fprintf(p.w, "%-40s | %s\n", o.Description, p.verdict(o.OK()))
		if !o.OK() {
			fmt.Fprintf(p.w, "    %v\n", o.Err)
		}
	}
	fmt.Fprintf(p.w, "\n%s result: %s\n", title, p.verdict(ok))
}
