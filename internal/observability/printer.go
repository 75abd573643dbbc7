// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mwhitt/corpora-audit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxProblemsToShow is the default number of findings to display per corpus
	maxProblemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCorpusStatus outputs a human-readable summary of one corpus evaluation.
func (p *Printer) PrintCorpusStatus(status *types.CorpusStatus) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Owner:  %s\n", status.Owner))
	sb.WriteString(fmt.Sprintf("Group:  %s\n", status.Group))
	sb.WriteString(fmt.Sprintf("Size:   %s\n", humanize.Bytes(uint64(status.SizeBytes))))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Structure clean:  %s\n", checkmark(status.StructureClean)))
	sb.WriteString(fmt.Sprintf("README exists:    %s\n", checkmark(status.ReadmeExists)))
	sb.WriteString(fmt.Sprintf("README complete:  %s\n", checkmark(status.ReadmeComplete)))
	sb.WriteString(fmt.Sprintf("Access OK:        %s\n", checkmark(status.AccessOK)))

	if len(status.Problems) > 0 {
		sb.WriteString("\nProblems:\n")
		count := min(len(status.Problems), maxProblemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", status.Problems[i].Kind, status.Problems[i].Message))
		}
		if len(status.Problems) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(status.Problems)-count))
		}
	}

	p.printBox(fmt.Sprintf("Corpus: %s", status.Name), strings.TrimRight(sb.String(), "\n"))
}

// PrintRunSummary outputs the run-level outcome after all corpora are evaluated.
func (p *Printer) PrintRunSummary(report *types.AggregateReport) {
	if report == nil {
		return
	}

	failing := 0
	for i := range report.Corpora {
		if !report.Corpora[i].Compliant() {
			failing++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run ID:     %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Root:       %s\n", report.Root))
	sb.WriteString(fmt.Sprintf("Corpora:    %d (%d failing)\n", len(report.Corpora), failing))
	sb.WriteString(fmt.Sprintf("Total size: %s\n", humanize.Bytes(uint64(report.TotalSizeBytes))))
	sb.WriteString(fmt.Sprintf("Top-level violations: %d\n", len(report.TopLevelViolations)))
	sb.WriteString(fmt.Sprintf("Overall:    %s", checkmark(report.Clean())))

	p.printBox("Audit Summary", sb.String())
}

func checkmark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
