package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mwhitt/corpora-audit/internal/types"
)

// LogOptions controls the problem log rendering.
type LogOptions struct {
	// SizeWorryBytes triggers a low-disk warning when total usage meets or
	// exceeds it. Zero disables the check.
	SizeWorryBytes int64
}

// Log renders the plain-text problem log: overall outcome, a fixed-width
// per-corpus summary table, detailed findings when the run is not clean, and
// the total-usage warning.
func Log(report *types.AggregateReport, opts LogOptions) string {
	clean := report.Clean()
	var buf []string
	buf = append(buf, fmt.Sprintf("Overall pass: %t", clean), "")

	rowFmt := "%-20.19s %-20.19s %-10.9s %-7.6s %-8.7s %-7.6s %-7.6s"
	buf = append(buf,
		fmt.Sprintf(rowFmt, "corpus", "desc", "size", "struct", "README?", "R-comp", "access"),
		fmt.Sprintf(rowFmt, "---", "---", "---", "---", "---", "---", "---"),
	)
	for i := range report.Corpora {
		c := &report.Corpora[i]
		buf = append(buf, fmt.Sprintf(rowFmt,
			c.Name,
			c.ReadmeDescription,
			humanize.Bytes(uint64(c.SizeBytes)),
			mark(c.StructureClean),
			mark(c.ReadmeExists),
			mark(c.ReadmeComplete),
			mark(c.AccessOK),
		))
	}
	buf = append(buf, "")

	if !clean {
		buf = append(buf, "Detailed problems:")
		if len(report.TopLevelViolations) > 0 {
			buf = append(buf, "(top level)", strings.Repeat("-", 80))
			for _, p := range report.TopLevelViolations {
				buf = append(buf, problemLine(p))
			}
			buf = append(buf, "")
		}
		for i := range report.Corpora {
			c := &report.Corpora[i]
			if len(c.Problems) == 0 {
				continue
			}
			buf = append(buf, c.Name, strings.Repeat("-", 80))
			for _, p := range c.Problems {
				buf = append(buf, problemLine(p))
			}
			buf = append(buf, "")
		}
	}

	if opts.SizeWorryBytes > 0 && report.TotalSizeBytes >= opts.SizeWorryBytes {
		buf = append(buf,
			fmt.Sprintf("Total bytes used (%s) above worry limit (%s)",
				humanize.Bytes(uint64(report.TotalSizeBytes)),
				humanize.Bytes(uint64(opts.SizeWorryBytes))),
			"May need to look into expanding disk size soon!",
		)
	}

	for _, a := range report.NonEmptyAllowed {
		buf = append(buf, fmt.Sprintf("Wanted directory %q to be empty, but contained %d files.", a.Path, a.Entries))
	}

	return strings.Join(buf, "\n")
}

func problemLine(p types.CheckProblem) string {
	return fmt.Sprintf(" - [%s] %s: %s", p.Kind, p.Path, p.Message)
}
