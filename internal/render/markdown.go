// Package render turns the aggregate status model into its operator-facing
// artifacts: the markdown status report, the browsable per-corpus doc tree,
// and the plain-text problem log.
package render

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mwhitt/corpora-audit/internal/types"
)

const (
	badgeResultFmt = "![](https://img.shields.io/badge/docs-%s-%s.svg?longCache=true&style=flat)"
	badgeDateFmt   = "![](https://img.shields.io/badge/built-%s-blue.svg?longCache=true&style=flat)"

	// Corpora below this share of total usage are folded into "other" in the
	// size chart.
	chartLabelShare = 0.03
)

// Includes carries pre-read markdown fragments spliced around the generated
// tables. Empty fragments are skipped.
type Includes struct {
	Header string
	Mid    string
	Footer string
}

// Markdown renders the full status report: title and badges, header include,
// status table, mid include, restricted-access table, size chart, footer
// include.
func Markdown(report *types.AggregateReport, groups types.GroupConfig, inc Includes) string {
	sections := []string{
		top(report.Clean(), report.RunTimestamp),
	}
	if inc.Header != "" {
		sections = append(sections, inc.Header)
	}
	sections = append(sections, statusTable(report, groups))
	if inc.Mid != "" {
		sections = append(sections, inc.Mid)
	}
	sections = append(sections, accessTable(groups), sizeChart(report))
	if inc.Footer != "" {
		sections = append(sections, inc.Footer)
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// top returns the report title and badges.
func top(success bool, built time.Time) string {
	result, color := "passing", "brightgreen"
	if !success {
		result, color = "errors", "red"
	}
	return strings.Join([]string{
		"# Corpora Status",
		"",
		fmt.Sprintf(badgeResultFmt, result, color),
		fmt.Sprintf(badgeDateFmt, built.Format("1/2/06")),
	}, "\n")
}

// statusTable renders one row per corpus, sorted by name for display.
func statusTable(report *types.AggregateReport, groups types.GroupConfig) string {
	corpora := make([]types.CorpusStatus, len(report.Corpora))
	copy(corpora, report.Corpora)
	sort.Slice(corpora, func(i, j int) bool { return corpora[i].Name < corpora[j].Name })

	rows := []string{
		"Corpus | Description | Size | [Access](#restricted-access) | Status",
		"--- | --- | --- | --- | ---",
	}
	for i := range corpora {
		c := &corpora[i]
		access := mark(true)
		if p, ok := groups[c.Group]; ok && p.Restricted {
			access = fmt.Sprintf("[`%s`](#restricted-access)", c.Group)
		}
		rows = append(rows, fmt.Sprintf("[%s](%s) | %s | %s | %s | %s",
			c.Name,
			path.Join("doc", c.Name),
			c.ReadmeDescription,
			humanize.Bytes(uint64(c.SizeBytes)),
			access,
			mark(c.Compliant()),
		))
	}
	return strings.Join(rows, "\n")
}

// accessTable renders the restricted-access section: group name and how to
// request membership, from the policy descriptions.
func accessTable(groups types.GroupConfig) string {
	names := make([]string, 0, len(groups))
	for name, p := range groups {
		if p.Restricted {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	rows := []string{
		"## Restricted access",
		"",
		"Access | How to be added",
		"--- | ---",
	}
	for _, name := range names {
		rows = append(rows, fmt.Sprintf("`%s` | %s", name, groups[name].Desc))
	}
	return strings.Join(rows, "\n")
}

// sizeChart emits a mermaid pie block of disk usage per corpus. Corpora under
// chartLabelShare of the total are grouped into a single "other" slice.
func sizeChart(report *types.AggregateReport) string {
	var sb strings.Builder
	sb.WriteString("## Disk usage\n\n")
	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("pie title Disk usage (%s total)\n", humanize.Bytes(uint64(report.TotalSizeBytes))))

	var other int64
	for i := range report.Corpora {
		c := &report.Corpora[i]
		if report.TotalSizeBytes > 0 && float64(c.SizeBytes)/float64(report.TotalSizeBytes) > chartLabelShare {
			sb.WriteString(fmt.Sprintf("    %q : %d\n", fmt.Sprintf("%s (%s)", c.Name, humanize.Bytes(uint64(c.SizeBytes))), c.SizeBytes))
		} else {
			other += c.SizeBytes
		}
	}
	if other > 0 {
		sb.WriteString(fmt.Sprintf("    \"other\" : %d\n", other))
	}
	sb.WriteString("```")
	return sb.String()
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
