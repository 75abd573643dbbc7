package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwhitt/corpora-audit/internal/types"
)

func TestLog_CleanRun(t *testing.T) {
	out := Log(sampleReport(true), LogOptions{})
	assert.Contains(t, out, "Overall pass: true")
	assert.Contains(t, out, "wikitext")
	assert.Contains(t, out, "ldc-news")
	assert.NotContains(t, out, "Detailed problems:")
}

func TestLog_FailingRunListsProblems(t *testing.T) {
	out := Log(sampleReport(false), LogOptions{})
	assert.Contains(t, out, "Overall pass: false")
	assert.Contains(t, out, "Detailed problems:")
	assert.Contains(t, out, "[permission_violation] /corpora/ldc-news: world access must be closed")
}

func TestLog_SummaryMarks(t *testing.T) {
	out := Log(sampleReport(false), LogOptions{})
	assert.Contains(t, out, "corpus")
	assert.Contains(t, out, "access")
	assert.Contains(t, out, "✗")
}

func TestLog_TopLevelViolations(t *testing.T) {
	report := sampleReport(true)
	report.TopLevelViolations = []types.CheckProblem{{
		Kind:     types.StructureViolation,
		Path:     "/corpora/stray.txt",
		Message:  "not a directory",
		Severity: types.SeverityBlocking,
	}}

	out := Log(report, LogOptions{})
	assert.Contains(t, out, "Overall pass: false")
	assert.Contains(t, out, "(top level)")
	assert.Contains(t, out, "/corpora/stray.txt")
}

func TestLog_AdvisoryFindingsAlwaysListed(t *testing.T) {
	report := sampleReport(false)
	report.Corpora[1].Problems = append(report.Corpora[1].Problems, types.CheckProblem{
		Kind:     types.IncompleteReadme,
		Path:     "/corpora/ldc-news/processed/tkn",
		Message:  "README.md does not mention processed variant \"tkn\"",
		Severity: types.SeverityAdvisory,
	})

	out := Log(report, LogOptions{})
	assert.Contains(t, out, "incomplete_readme")
	assert.Contains(t, out, "processed variant \"tkn\"")
}

func TestLog_SizeWorryThreshold(t *testing.T) {
	report := sampleReport(true)

	quiet := Log(report, LogOptions{SizeWorryBytes: report.TotalSizeBytes + 1})
	assert.NotContains(t, quiet, "worry limit")

	worried := Log(report, LogOptions{SizeWorryBytes: report.TotalSizeBytes})
	assert.Contains(t, worried, "above worry limit")
	assert.Contains(t, worried, "expanding disk size")
}

func TestLog_NonEmptyAllowedDirectories(t *testing.T) {
	report := sampleReport(true)
	report.NonEmptyAllowed = []types.AllowedDirUsage{
		{Path: "/corpora/_staging", Entries: 3},
	}

	out := Log(report, LogOptions{})
	assert.Contains(t, out, `Wanted directory "/corpora/_staging" to be empty, but contained 3 files.`)
	assert.Contains(t, out, "Overall pass: true", "lingering staging files warn without failing the run")
}
