package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mwhitt/corpora-audit/internal/types"
)

// ParseReadme extracts the title (first heading line) and description (first
// non-empty prose line after it) from README text. Extraction is best-effort:
// a miss leaves the field empty and is never a compliance problem.
func ParseReadme(text string) (title, description string) {
	lines := strings.Split(text, "\n")
	i := 0
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "#") {
			title = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			i++
			break
		}
		if trimmed != "" {
			// No heading at all; treat the first non-empty line as prose.
			break
		}
	}
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		description = trimmed
		break
	}
	return title, description
}

// EvaluateReadme decides README existence and completeness. A README is
// complete when every processed/ variant name appears somewhere in its text
// (case-insensitive substring containment). A corpus without processed/
// variants is vacuously complete. A missing README short-circuits the
// completeness check: one MissingReadme problem, complete = false.
func EvaluateReadme(corpusPath, readmeText string, readmeExists bool, processedDirs []string) (exists, complete bool, problems []types.CheckProblem) {
	if !readmeExists {
		problems = append(problems, types.CheckProblem{
			Kind:     types.MissingReadme,
			Path:     filepath.Join(corpusPath, ReadmeName),
			Message:  "missing README.md",
			Severity: types.SeverityBlocking,
		})
		return false, false, problems
	}

	lowered := strings.ToLower(readmeText)
	complete = true
	for _, name := range processedDirs {
		if !strings.Contains(lowered, strings.ToLower(name)) {
			complete = false
			problems = append(problems, types.CheckProblem{
				Kind:     types.IncompleteReadme,
				Path:     filepath.Join(corpusPath, ProcessedDir, name),
				Message:  fmt.Sprintf("README.md does not mention processed variant %q", name),
				Severity: types.SeverityAdvisory,
			})
		}
	}

	return true, complete, problems
}
