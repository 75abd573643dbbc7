// Package validation checks corpus directories against the structural and
// documentation policy: allowed children, README presence, and README
// completeness relative to the processed/ variants actually on disk.
package validation

import (
	"fmt"
	"path/filepath"

	"github.com/mwhitt/corpora-audit/internal/types"
)

// The only names permitted as direct children of a corpus directory.
const (
	OriginalDir  = "original"
	ProcessedDir = "processed"
	ReadmeName   = "README.md"
)

// ProcessedEntry is one direct child of processed/.
type ProcessedEntry struct {
	Name  string
	IsDir bool
}

// EvaluateStructure decides structural cleanliness for a corpus whose direct
// children are named children and whose processed/ directory (if any)
// contains processedChildren. Names are matched case-sensitively. Every stray
// entry yields its own StructureViolation.
func EvaluateStructure(corpusPath string, children []string, processedChildren []ProcessedEntry) (bool, []types.CheckProblem) {
	var problems []types.CheckProblem

	for _, name := range children {
		switch name {
		case OriginalDir, ProcessedDir, ReadmeName:
		default:
			problems = append(problems, types.CheckProblem{
				Kind:     types.StructureViolation,
				Path:     filepath.Join(corpusPath, name),
				Message:  fmt.Sprintf("unexpected entry %q in corpus directory", name),
				Severity: types.SeverityBlocking,
			})
		}
	}

	// processed/ may only hold variant subdirectories, never loose files.
	for _, entry := range processedChildren {
		if !entry.IsDir {
			problems = append(problems, types.CheckProblem{
				Kind:     types.StructureViolation,
				Path:     filepath.Join(corpusPath, ProcessedDir, entry.Name),
				Message:  fmt.Sprintf("file %q found under processed/, which may only contain directories", entry.Name),
				Severity: types.SeverityBlocking,
			})
		}
	}

	return len(problems) == 0, problems
}
