// Package corpus evaluates one corpus directory against the full policy:
// probe, recursive size, access policy, structure, and documentation.
package corpus

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mwhitt/corpora-audit/internal/policy"
	"github.com/mwhitt/corpora-audit/internal/probe"
	"github.com/mwhitt/corpora-audit/internal/types"
	"github.com/mwhitt/corpora-audit/internal/validation"
)

// Options controls optional evaluator behavior.
type Options struct {
	// FixPerms enables the permission fixer for directories whose only access
	// problems are PermissionViolations. Owner and group violations require
	// human reassignment and are never fixed.
	FixPerms bool
}

// Evaluate audits a single corpus directory and assembles its status record.
// It never returns an error: filesystem failures degrade into ProbeError
// findings on the affected paths so that sibling corpora are unaffected.
func Evaluate(path string, groups types.GroupConfig, okOwners []string, opts Options) types.CorpusStatus {
	status := types.CorpusStatus{
		Name: filepath.Base(path),
		Path: path,
	}

	info, err := probe.Stat(path)
	if err != nil {
		status.Problems = append(status.Problems, probeProblem(path, err))
		return status
	}
	status.Owner = info.Owner
	status.Group = info.Group

	size, sizeProblems := probe.RecursiveSize(path)
	status.SizeBytes = size
	status.Problems = append(status.Problems, sizeProblems...)

	accessOK, accessProblems := evaluateAccess(path, status.Owner, status.Group, info.Mode, groups, okOwners, opts)
	// An unreadable inner path is an operational access defect of the corpus:
	// it degrades access_ok so that a corpus with probe errors is never
	// reported compliant.
	status.AccessOK = accessOK && len(sizeProblems) == 0
	status.Problems = append(status.Problems, accessProblems...)

	entries, err := os.ReadDir(path)
	if err != nil {
		status.Problems = append(status.Problems, probeProblem(path, err))
		return status
	}

	children := make([]string, 0, len(entries))
	for _, e := range entries {
		children = append(children, e.Name())
	}

	processedChildren, processedProblems := listProcessed(path)
	status.Problems = append(status.Problems, processedProblems...)

	structureClean, structProblems := validation.EvaluateStructure(path, children, processedChildren)
	// A processed/ directory that cannot be listed cannot be verified clean.
	status.StructureClean = structureClean && len(processedProblems) == 0
	status.Problems = append(status.Problems, structProblems...)

	var processedDirs []string
	for _, e := range processedChildren {
		if e.IsDir {
			processedDirs = append(processedDirs, e.Name)
		}
	}

	readmeText, readmeExists, readmeProblem := readReadme(path)
	if readmeProblem != nil {
		// README present but unreadable: its checks fail with the ProbeError
		// as evidence rather than a misleading MissingReadme.
		status.Problems = append(status.Problems, *readmeProblem)
		return status
	}

	exists, complete, docProblems := validation.EvaluateReadme(path, readmeText, readmeExists, processedDirs)
	status.ReadmeExists = exists
	status.ReadmeComplete = complete
	status.Problems = append(status.Problems, docProblems...)
	if exists {
		status.ReadmeTitle, status.ReadmeDescription = validation.ParseReadme(readmeText)
	}

	return status
}

// evaluateAccess runs the access policy, applying the permission fixer at
// most once when requested and re-evaluating to reflect the corrected state.
func evaluateAccess(path, owner, group string, mode fs.FileMode, groups types.GroupConfig, okOwners []string, opts Options) (bool, []types.CheckProblem) {
	accessOK, problems := policy.Evaluate(path, owner, group, mode, groups, okOwners)
	if accessOK || !opts.FixPerms || !onlyPermissionViolations(problems) {
		return accessOK, problems
	}

	restricted := policy.IsRestricted(group, groups)
	if err := policy.FixOther(path, mode, restricted); err != nil {
		return false, append(problems, probeProblem(path, err))
	}

	fixed, err := probe.Stat(path)
	if err != nil {
		return false, append(problems, probeProblem(path, err))
	}
	return policy.Evaluate(path, owner, group, fixed.Mode, groups, okOwners)
}

func onlyPermissionViolations(problems []types.CheckProblem) bool {
	for _, p := range problems {
		if p.Kind != types.PermissionViolation {
			return false
		}
	}
	return len(problems) > 0
}

// listProcessed returns the direct children of processed/, or nil when the
// corpus has no processed directory (a non-directory named "processed" is
// treated as absent). An unreadable processed directory degrades to one
// ProbeError.
func listProcessed(corpusPath string) ([]validation.ProcessedEntry, []types.CheckProblem) {
	processedPath := filepath.Join(corpusPath, validation.ProcessedDir)
	fi, err := os.Lstat(processedPath)
	if err != nil || !fi.IsDir() {
		return nil, nil
	}
	entries, err := os.ReadDir(processedPath)
	if err != nil {
		return nil, []types.CheckProblem{probeProblem(processedPath, err)}
	}

	children := make([]validation.ProcessedEntry, 0, len(entries))
	for _, e := range entries {
		children = append(children, validation.ProcessedEntry{Name: e.Name(), IsDir: e.IsDir()})
	}
	return children, nil
}

func readReadme(corpusPath string) (text string, exists bool, problem *types.CheckProblem) {
	readmePath := filepath.Join(corpusPath, validation.ReadmeName)
	fi, err := os.Lstat(readmePath)
	if err != nil || !fi.Mode().IsRegular() {
		return "", false, nil
	}
	data, err := os.ReadFile(readmePath)
	if err != nil {
		p := probeProblem(readmePath, err)
		return "", false, &p
	}
	return string(data), true, nil
}

func probeProblem(path string, err error) types.CheckProblem {
	return types.CheckProblem{
		Kind:     types.ProbeError,
		Path:     path,
		Message:  err.Error(),
		Severity: types.SeverityBlocking,
	}
}
