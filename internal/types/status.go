// Package types provides type definitions for the corpus status model shared across the audit engine and its renderers.
package types

import (
	"time"

	"github.com/google/uuid"
)

// ProblemKind classifies a single compliance finding.
type ProblemKind string

const (
	// ProbeError is an operational failure (stat, readdir, chmod) scoped to one path.
	ProbeError ProblemKind = "probe_error"
	// StructureViolation is a stray entry in a corpus directory (or a file under processed/).
	StructureViolation ProblemKind = "structure_violation"
	// MissingReadme means the corpus has no README.md.
	MissingReadme ProblemKind = "missing_readme"
	// IncompleteReadme means a processed/ subdirectory is not mentioned in the README.
	IncompleteReadme ProblemKind = "incomplete_readme"
	// OwnerViolation means the owner is not in the allowed-owners list.
	OwnerViolation ProblemKind = "owner_violation"
	// GroupViolation means the owner is outside a restricted group's allowed_owners set.
	GroupViolation ProblemKind = "group_violation"
	// PermissionViolation means the "other" permission bits contradict the group policy.
	PermissionViolation ProblemKind = "permission_violation"
)

// Severity distinguishes advisory from blocking findings. It is informational
// only; pass/fail is derived from the status flags, never from severity.
type Severity string

const (
	SeverityAdvisory Severity = "advisory"
	SeverityBlocking Severity = "blocking"
)

// CheckProblem is one compliance finding attributed to a filesystem path.
type CheckProblem struct {
	Kind     ProblemKind `json:"kind"`
	Path     string      `json:"path"`
	Message  string      `json:"message"`
	Severity Severity    `json:"severity"`
}

// CorpusStatus is the evaluation result for one top-level corpus directory.
type CorpusStatus struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Owner     string `json:"owner"`
	Group     string `json:"group"`

	StructureClean bool `json:"structure_clean"`
	ReadmeExists   bool `json:"readme_exists"`
	ReadmeComplete bool `json:"readme_complete"`
	AccessOK       bool `json:"access_ok"`

	// Best-effort README extractions, empty when unparseable. Display only.
	ReadmeTitle       string `json:"readme_title,omitempty"`
	ReadmeDescription string `json:"readme_description,omitempty"`

	Problems []CheckProblem `json:"problems,omitempty"`
}

// Compliant reports whether every check passed. By invariant this holds
// exactly when Problems is empty.
func (s *CorpusStatus) Compliant() bool {
	return s.StructureClean && s.ReadmeExists && s.ReadmeComplete && s.AccessOK
}

// AggregateReport is the run-level result handed to report renderers.
// Corpora appear in directory-listing order; renderers sort for display.
type AggregateReport struct {
	RunID          uuid.UUID      `json:"run_id"`
	RunTimestamp   time.Time      `json:"run_timestamp"`
	Root           string         `json:"root"`
	Corpora        []CorpusStatus `json:"corpora"`
	TotalSizeBytes int64          `json:"total_size_bytes"`

	// TopLevelViolations records non-directory entries directly under the
	// root. They are failures of the root itself, not of any corpus.
	TopLevelViolations []CheckProblem `json:"top_level_violations,omitempty"`

	// NonEmptyAllowed records allow-listed root directories that were expected
	// to stay empty but held entries. Warning only, never affects Clean.
	NonEmptyAllowed []AllowedDirUsage `json:"non_empty_allowed,omitempty"`
}

// AllowedDirUsage is an allow-listed root directory holding unexpected entries.
type AllowedDirUsage struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}

// Clean reports whether the run had zero violations: every corpus has an
// empty problem set and the root itself is conforming.
func (r *AggregateReport) Clean() bool {
	if len(r.TopLevelViolations) > 0 {
		return false
	}
	for i := range r.Corpora {
		if len(r.Corpora[i].Problems) > 0 {
			return false
		}
	}
	return true
}

// AllProblems returns every finding in the report grouped by corpus (listing
// order), with top-level violations first.
func (r *AggregateReport) AllProblems() []CheckProblem {
	var all []CheckProblem
	all = append(all, r.TopLevelViolations...)
	for i := range r.Corpora {
		all = append(all, r.Corpora[i].Problems...)
	}
	return all
}
