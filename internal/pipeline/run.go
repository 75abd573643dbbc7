// Package pipeline walks the corpora root, evaluates every corpus directory,
// and aggregates the run-level report consumed by the renderers.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mwhitt/corpora-audit/internal/corpus"
	"github.com/mwhitt/corpora-audit/internal/types"
)

// Options configures one audit run.
type Options struct {
	// Root is the directory containing all corpus directories.
	Root string
	// OkOwners is the allow-list of always-compliant owners.
	OkOwners []string
	// Groups is the immutable group policy table for the run.
	Groups types.GroupConfig
	// FixPerms enables in-place correction of "other"-bit violations.
	FixPerms bool
	// Concurrency bounds the corpus worker pool; values below 2 run
	// sequentially. Corpora are independent subtrees, so parallelism only
	// shortens wall-clock time on large trees.
	Concurrency int
	// RootAllow lists entry names ignored at the top level (e.g. README.md).
	RootAllow []string
}

// Run enumerates the direct children of the root and evaluates each directory
// as a corpus. Non-directory entries are recorded as top-level violations of
// the root itself. One corpus's failure never prevents evaluation of its
// siblings; the only fatal conditions are a missing or unreadable root.
func Run(ctx context.Context, opts Options) (*types.AggregateReport, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	rootInfo, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path %s is not accessible: %w", root, err)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list root path %s: %w", root, err)
	}

	report := &types.AggregateReport{
		RunID:        uuid.New(),
		RunTimestamp: time.Now().UTC(),
		Root:         root,
	}

	allowed := make(map[string]bool, len(opts.RootAllow))
	for _, name := range opts.RootAllow {
		allowed[name] = true
	}

	var paths []string
	for _, entry := range entries {
		if allowed[entry.Name()] {
			// Allow-listed directories are expected to stay empty; report
			// lingering contents as a warning without failing the run.
			if entry.IsDir() {
				if contents, err := os.ReadDir(filepath.Join(root, entry.Name())); err == nil && len(contents) > 0 {
					report.NonEmptyAllowed = append(report.NonEmptyAllowed, types.AllowedDirUsage{
						Path:    filepath.Join(root, entry.Name()),
						Entries: len(contents),
					})
				}
			}
			continue
		}
		if !entry.IsDir() {
			report.TopLevelViolations = append(report.TopLevelViolations, types.CheckProblem{
				Kind:     types.StructureViolation,
				Path:     filepath.Join(root, entry.Name()),
				Message:  fmt.Sprintf("entry %q is not a directory but sits in the top level", entry.Name()),
				Severity: types.SeverityBlocking,
			})
			continue
		}
		paths = append(paths, filepath.Join(root, entry.Name()))
	}

	// Results are written into listing-order slots so that parallel workers
	// never reorder the report.
	results := make([]types.CorpusStatus, len(paths))
	evalOpts := corpus.Options{FixPerms: opts.FixPerms}

	g, gCtx := errgroup.WithContext(ctx)
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = corpus.Evaluate(path, opts.Groups, opts.OkOwners, evalOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("audit run interrupted: %w", err)
	}

	report.Corpora = results
	for i := range results {
		report.TotalSizeBytes += results[i].SizeBytes
	}

	return report, nil
}
