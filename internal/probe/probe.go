// Package probe stats and sizes filesystem paths with per-entry error tolerance.
// Ownership resolution reads syscall.Stat_t, so the package builds on Unix only.
package probe

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mwhitt/corpora-audit/internal/types"
)

// Kind classifies a probed path.
type Kind string

const (
	KindDir     Kind = "dir"
	KindFile    Kind = "file"
	KindSymlink Kind = "symlink"
	KindOther   Kind = "other"
)

// Info is the result of probing a single path.
type Info struct {
	Kind      Kind
	Owner     string
	Group     string
	Mode      fs.FileMode // permission bits only
	IsSymlink bool
}

// Stat probes path without following symlinks. The returned error means the
// path was inaccessible; callers convert it to a ProbeError finding rather
// than propagating it.
func Stat(path string) (Info, error) {
	fi, err := lstat(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return fi, nil
}

// RecursiveSize sums the sizes of every regular file reachable from path
// without crossing a symbolic link. Partial failure never aborts the walk:
// an unreadable directory contributes zero and yields one ProbeError at that
// directory (not one per descendant), and a per-file stat failure contributes
// zero and yields one ProbeError at that file.
func RecursiveSize(path string) (int64, []types.CheckProblem) {
	var total int64
	var problems []types.CheckProblem

	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			problems = append(problems, probeProblem(p, err))
			return nil
		}
		if !d.Type().IsRegular() {
			// Symlinks are skipped, never followed; directories carry no size.
			return nil
		}
		info, err := d.Info()
		if err != nil {
			problems = append(problems, probeProblem(p, err))
			return nil
		}
		total += info.Size()
		return nil
	})

	return total, problems
}

func probeProblem(path string, err error) types.CheckProblem {
	return types.CheckProblem{
		Kind:     types.ProbeError,
		Path:     path,
		Message:  err.Error(),
		Severity: types.SeverityBlocking,
	}
}
