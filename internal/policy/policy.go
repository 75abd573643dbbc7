// Package policy decides whether a corpus directory's ownership and
// permission bits comply with the configured access policy, and optionally
// corrects the "other" permission bits in place.
package policy

import (
	"fmt"
	"io/fs"

	"github.com/mwhitt/corpora-audit/internal/types"
)

// otherRX is the world read/execute mask. Owner and group bits are never
// inspected: corpora are kept read-only by convention, not by this check.
const otherRX fs.FileMode = 0o005

// IsRestricted reports whether group is marked restricted in the
// configuration. A group absent from the configuration is open-access.
func IsRestricted(group string, groups types.GroupConfig) bool {
	p, ok := groups[group]
	return ok && p.Restricted
}

// Evaluate applies the layered access policy to one directory.
//
// Ownership is compliant when owner appears in okOwners. A restricted group
// must have world access closed, and (when the policy names allowed owners)
// the owner must be one of them. Any other group is open-access and must have
// world read/execute granted, so that any department member can read it.
func Evaluate(path, owner, group string, mode fs.FileMode, groups types.GroupConfig, okOwners []string) (bool, []types.CheckProblem) {
	var problems []types.CheckProblem

	if !ownerAllowed(owner, okOwners) {
		problems = append(problems, types.CheckProblem{
			Kind:     types.OwnerViolation,
			Path:     path,
			Message:  fmt.Sprintf("owner %q is not one of the allowed owners %v", owner, okOwners),
			Severity: types.SeverityBlocking,
		})
	}

	if IsRestricted(group, groups) {
		gp := groups[group]
		if mode&otherRX != 0 {
			problems = append(problems, types.CheckProblem{
				Kind:     types.PermissionViolation,
				Path:     path,
				Message:  fmt.Sprintf("restricted group %q requires world access to be closed, but mode is %04o", group, mode),
				Severity: types.SeverityBlocking,
			})
		}
		if !gp.AllowsOwner(owner) {
			problems = append(problems, types.CheckProblem{
				Kind:     types.GroupViolation,
				Path:     path,
				Message:  fmt.Sprintf("owner %q is not an allowed owner for restricted group %q", owner, group),
				Severity: types.SeverityBlocking,
			})
		}
	} else if mode&otherRX != otherRX {
		problems = append(problems, types.CheckProblem{
			Kind:     types.PermissionViolation,
			Path:     path,
			Message:  fmt.Sprintf("open group %q requires world read/execute, but mode is %04o", group, mode),
			Severity: types.SeverityBlocking,
		})
	}

	return len(problems) == 0, problems
}

func ownerAllowed(owner string, okOwners []string) bool {
	for _, o := range okOwners {
		if o == owner {
			return true
		}
	}
	return false
}
