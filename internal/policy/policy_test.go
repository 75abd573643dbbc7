package policy

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitt/corpora-audit/internal/types"
)

var okOwners = []string{"sg01", "archivist"}

func kinds(problems []types.CheckProblem) []types.ProblemKind {
	out := make([]types.ProblemKind, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.Kind)
	}
	return out
}

func TestEvaluate_OpenGroupCompliant(t *testing.T) {
	ok, problems := Evaluate("/corpora/wiki", "sg01", "everyone", 0o755, types.GroupConfig{}, okOwners)
	assert.True(t, ok)
	assert.Empty(t, problems)
}

func TestEvaluate_OpenGroupWorldAccessRequired(t *testing.T) {
	// Narrowing "other" on an open-group directory must flip access_ok.
	ok, problems := Evaluate("/corpora/wiki", "sg01", "everyone", 0o750, types.GroupConfig{}, okOwners)
	assert.False(t, ok)
	assert.Equal(t, []types.ProblemKind{types.PermissionViolation}, kinds(problems))
}

func TestEvaluate_ListedOpenGroupTreatedAsOpen(t *testing.T) {
	groups := types.GroupConfig{"shared": {Restricted: false}}
	ok, _ := Evaluate("/corpora/wiki", "sg01", "shared", 0o755, groups, okOwners)
	assert.True(t, ok)

	ok, problems := Evaluate("/corpora/wiki", "sg01", "shared", 0o750, groups, okOwners)
	assert.False(t, ok)
	assert.Equal(t, []types.ProblemKind{types.PermissionViolation}, kinds(problems))
}

func TestEvaluate_RestrictedGroupCompliant(t *testing.T) {
	groups := types.GroupConfig{"ldc": {Restricted: true}}
	ok, problems := Evaluate("/corpora/licensed", "sg01", "ldc", 0o750, groups, okOwners)
	assert.True(t, ok)
	assert.Empty(t, problems)
}

func TestEvaluate_RestrictedGroupWorldAccessClosed(t *testing.T) {
	// Widening "other" on a restricted directory must flip access_ok.
	groups := types.GroupConfig{"ldc": {Restricted: true}}
	for _, mode := range []fs.FileMode{0o755, 0o754, 0o751} {
		ok, problems := Evaluate("/corpora/licensed", "sg01", "ldc", mode, groups, okOwners)
		assert.False(t, ok, "mode %04o must violate the restricted policy", mode)
		assert.Equal(t, []types.ProblemKind{types.PermissionViolation}, kinds(problems))
	}
}

func TestEvaluate_RestrictedOtherWriteIgnored(t *testing.T) {
	// Only the read/execute bits of "other" are policed.
	groups := types.GroupConfig{"ldc": {Restricted: true}}
	ok, problems := Evaluate("/corpora/licensed", "sg01", "ldc", 0o752, groups, okOwners)
	assert.True(t, ok)
	assert.Empty(t, problems)
}

func TestEvaluate_OwnerViolation(t *testing.T) {
	ok, problems := Evaluate("/corpora/wiki", "stranger", "everyone", 0o755, types.GroupConfig{}, okOwners)
	assert.False(t, ok)
	assert.Equal(t, []types.ProblemKind{types.OwnerViolation}, kinds(problems))
}

func TestEvaluate_GroupViolationForDisallowedOwner(t *testing.T) {
	groups := types.GroupConfig{"ldc": {Restricted: true, AllowedOwners: []string{"archivist"}}}
	ok, problems := Evaluate("/corpora/licensed", "sg01", "ldc", 0o750, groups, okOwners)
	assert.False(t, ok)
	assert.Equal(t, []types.ProblemKind{types.GroupViolation}, kinds(problems))
}

func TestEvaluate_StackedViolations(t *testing.T) {
	groups := types.GroupConfig{"ldc": {Restricted: true, AllowedOwners: []string{"archivist"}}}
	ok, problems := Evaluate("/corpora/licensed", "stranger", "ldc", 0o755, groups, okOwners)
	require.False(t, ok)
	assert.ElementsMatch(t,
		[]types.ProblemKind{types.OwnerViolation, types.PermissionViolation, types.GroupViolation},
		kinds(problems))
}

func TestIsRestricted(t *testing.T) {
	groups := types.GroupConfig{
		"ldc":    {Restricted: true},
		"shared": {Restricted: false},
	}
	assert.True(t, IsRestricted("ldc", groups))
	assert.False(t, IsRestricted("shared", groups))
	assert.False(t, IsRestricted("unlisted", groups))
}
