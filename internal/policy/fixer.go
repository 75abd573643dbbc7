package policy

import (
	"fmt"
	"io/fs"
	"os"
)

// FixOther rewrites the "other" read/execute bits of path to match the policy
// outcome: revoked for a restricted group, granted otherwise. All remaining
// mode bits are left untouched, and chmod is skipped entirely when the mode
// is already compliant, so repeated invocations are no-ops.
func FixOther(path string, mode fs.FileMode, restricted bool) error {
	want := DesiredMode(mode, restricted)
	if want == mode {
		return nil
	}
	if err := os.Chmod(path, want); err != nil {
		return fmt.Errorf("failed to chmod %s to %04o: %w", path, want, err)
	}
	return nil
}

// DesiredMode returns mode with the "other" read/execute bits set or cleared
// according to the group policy.
func DesiredMode(mode fs.FileMode, restricted bool) fs.FileMode {
	if restricted {
		return mode &^ otherRX
	}
	return mode | otherRX
}
