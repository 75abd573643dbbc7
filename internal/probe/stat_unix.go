//go:build unix

package probe

import (
	"io/fs"
	"os"
	"os/user"
	"strconv"
	"syscall"
)

func lstat(path string) (Info, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Mode:      fi.Mode().Perm(),
		IsSymlink: fi.Mode()&fs.ModeSymlink != 0,
	}
	switch {
	case info.IsSymlink:
		info.Kind = KindSymlink
	case fi.IsDir():
		info.Kind = KindDir
	case fi.Mode().IsRegular():
		info.Kind = KindFile
	default:
		info.Kind = KindOther
	}

	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		info.Owner = lookupOwner(st.Uid)
		info.Group = lookupGroup(st.Gid)
	}
	return info, nil
}

// lookupOwner resolves a uid to a user name, falling back to the numeric
// string when the account database has no entry. Lookup failure is not a
// probe error.
func lookupOwner(uid uint32) string {
	id := strconv.FormatUint(uint64(uid), 10)
	if u, err := user.LookupId(id); err == nil {
		return u.Username
	}
	return id
}

func lookupGroup(gid uint32) string {
	id := strconv.FormatUint(uint64(gid), 10)
	if g, err := user.LookupGroupId(id); err == nil {
		return g.Name
	}
	return id
}
