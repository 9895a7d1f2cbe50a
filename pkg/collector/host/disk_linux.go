//go:build linux

package host

import (
	"golang.org/x/sys/unix"
)

// statDisk returns total and available bytes of the filesystem holding mount.
func statDisk(mount string) (total, free int64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(mount, &st); err != nil {
		return 0, 0, err
	}

	frag := int64(st.Frsize)
	if frag == 0 {
		frag = int64(st.Bsize)
	}
	return int64(st.Blocks) * frag, int64(st.Bavail) * frag, nil
}
