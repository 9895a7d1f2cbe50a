//go:build !linux

package host

import (
	"golang.org/x/sys/unix"
)

// statDisk returns total and available bytes of the filesystem holding mount.
// Outside Linux the fragment size is not reported, so the block size is used.
func statDisk(mount string) (total, free int64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(mount, &st); err != nil {
		return 0, 0, err
	}
	bs := int64(st.Bsize)
	return int64(st.Blocks) * bs, int64(st.Bavail) * bs, nil
}
