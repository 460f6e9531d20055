//go:build linux

package zerotrie

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves size bytes for a container file so that writing
// through the mapping cannot SIGBUS on a full disk.
func fallocateFile(file *os.File, size int64) error {
	fd := int(file.Fd())
	if err := unix.Fallocate(fd, 0, 0, size); err != nil {
		// NFS and some other filesystems do not implement fallocate.
		return unix.Ftruncate(fd, size)
	}
	return unix.Ftruncate(fd, size)
}
