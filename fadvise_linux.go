//go:build linux

package zerotrie

import "golang.org/x/sys/unix"

// fadviseSequential hints that an entry source file is read front to back.
// Errors are ignored.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}
