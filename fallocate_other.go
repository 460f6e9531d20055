//go:build !linux && !darwin

package zerotrie

import "os"

// fallocateFile sets the file length. Blocks may not be reserved.
func fallocateFile(file *os.File, size int64) error {
	return file.Truncate(size)
}
