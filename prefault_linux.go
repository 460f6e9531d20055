//go:build linux

package zerotrie

import "golang.org/x/sys/unix"

// MADV_POPULATE_WRITE was added in Linux 5.14; older kernels return EINVAL.
const madvPopulateWrite = 23

// prefaultRegion asks the kernel to fault in a freshly mapped output file
// before the header and trie bytes are copied into it.
func prefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, madvPopulateWrite)
}

// adviseWillNeed hints that a mapped trie is about to be walked. Lookups touch
// pages in an unpredictable order, so readahead has to be requested up front.
func adviseWillNeed(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_WILLNEED)
}
