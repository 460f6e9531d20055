package zerotrie

import (
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	streamerrors "github.com/tamirms/zerotrie/errors"
)

// WriteFile writes trie bytes of the given kind to a container file at path.
// numEntries is recorded in the header for Stats. On failure the partial file
// is removed.
func WriteFile(path string, kind Kind, trie []byte, numEntries uint64) error {
	if !kind.valid() {
		return fmt.Errorf("%w: %d", streamerrors.ErrInvalidKind, kind)
	}
	size := minFileSize + len(trie)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trie file: %w", err)
	}
	if err := fallocateFile(file, int64(size)); err != nil {
		primaryErr := fmt.Errorf("allocate disk space: %w", err)
		return errors.Join(primaryErr, file.Close(), os.Remove(path))
	}

	mm, err := mmap.MapRegion(file, size, mmap.RDWR, 0, 0)
	if err != nil {
		primaryErr := fmt.Errorf("mmap trie file: %w", err)
		return errors.Join(primaryErr, file.Close(), os.Remove(path))
	}
	prefaultRegion(mm)

	encodeFile(mm, kind, trie, numEntries)

	if err := mm.Flush(); err != nil {
		primaryErr := fmt.Errorf("mmap flush failed: %w", err)
		return errors.Join(primaryErr, mm.Unmap(), file.Close(), os.Remove(path))
	}
	if err := mm.Unmap(); err != nil {
		primaryErr := fmt.Errorf("mmap unmap failed: %w", err)
		return errors.Join(primaryErr, file.Close(), os.Remove(path))
	}
	return file.Close()
}

// WriteTrie writes t to a container file at path.
func WriteTrie(path string, t Reader) error {
	return WriteFile(path, t.Kind(), t.Bytes(), countEntries(t))
}

// MarshalFile returns the container encoding of trie, as WriteFile would
// store it. The result can be read with OpenBytes.
func MarshalFile(kind Kind, trie []byte, numEntries uint64) []byte {
	buf := make([]byte, minFileSize+len(trie))
	encodeFile(buf, kind, trie, numEntries)
	return buf
}

// encodeFile fills buf, which is exactly minFileSize+len(trie) bytes.
func encodeFile(buf []byte, kind Kind, trie []byte, numEntries uint64) {
	hdr := header{
		Magic:      magic,
		Version:    version,
		Kind:       kind,
		TrieLen:    uint64(len(trie)),
		NumEntries: numEntries,
	}
	hdr.encodeTo(buf[:headerSize])
	copy(buf[headerSize:], trie)
	ftr := footer{TrieHash: xxhash.Sum64(trie)}
	ftr.encodeTo(buf[headerSize+len(trie):])
}

func countEntries(t Reader) uint64 {
	var n uint64
	for range t.All() {
		n++
	}
	return n
}
