package zerotrie

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	streamerrors "github.com/tamirms/zerotrie/errors"
)

// minFileSize is the size of a container holding an empty trie.
const minFileSize = headerSize + footerSize

// File is a container file holding one trie, read in place.
//
// Thread Safety:
//   - Trie accessors and lookups on the returned tries are safe for
//     concurrent use
//   - Close must only be called after all lookups have completed; tries
//     obtained from a mapped File must not be used after Close
type File struct {
	mmap mmap.MMap
	data []byte

	header *header
	trie   []byte

	closed atomic.Bool
}

// Stats describes a container file.
type Stats struct {
	Kind          Kind
	NumEntries    uint64
	TrieBytes     int
	FileBytes     int64
	BytesPerEntry float64
}

// Open opens a container file. The file is memory-mapped and its descriptor
// closed before Open returns.
func Open(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trie file: %w", err)
	}
	defer file.Close()
	return OpenFile(file)
}

// OpenFile memory-maps f. The caller is responsible for closing f, which may
// be done as soon as OpenFile returns.
func OpenFile(f *os.File) (*File, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat trie file: %w", err)
	}
	if stat.Size() < minFileSize {
		return nil, streamerrors.ErrTruncatedFile
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap trie file: %w", err)
	}

	tf := &File{
		mmap: mm,
		data: []byte(mm),
	}
	if err := tf.initFromData(); err != nil {
		return nil, errors.Join(err, tf.Close())
	}
	adviseWillNeed(tf.trie)
	return tf, nil
}

// OpenBytes reads a container from memory. Nothing is mapped and Close is a
// no-op. data must not be modified while the File is in use.
func OpenBytes(data []byte) (*File, error) {
	if len(data) < minFileSize {
		return nil, streamerrors.ErrTruncatedFile
	}
	tf := &File{data: data}
	if err := tf.initFromData(); err != nil {
		return nil, err
	}
	return tf, nil
}

// initFromData parses the header and locates the trie. The footer is only
// read by Verify.
func (tf *File) initFromData() error {
	hdr, err := decodeHeader(tf.data[:headerSize])
	if err != nil {
		return err
	}
	body := uint64(len(tf.data) - minFileSize)
	switch {
	case hdr.TrieLen > body:
		return fmt.Errorf("%w: trie length %d, %d bytes available", streamerrors.ErrTruncatedFile, hdr.TrieLen, body)
	case hdr.TrieLen < body:
		return fmt.Errorf("%w: %d trailing bytes", streamerrors.ErrCorruptedTrie, body-hdr.TrieLen)
	}
	tf.header = hdr
	tf.trie = tf.data[headerSize : headerSize+int(hdr.TrieLen)]
	return nil
}

// Close releases the mapping. It is idempotent.
func (tf *File) Close() error {
	if tf.closed.Swap(true) {
		return nil
	}
	if tf.mmap != nil {
		return tf.mmap.Unmap()
	}
	return nil
}

// Kind returns the flavour of the stored trie.
func (tf *File) Kind() Kind {
	return tf.header.Kind
}

// NumEntries returns the entry count recorded at build time.
func (tf *File) NumEntries() uint64 {
	return tf.header.NumEntries
}

// Trie returns the stored trie without validating it. Call Verify first for
// files from untrusted sources.
func (tf *File) Trie() (Reader, error) {
	if tf.closed.Load() {
		return nil, streamerrors.ErrFileClosed
	}
	return fromBytes(tf.header.Kind, tf.trie), nil
}

// SimpleASCII returns the stored trie, or ErrWrongKind.
func (tf *File) SimpleASCII() (SimpleASCII, error) {
	if tf.closed.Load() {
		return SimpleASCII{}, streamerrors.ErrFileClosed
	}
	if tf.header.Kind != KindSimpleASCII {
		return SimpleASCII{}, fmt.Errorf("%w: file holds a %s trie", streamerrors.ErrWrongKind, tf.header.Kind)
	}
	return SimpleASCII{data: tf.trie}, nil
}

// PerfectHash returns the stored trie, or ErrWrongKind.
func (tf *File) PerfectHash() (PerfectHash, error) {
	if tf.closed.Load() {
		return PerfectHash{}, streamerrors.ErrFileClosed
	}
	if tf.header.Kind != KindPerfectHash {
		return PerfectHash{}, fmt.Errorf("%w: file holds a %s trie", streamerrors.ErrWrongKind, tf.header.Kind)
	}
	return PerfectHash{data: tf.trie}, nil
}

// Verify checks the trie checksum and then the trie structure.
func (tf *File) Verify() error {
	if tf.closed.Load() {
		return streamerrors.ErrFileClosed
	}
	ft, err := decodeFooter(tf.data[len(tf.data)-footerSize:])
	if err != nil {
		return err
	}
	if xxhash.Sum64(tf.trie) != ft.TrieHash {
		return streamerrors.ErrChecksumFailed
	}
	return Validate(tf.header.Kind, tf.trie)
}

// Stats returns size statistics.
func (tf *File) Stats() *Stats {
	perEntry := float64(0)
	if tf.header.NumEntries > 0 {
		perEntry = float64(len(tf.trie)) / float64(tf.header.NumEntries)
	}
	return &Stats{
		Kind:          tf.header.Kind,
		NumEntries:    tf.header.NumEntries,
		TrieBytes:     len(tf.trie),
		FileBytes:     int64(len(tf.data)),
		BytesPerEntry: perEntry,
	}
}

// GetStats opens path, reads its statistics and closes it.
func GetStats(path string) (*Stats, error) {
	tf, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer tf.Close()
	return tf.Stats(), nil
}
