package zerotrie

import (
	"encoding/binary"
	"fmt"

	streamerrors "github.com/tamirms/zerotrie/errors"
)

const (
	// magic number for container files: the bytes "ZTRI" read little-endian
	magic = uint32(0x4952545A)

	// version is the current container format version
	version = uint16(0x0001)

	// headerSize is the exact size of the serialized header (32 bytes)
	headerSize = 32

	// footerSize is the exact size of the serialized footer (16 bytes)
	footerSize = 16
)

// header is the 32-byte container header.
//
// Layout:
//
//	Offset  Size  Field       Type
//	0       4     Magic       0x4952545A ("ZTRI")
//	4       2     Version     0x0001
//	6       1     Kind        uint8 (0=SimpleASCII, 1=PerfectHash)
//	7       1     Reserved    zero
//	8       8     TrieLen     uint64_le
//	16      8     NumEntries  uint64_le
//	24      8     Reserved    [8]byte (zero)
//
// The trie bytes follow the header; the footer follows the trie.
type header struct {
	Magic      uint32
	Version    uint16
	Kind       Kind
	TrieLen    uint64
	NumEntries uint64
}

// encodeTo serializes the header to an existing buffer of headerSize bytes.
func (h *header) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	buf[6] = byte(h.Kind)
	buf[7] = 0
	binary.LittleEndian.PutUint64(buf[8:16], h.TrieLen)
	binary.LittleEndian.PutUint64(buf[16:24], h.NumEntries)
	clear(buf[24:32])
}

// decodeHeader parses and checks a 32-byte header.
func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerSize {
		return nil, streamerrors.ErrTruncatedFile
	}
	h := &header{
		Magic:      binary.LittleEndian.Uint32(buf[0:4]),
		Version:    binary.LittleEndian.Uint16(buf[4:6]),
		Kind:       Kind(buf[6]),
		TrieLen:    binary.LittleEndian.Uint64(buf[8:16]),
		NumEntries: binary.LittleEndian.Uint64(buf[16:24]),
	}
	if h.Magic != magic {
		return nil, streamerrors.ErrInvalidMagic
	}
	if h.Version != version {
		return nil, fmt.Errorf("%w: %d", streamerrors.ErrInvalidVersion, h.Version)
	}
	if !h.Kind.valid() {
		return nil, fmt.Errorf("%w: %d", streamerrors.ErrInvalidKind, h.Kind)
	}
	return h, nil
}

// footer is the 16-byte container footer.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       8     TrieHash  uint64_le (xxHash64 of the trie bytes)
//	8       8     Reserved  [8]byte (zero)
type footer struct {
	TrieHash uint64
}

func (f *footer) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.TrieHash)
	clear(buf[8:16])
}

func decodeFooter(buf []byte) (*footer, error) {
	if len(buf) < footerSize {
		return nil, streamerrors.ErrTruncatedFile
	}
	return &footer{TrieHash: binary.LittleEndian.Uint64(buf[0:8])}, nil
}
