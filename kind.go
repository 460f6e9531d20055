package zerotrie

import (
	"fmt"
	"iter"

	streamerrors "github.com/tamirms/zerotrie/errors"
)

// Kind identifies the trie flavour. It is stored in container file headers.
type Kind uint8

const (
	// KindSimpleASCII is an ASCII-only trie with sorted branches.
	KindSimpleASCII Kind = 0

	// KindPerfectHash is a general byte trie with perfect-hash branches.
	KindPerfectHash Kind = 1
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSimpleASCII:
		return "ascii"
	case KindPerfectHash:
		return "phf"
	default:
		return "unknown"
	}
}

// ParseKind parses the names returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "ascii":
		return KindSimpleASCII, nil
	case "phf":
		return KindPerfectHash, nil
	}
	return 0, fmt.Errorf("%w: %q", streamerrors.ErrInvalidKind, s)
}

func (k Kind) valid() bool {
	return k == KindSimpleASCII || k == KindPerfectHash
}

func (k Kind) perfectHash() bool {
	return k == KindPerfectHash
}

// Reader is the read capability shared by both trie flavours.
//
// Callers that know the flavour statically should use SimpleASCII or
// PerfectHash directly; Reader exists for code that handles either, such as
// container files.
type Reader interface {
	// Get returns the value stored for key.
	Get(key []byte) (uint64, bool)

	// GetString is Get for a string key, without copying it.
	GetString(key string) (uint64, bool)

	// All yields every key-value pair. Each key is a fresh slice.
	All() iter.Seq2[[]byte, uint64]

	// Entries collects All into a slice.
	Entries() []Entry

	// Bytes returns the serialized trie. The slice must not be modified.
	Bytes() []byte

	// ByteLen returns len(Bytes()).
	ByteLen() int

	// IsEmpty reports whether the trie holds no keys.
	IsEmpty() bool

	// Kind returns the flavour.
	Kind() Kind
}

var (
	_ Reader = SimpleASCII{}
	_ Reader = PerfectHash{}
)

// Build builds a trie of the given kind from sorted, unique entries.
func Build(kind Kind, entries []Entry, opts ...BuildOption) (Reader, error) {
	switch kind {
	case KindSimpleASCII:
		return BuildSimpleASCII(entries, opts...)
	case KindPerfectHash:
		return BuildPerfectHash(entries, opts...)
	}
	return nil, fmt.Errorf("%w: %d", streamerrors.ErrInvalidKind, kind)
}

// Parse validates data as a trie of the given kind and wraps it without
// copying.
func Parse(kind Kind, data []byte) (Reader, error) {
	switch kind {
	case KindSimpleASCII:
		return ParseSimpleASCII(data)
	case KindPerfectHash:
		return ParsePerfectHash(data)
	}
	return nil, fmt.Errorf("%w: %d", streamerrors.ErrInvalidKind, kind)
}

// fromBytes wraps data without validation.
func fromBytes(kind Kind, data []byte) Reader {
	if kind == KindPerfectHash {
		return PerfectHashFromBytes(data)
	}
	return SimpleASCIIFromBytes(data)
}
